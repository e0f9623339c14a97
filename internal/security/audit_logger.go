package security

import (
	"crypto/sha256"
	"fmt"

	"github.com/rs/zerolog/log"
)

// AuditLogger logs flow submissions with hashed identifiers
type AuditLogger struct {
	enabled bool
}

func NewAuditLogger(enabled bool) *AuditLogger {
	return &AuditLogger{enabled: enabled}
}

// FlowEvent is one audited flow submission.
type FlowEvent struct {
	Flow       string
	APIKey     string
	Input      []byte
	Outcome    string
	DurationMs int64
	Err        error
}

// LogFlowRequest records a flow submission. Inputs are hashed, never logged.
func (a *AuditLogger) LogFlowRequest(e FlowEvent) {
	if a == nil || !a.enabled {
		return
	}

	evt := log.Info().
		Str("event", "flow_audit").
		Str("flow", e.Flow).
		Str("input_hash", Hash(string(e.Input))).
		Str("outcome", e.Outcome).
		Int64("duration_ms", e.DurationMs)
	if e.APIKey != "" {
		evt = evt.Str("api_key_hash", Hash(e.APIKey))
	}
	if e.Err != nil {
		evt = evt.Str("error", e.Err.Error())
	}
	evt.Msg("audit")
}

// Hash returns the first 16 hex characters of the SHA-256 of s.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h)[:16]
}
