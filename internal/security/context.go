package security

import "context"

type ctxKey int

const apiKeyCtxKey ctxKey = iota

// WithAPIKey stores the caller's API key for audit logging.
func WithAPIKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, apiKeyCtxKey, key)
}

// APIKeyFrom returns the key stored by WithAPIKey, or "".
func APIKeyFrom(ctx context.Context) string {
	key, _ := ctx.Value(apiKeyCtxKey).(string)
	return key
}
