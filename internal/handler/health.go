package handler

import (
	"net/http"

	"github.com/agrimitra/agrimitra/internal/models"
)

const version = "1.0.0"

// HealthHandler handles GET /health. It never calls the model.
type HealthHandler struct {
	provider string
	model    string
	enabled  bool
	flows    int
}

// NewHealthHandler reports the model as disabled when enabled is false.
func NewHealthHandler(provider, model string, enabled bool, flows int) *HealthHandler {
	return &HealthHandler{provider: provider, model: model, enabled: enabled, flows: flows}
}

// Health answers 200 in both states; without a model only the weather
// forecast can run, so the service reports itself degraded.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	status := "healthy"

	if h.enabled {
		checks["llm"] = h.provider + "/" + h.model
	} else {
		checks["llm"] = "disabled"
		status = "degraded"
	}
	if h.flows == 0 {
		checks["flows"] = "none registered"
		status = "degraded"
	}

	models.WriteJSON(w, http.StatusOK, models.HealthResponse{
		Status:  status,
		Version: version,
		Checks:  checks,
	})
}
