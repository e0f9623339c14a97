package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agrimitra/agrimitra/internal/flow"
	"github.com/agrimitra/agrimitra/internal/models"
)

// FlowRunner is the part of flow.Registry the handlers use.
type FlowRunner interface {
	Info() []models.FlowInfo
	ModelAvailable() bool
	Run(ctx context.Context, name string, raw []byte) (*flow.Result, error)
}

// FlowsHandler serves the JSON flow API.
type FlowsHandler struct {
	flows   FlowRunner
	maxBody int64
}

func NewFlowsHandler(flows FlowRunner, maxBody int64) *FlowsHandler {
	return &FlowsHandler{flows: flows, maxBody: maxBody}
}

// List handles GET /api/v1/flows
func (h *FlowsHandler) List(w http.ResponseWriter, r *http.Request) {
	models.WriteJSON(w, http.StatusOK, models.FlowListResponse{
		Status:         "ok",
		ModelAvailable: h.flows.ModelAvailable(),
		Flows:          h.flows.Info(),
	})
}

// Run handles POST /api/v1/flows/{flow}
func (h *FlowsHandler) Run(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "flow")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			models.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := h.flows.Run(r.Context(), name, body)
	if err != nil {
		writeFlowError(w, err)
		return
	}

	models.WriteJSON(w, http.StatusOK, models.FlowResponse{
		Status:     "success",
		Flow:       res.Flow,
		Type:       string(res.Type),
		Result:     res.Output,
		DurationMs: res.Duration.Round(time.Millisecond).Milliseconds(),
	})
}

func writeFlowError(w http.ResponseWriter, err error) {
	code := StatusFor(err)
	switch code {
	case http.StatusBadRequest:
		models.WriteValidationError(w, flow.ErrValidation.Error(), flow.FieldErrors(err))
	case http.StatusNotFound:
		models.WriteError(w, code, err.Error())
	case http.StatusServiceUnavailable:
		models.WriteError(w, code, flow.ErrUnavailable.Error())
	case http.StatusBadGateway:
		models.WriteError(w, code, flow.ErrGeneration.Error())
	default:
		models.WriteError(w, code, "internal server error")
	}
}

// StatusFor maps a flow error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, flow.ErrUnknownFlow):
		return http.StatusNotFound
	case errors.Is(err, flow.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, flow.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, flow.ErrGeneration):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
