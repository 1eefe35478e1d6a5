package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/michsethowusu/kasanoma/internal/service"
)

type (
	HealthOutput struct {
		Body struct {
			Status string `json:"status" example:"ok"`
		}
	}

	StatusOutput struct {
		Body service.Status
	}
)

// StatusHandler handles liveness and status requests.
type StatusHandler struct {
	service *service.TTS
}

// NewStatusHandler creates a new StatusHandler instance.
func NewStatusHandler(api huma.API, service *service.TTS) *StatusHandler {
	h := &StatusHandler{service: service}

	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Liveness probe",
		Tags:        []string{"status"},
	}, h.handleHealth)

	huma.Register(api, huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/api/status",
		Summary:     "Report piper, catalog and selection state",
		Tags:        []string{"status"},
	}, h.handleStatus)

	return h
}

func (h *StatusHandler) handleHealth(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{}
	out.Body.Status = "ok"

	return out, nil
}

func (h *StatusHandler) handleStatus(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	return &StatusOutput{Body: h.service.Status()}, nil
}
