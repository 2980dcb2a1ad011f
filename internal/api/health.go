// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/aidash/internal/platform/constants"
	"github.com/taibuivan/aidash/internal/platform/respond"
)

// probeTimeout bounds each readiness probe.
const probeTimeout = 2 * time.Second

// Probe is one named readiness check.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

type healthHandler struct {
	probes []Probe
	logger *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(probes []Probe, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{probes: probes, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, "OK", map[string]string{constants.FieldStatus: "ok"})
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	type checkResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	results := make([]checkResult, 0, len(handler.probes))
	isSystemReady := true

	for _, probe := range handler.probes {
		ctx, cancel := context.WithTimeout(request.Context(), probeTimeout)
		err := probe.Check(ctx)
		cancel()

		result := checkResult{Name: probe.Name, IsOK: err == nil}
		if err != nil {
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", probe.Name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	body := map[string]any{constants.FieldStatus: "ready", constants.FieldChecks: results}
	if !isSystemReady {
		body[constants.FieldStatus] = "degraded"
		respond.JSON(writer, http.StatusServiceUnavailable, respond.Envelope[map[string]any]{
			Success: false,
			Message: "Service degraded",
			Data:    &body,
		})
		return
	}

	respond.OK(writer, "Ready", body)
}
