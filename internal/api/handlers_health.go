// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// HealthStatus is the readiness payload.
type HealthStatus struct {
	Status        string                  `json:"status"`
	ModelsTrained bool                    `json:"models_trained"`
	Posters       bool                    `json:"posters_enabled"`
	Uptime        float64                 `json:"uptime_seconds"`
	Dataset       dataset.Stats           `json:"dataset"`
	Engine        recommend.EngineMetrics `json:"engine"`
}

// HealthLive handles liveness probes. It only proves the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probes. Returns 503 until both models are
// trained.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ready := h.engine.IsReady()
	status := HealthStatus{
		Status:        "ready",
		ModelsTrained: ready,
		Posters:       h.posters != nil,
		Uptime:        time.Since(h.startTime).Seconds(),
		Dataset:       h.ds.Stats(),
		Engine:        h.engine.GetMetrics(),
	}
	if !ready {
		status.Status = "not_ready"
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "models not trained", status)
		return
	}
	rw.Success(status)
}
