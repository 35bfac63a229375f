// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-classical.
//
// go-classical is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package rest

import (
	"net/http"
	"time"

	"github.com/jeremyhahn/go-classical/pkg/health"
)

// HealthHandler handles GET /health.
func (h *HandlerContext) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{
		Status:  health.StatusHealthy,
		Version: h.version,
		Uptime:  h.health.Uptime().Round(time.Second).String(),
	}, http.StatusOK)
}

// LivenessHandler handles GET /health/live. It only reports that the
// process is running.
func (h *HandlerContext) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	result := h.health.Live(r.Context())
	writeJSON(w, HealthCheckResponse{
		Status:  result.Status,
		Message: result.Message,
	}, http.StatusOK)
}

// ReadinessHandler handles GET /health/ready. It runs the cipher
// self-tests and returns 503 when any of them fails.
func (h *HandlerContext) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	results := h.health.Ready(r.Context())
	status := health.AggregateStatus(results)

	statusCode := http.StatusOK
	message := "Service is ready"
	if status == health.StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
		message = "Service is not ready"
	}

	writeJSON(w, HealthCheckResponse{
		Status:  status,
		Message: message,
		Checks:  results,
	}, statusCode)
}

// StartupHandler handles GET /health/startup.
func (h *HandlerContext) StartupHandler(w http.ResponseWriter, r *http.Request) {
	result := h.health.Startup(r.Context())

	statusCode := http.StatusOK
	if result.Status != health.StatusHealthy {
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, HealthCheckResponse{
		Status:  result.Status,
		Message: result.Message,
	}, statusCode)
}
