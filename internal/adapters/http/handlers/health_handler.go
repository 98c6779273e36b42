package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/taskdialog/internal/ports"
)

const (
	statusOK       = "ok"
	statusReady    = "ready"
	statusDegraded = "degraded"
	statusNotReady = "not_ready"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler backed by registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live and always answers 200.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": statusOK})
}

type checkResponse struct {
	Status string `json:"status"`
	Impact string `json:"impact"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string                   `json:"status"`
	Checks map[string]checkResponse `json:"checks"`
}

// Readiness handles GET /health/ready. A failing critical check answers 503
// "not_ready"; failing degraded checks alone answer 200 "degraded".
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := readinessResponse{Status: statusReady, Checks: make(map[string]checkResponse)}

	for name, res := range h.registry.CheckAll(r.Context()) {
		c := checkResponse{Status: statusOK, Impact: res.Impact.String()}
		if res.Err != nil {
			c.Error = res.Err.Error()
			c.Status = "failing"
			switch {
			case res.Impact == ports.ImpactCritical:
				resp.Status = statusNotReady
			case resp.Status == statusReady:
				resp.Status = statusDegraded
			}
		}
		resp.Checks[name] = c
	}

	code := http.StatusOK
	if resp.Status == statusNotReady {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}
