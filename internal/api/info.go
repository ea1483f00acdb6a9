package api

import (
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/Portfolio/internal/portfolio"
)

type InfoHandler struct {
	svc *portfolio.Service
}

func NewInfoHandler(svc *portfolio.Service) *InfoHandler {
	return &InfoHandler{svc: svc}
}

type ServiceInfo struct {
	Service     string            `json:"service"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}

type HealthStatus struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *InfoHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ServiceInfo{
		Service:     portfolio.ServiceName,
		Version:     portfolio.Version,
		Description: "selects the subset of items with maximum total benefit within a budget",
		Endpoints: map[string]string{
			"health":     "GET /health",
			"optimize":   "POST /api/v1/optimize",
			"example":    "POST /api/v1/optimize/example",
			"statistics": "POST /api/v1/statistics",
			"stats":      "GET /api/v1/stats",
		},
	})
}

func (h *InfoHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthStatus{
		Status:    "healthy",
		Service:   portfolio.ServiceName,
		Version:   portfolio.Version,
		Timestamp: time.Now().UTC(),
	})
}

func (h *InfoHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Stats())
}
