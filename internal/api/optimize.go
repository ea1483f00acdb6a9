package api

import (
	"encoding/json"
	"net/http"

	"github.com/MikeSquared-Agency/Portfolio/internal/metrics"
	"github.com/MikeSquared-Agency/Portfolio/internal/portfolio"
)

const maxBodyBytes = 1 << 20

type OptimizeHandler struct {
	svc *portfolio.Service
}

func NewOptimizeHandler(svc *portfolio.Service) *OptimizeHandler {
	return &OptimizeHandler{svc: svc}
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req portfolio.OptimizeRequest
	if !decode(w, r, &req) {
		return
	}
	h.run(w, r, req)
}

func (h *OptimizeHandler) Example(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, portfolio.ExampleRequest())
}

func (h *OptimizeHandler) run(w http.ResponseWriter, r *http.Request, req portfolio.OptimizeRequest) {
	resp, err := h.svc.Optimize(r.Context(), metrics.TransportHTTP, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *OptimizeHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	var req portfolio.StatisticsRequest
	if !decode(w, r, &req) {
		return
	}
	st, err := h.svc.Statistics(req.Items)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, portfolio.ErrorResponse{
			Error:  "invalid request body",
			Detail: err.Error(),
			Code:   portfolio.CodeInvalidBody,
		})
		return false
	}
	return true
}
