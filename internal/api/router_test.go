package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/Portfolio/internal/config"
	"github.com/MikeSquared-Agency/Portfolio/internal/metrics"
	"github.com/MikeSquared-Agency/Portfolio/internal/optimizer"
	"github.com/MikeSquared-Agency/Portfolio/internal/portfolio"
)

func setupTestRouter() (http.Handler, *portfolio.Service) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Defaults()
	cfg.Server.AdminToken = "test-token"
	cfg.Server.RateLimitPerMinute = 1000
	svc := portfolio.NewService(cfg.Optimizer, nil, metrics.NewRecorder(prometheus.NewRegistry()), logger)
	return NewRouter(svc, cfg.Server, logger), svc
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) portfolio.ErrorResponse {
	t.Helper()
	var body portfolio.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body
}

func TestOptimize(t *testing.T) {
	router, _ := setupTestRouter()

	body := `{"capacity":10000,"items":[
		{"name":"A","cost":2000,"benefit":1500},
		{"name":"B","cost":4000,"benefit":3500},
		{"name":"C","cost":5000,"benefit":4000},
		{"name":"D","cost":3000,"benefit":2500}]}`
	w := post(router, "/api/v1/optimize", body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp portfolio.OptimizeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if strings.Join(resp.Selected, ",") != "A,C,D" {
		t.Errorf("expected A,C,D, got %v", resp.Selected)
	}
	if resp.TotalBenefit != 8000 || resp.TotalCost != 10000 {
		t.Errorf("expected 8000/10000, got %d/%d", resp.TotalBenefit, resp.TotalCost)
	}
	if resp.OptimizationID == "" {
		t.Error("expected optimization_id")
	}
	if w.Header().Get("X-Process-Time") == "" {
		t.Error("expected X-Process-Time header")
	}
}

func TestOptimizeSingleItemAtCapacity(t *testing.T) {
	router, _ := setupTestRouter()

	w := post(router, "/api/v1/optimize", `{"capacity":5,"items":[{"name":"x","cost":5,"benefit":1}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"selected":["x"]`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestOptimizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{"capacity":`, http.StatusBadRequest, portfolio.CodeInvalidBody},
		{"wrong type", `{"capacity":"ten","items":[]}`, http.StatusBadRequest, portfolio.CodeInvalidBody},
		{"zero capacity", `{"capacity":0,"items":[{"name":"A","cost":1,"benefit":1}]}`, http.StatusBadRequest, portfolio.CodeValidation},
		{"no items", `{"capacity":10,"items":[]}`, http.StatusBadRequest, portfolio.CodeValidation},
		{"bad name", `{"capacity":10,"items":[{"name":"a b","cost":1,"benefit":1}]}`, http.StatusBadRequest, portfolio.CodeValidation},
		{"duplicate", `{"capacity":10,"items":[{"name":"A","cost":1,"benefit":1},{"name":"A","cost":2,"benefit":1}]}`, http.StatusBadRequest, portfolio.CodeValidation},
		{"insufficient capacity", `{"capacity":500,"items":[{"name":"A","cost":1000,"benefit":500}]}`, http.StatusBadRequest, portfolio.CodeInsufficientCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupTestRouter()
			w := post(router, "/api/v1/optimize", tt.body)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if got := decodeError(t, w).Code; got != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, got)
			}
		})
	}
}

func TestOptimizeTableTooLarge(t *testing.T) {
	router, svc := setupTestRouter()
	limits := svc.Limits()
	limits.MaxTableCells = 100
	svc.Reconfigure(limits)

	w := post(router, "/api/v1/optimize", `{"capacity":1000,"items":[{"name":"a","cost":999,"benefit":1},{"name":"b","cost":2,"benefit":1}]}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeError(t, w).Code; got != portfolio.CodeProblemTooLarge {
		t.Errorf("expected PROBLEM_TOO_LARGE, got %s", got)
	}
}

func TestOptimizeExample(t *testing.T) {
	router, _ := setupTestRouter()

	w := post(router, "/api/v1/optimize/example", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp portfolio.OptimizeResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.TotalBenefit != 8000 || resp.ItemCount != 4 {
		t.Errorf("unexpected example result: %+v", resp)
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	w := post(router, "/api/v1/statistics", `{"items":[{"name":"A","cost":2000,"benefit":1500},{"name":"B","cost":4000,"benefit":3500}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var st optimizer.Statistics
	if err := json.NewDecoder(w.Body).Decode(&st); err != nil {
		t.Fatalf("failed to decode statistics: %v", err)
	}
	if st.Count != 2 || st.TotalCost != 6000 || st.TotalBenefit != 5000 {
		t.Errorf("unexpected statistics: %+v", st)
	}

	w = post(router, "/api/v1/statistics", `{"items":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty items, got %d", w.Code)
	}
}

func TestStatsEndpoint_RequiresToken(t *testing.T) {
	router, _ := setupTestRouter()
	post(router, "/api/v1/optimize/example", "")

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var stats portfolio.ServiceStats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.Completed != 1 {
		t.Errorf("expected Completed=1, got %d", stats.Completed)
	}
}

func TestRootAndHealth(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var info ServiceInfo
	json.NewDecoder(w.Body).Decode(&info)
	if info.Service != portfolio.ServiceName {
		t.Errorf("expected service name, got %q", info.Service)
	}
	if _, ok := info.Endpoints["optimize"]; !ok {
		t.Error("expected optimize endpoint listed")
	}

	req = httptest.NewRequest("GET", "/health", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var health HealthStatus
	json.NewDecoder(w.Body).Decode(&health)
	if health.Status != "healthy" {
		t.Errorf("expected healthy, got %q", health.Status)
	}
}

func TestMetricsRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	rec.ObserveRequest(metrics.TransportHTTP, metrics.OutcomeSuccess, 0)
	router := NewMetricsRouter(reg)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "portfolio_optimizations_total") {
		t.Error("expected optimization counter in exposition")
	}

	req = httptest.NewRequest("GET", "/health", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
