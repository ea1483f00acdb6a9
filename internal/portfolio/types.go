package portfolio

import (
	"time"

	"github.com/MikeSquared-Agency/Portfolio/internal/optimizer"
)

const (
	ServiceName = "portfolio-optimizer"
	Version     = "1.0.0"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeInvalidBody          = "INVALID_BODY"
	CodeValidation           = "VALIDATION_ERROR"
	CodeInsufficientCapacity = "INSUFFICIENT_CAPACITY"
	CodeProblemTooLarge      = "PROBLEM_TOO_LARGE"
	CodeOptimization         = "OPTIMIZATION_ERROR"
	CodeInternal             = "INTERNAL_ERROR"
)

type OptimizeRequest struct {
	Capacity int              `json:"capacity"`
	Items    []optimizer.Item `json:"items"`
}

type OptimizeResponse struct {
	OptimizationID string   `json:"optimization_id"`
	Selected       []string `json:"selected"`
	TotalBenefit   int      `json:"total_benefit"`
	TotalCost      int      `json:"total_cost"`
	Capacity       int      `json:"capacity"`
	ItemCount      int      `json:"item_count"`
	DurationMs     float64  `json:"duration_ms"`
}

type StatisticsRequest struct {
	Items []optimizer.Item `json:"items"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// ServiceStats is the in-memory view of what the service has done since start.
type ServiceStats struct {
	Service       string    `json:"service"`
	Version       string    `json:"version"`
	StartedAt     time.Time `json:"started_at"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	Completed     int64     `json:"completed"`
	Rejected      int64     `json:"rejected"`
	Failed        int64     `json:"failed"`
	AvgDurationMs float64   `json:"avg_duration_ms"`
}

// ExampleRequest is the built-in data set served by the example endpoint.
func ExampleRequest() OptimizeRequest {
	return OptimizeRequest{
		Capacity: 10000,
		Items: []optimizer.Item{
			{Name: "A", Cost: 2000, Benefit: 1500},
			{Name: "B", Cost: 4000, Benefit: 3500},
			{Name: "C", Cost: 5000, Benefit: 4000},
			{Name: "D", Cost: 3000, Benefit: 2500},
		},
	}
}
