package hermes

import "time"

type OptimizationCompletedEvent struct {
	OptimizationID string    `json:"optimization_id"`
	Transport      string    `json:"transport"`
	Capacity       int       `json:"capacity"`
	ItemCount      int       `json:"item_count"`
	Selected       []string  `json:"selected"`
	TotalBenefit   int       `json:"total_benefit"`
	TotalCost      int       `json:"total_cost"`
	DurationMs     float64   `json:"duration_ms"`
	Timestamp      time.Time `json:"timestamp"`
}

type OptimizationRejectedEvent struct {
	OptimizationID string    `json:"optimization_id"`
	Transport      string    `json:"transport"`
	Code           string    `json:"code"`
	Detail         string    `json:"detail"`
	Timestamp      time.Time `json:"timestamp"`
}

type StatsEvent struct {
	Completed     int64     `json:"completed"`
	Rejected      int64     `json:"rejected"`
	Failed        int64     `json:"failed"`
	AvgDurationMs float64   `json:"avg_duration_ms"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	Timestamp     time.Time `json:"timestamp"`
}
