package optimizer

import "errors"

var (
	// ErrInvalidInput marks a precondition violation by the caller. Transports
	// are expected to reject such input before it reaches the optimizer.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTableTooLarge is returned when the DP table would exceed MaxCells.
	ErrTableTooLarge = errors.New("dp table too large")
)

// Item is a candidate for selection. The optimizer never mutates items.
type Item struct {
	Name    string `json:"name"`
	Cost    int    `json:"cost"`
	Benefit int    `json:"benefit"`
}

// Ratio returns benefit per unit of cost.
func (it Item) Ratio() float64 {
	return float64(it.Benefit) / float64(it.Cost)
}

// Solution is the optimal selection for one request.
type Solution struct {
	Selected     []string `json:"selected"`
	TotalBenefit int      `json:"total_benefit"`
	TotalCost    int      `json:"total_cost"`
}

// Statistics are descriptive aggregates over an item list.
type Statistics struct {
	Count        int     `json:"total_items"`
	TotalCost    int     `json:"total_cost_available"`
	TotalBenefit int     `json:"total_benefit_available"`
	MeanCost     float64 `json:"mean_cost"`
	MeanBenefit  float64 `json:"mean_benefit"`
	MeanRatio    float64 `json:"mean_benefit_cost_ratio"`
	MinCost      int     `json:"min_cost"`
	MaxCost      int     `json:"max_cost"`
	MinBenefit   int     `json:"min_benefit"`
	MaxBenefit   int     `json:"max_benefit"`
}
