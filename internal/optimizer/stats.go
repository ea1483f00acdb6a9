package optimizer

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summarize returns descriptive statistics for items, or nil when the list
// is empty. The totals of costs and benefits must fit in an int.
func Summarize(items []Item) *Statistics {
	if len(items) == 0 {
		return nil
	}

	costs := make([]float64, len(items))
	benefits := make([]float64, len(items))
	ratios := make([]float64, len(items))

	s := &Statistics{Count: len(items)}
	for i, it := range items {
		costs[i] = float64(it.Cost)
		benefits[i] = float64(it.Benefit)
		ratios[i] = it.Ratio()
		s.TotalCost += it.Cost
		s.TotalBenefit += it.Benefit
	}

	s.MeanCost = stat.Mean(costs, nil)
	s.MeanBenefit = stat.Mean(benefits, nil)
	s.MeanRatio = stat.Mean(ratios, nil)
	s.MinCost = int(floats.Min(costs))
	s.MaxCost = int(floats.Max(costs))
	s.MinBenefit = int(floats.Min(benefits))
	s.MaxBenefit = int(floats.Max(benefits))
	return s
}
