package optimizer

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
)

// Options configures an Optimizer.
type Options struct {
	// MaxCells bounds the (items+1)*(capacity+1) table of the reduced
	// problem. Zero disables the bound.
	MaxCells int

	// SortByEfficiency processes items by descending benefit/cost ratio.
	// Processing order never changes the optimal benefit, only which
	// selection wins among equal-benefit alternatives.
	SortByEfficiency bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxCells:         50_000_000,
		SortByEfficiency: true,
	}
}

// Optimizer solves the 0/1 knapsack problem exactly with dynamic programming.
// It holds no mutable state and is safe for concurrent use.
type Optimizer struct {
	opts   Options
	logger *slog.Logger
}

// New creates an Optimizer with the given options.
func New(opts Options, logger *slog.Logger) *Optimizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Optimizer{opts: opts, logger: logger}
}

// Options returns the options the optimizer was built with.
func (o *Optimizer) Options() Options {
	return o.opts
}

// Optimize selects the subset of items with maximal total benefit whose total
// cost does not exceed capacity. Ties are broken in favour of not taking the
// later processed item. Selected names are reported in input order.
func (o *Optimizer) Optimize(capacity int, items []Item) (Solution, error) {
	if err := checkInput(capacity, items); err != nil {
		return Solution{}, err
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	if o.opts.SortByEfficiency {
		sort.SliceStable(order, func(a, b int) bool {
			return items[order[a]].Ratio() > items[order[b]].Ratio()
		})
	}

	p := reduce(capacity, items, order)
	if o.opts.MaxCells > 0 && !p.fits(o.opts.MaxCells) {
		return Solution{}, fmt.Errorf("%w: %d items x %d capacity units exceeds %d cells",
			ErrTableTooLarge, len(items), p.capacity+1, o.opts.MaxCells)
	}

	picked, benefit := p.solve()

	chosen := make([]bool, len(items))
	for k, ok := range picked {
		if ok {
			chosen[order[k]] = true
		}
	}

	sol := Solution{Selected: []string{}, TotalBenefit: benefit}
	for i, it := range items {
		if chosen[i] {
			sol.Selected = append(sol.Selected, it.Name)
			sol.TotalCost += it.Cost
		}
	}

	o.logger.Debug("optimization complete",
		"items", len(items),
		"capacity", capacity,
		"reduced_capacity", p.capacity,
		"scale", p.scale,
		"selected", len(sol.Selected),
		"total_benefit", sol.TotalBenefit,
		"total_cost", sol.TotalCost,
	)
	return sol, nil
}

func checkInput(capacity int, items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: no items to optimize", ErrInvalidInput)
	}
	if capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(items))
	totalCost, totalBenefit := 0, 0
	for _, it := range items {
		if it.Cost <= 0 || it.Benefit <= 0 {
			return fmt.Errorf("%w: item %q: cost and benefit must be positive", ErrInvalidInput, it.Name)
		}
		if _, dup := seen[it.Name]; dup {
			return fmt.Errorf("%w: duplicate item name %q", ErrInvalidInput, it.Name)
		}
		seen[it.Name] = struct{}{}

		// table values are partial benefit sums and must not wrap
		if it.Benefit > math.MaxInt-totalBenefit {
			return fmt.Errorf("%w: total benefit exceeds %d", ErrInvalidInput, math.MaxInt)
		}
		if it.Cost > math.MaxInt-totalCost {
			return fmt.Errorf("%w: total cost exceeds %d", ErrInvalidInput, math.MaxInt)
		}
		totalBenefit += it.Benefit
		totalCost += it.Cost
	}
	return nil
}
