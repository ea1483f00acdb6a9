package portfolio

import (
	"errors"
	"fmt"
	"math"
	"regexp"

	"github.com/MikeSquared-Agency/Portfolio/internal/config"
	"github.com/MikeSquared-Agency/Portfolio/internal/optimizer"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidationError is a request the service refuses to solve.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Code: CodeValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks the request against the configured limits, including the
// rule that at least one item must fit in the capacity.
func (r *OptimizeRequest) Validate(limits config.OptimizerConfig) error {
	if r.Capacity <= 0 {
		return invalid("capacity", "must be greater than 0")
	}
	if r.Capacity > limits.MaxCapacity {
		return invalid("capacity", "must not exceed %d", limits.MaxCapacity)
	}
	if err := ValidateItems(r.Items, limits); err != nil {
		return err
	}

	minCost := r.Items[0].Cost
	for _, it := range r.Items[1:] {
		minCost = min(minCost, it.Cost)
	}
	if r.Capacity < minCost {
		return &ValidationError{
			Code:    CodeInsufficientCapacity,
			Field:   "capacity",
			Message: fmt.Sprintf("capacity (%d) is less than the minimum item cost (%d)", r.Capacity, minCost),
		}
	}
	return nil
}

// ValidateItems checks count, names and values of an item list.
func ValidateItems(items []optimizer.Item, limits config.OptimizerConfig) error {
	if len(items) == 0 {
		return invalid("items", "at least one item is required")
	}
	if len(items) > limits.MaxItems {
		return invalid("items", "at most %d items are allowed, got %d", limits.MaxItems, len(items))
	}

	seen := make(map[string]struct{}, len(items))
	totalCost, totalBenefit := 0, 0
	for i, it := range items {
		field := fmt.Sprintf("items[%d]", i)
		switch {
		case it.Name == "":
			return invalid(field+".name", "must not be empty")
		case len(it.Name) > limits.MaxNameLength:
			return invalid(field+".name", "must be at most %d characters", limits.MaxNameLength)
		case !namePattern.MatchString(it.Name):
			return invalid(field+".name", "may only contain letters, digits, hyphens and underscores")
		case it.Cost <= 0:
			return invalid(field+".cost", "must be greater than 0")
		case it.Benefit <= 0:
			return invalid(field+".benefit", "must be greater than 0")
		}
		if _, dup := seen[it.Name]; dup {
			return invalid(field+".name", "duplicate item name %q", it.Name)
		}
		seen[it.Name] = struct{}{}

		if it.Cost > math.MaxInt-totalCost {
			return invalid("items", "total cost must not exceed %d", math.MaxInt)
		}
		if it.Benefit > math.MaxInt-totalBenefit {
			return invalid("items", "total benefit must not exceed %d", math.MaxInt)
		}
		totalCost += it.Cost
		totalBenefit += it.Benefit
	}
	return nil
}

// Classify turns any error returned by the service into the wire error body.
func Classify(err error) ErrorResponse {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		title := "validation error"
		if verr.Code == CodeInsufficientCapacity {
			title = "insufficient capacity"
		}
		return ErrorResponse{Error: title, Detail: verr.Error(), Code: verr.Code}
	case errors.Is(err, optimizer.ErrTableTooLarge):
		return ErrorResponse{Error: "problem too large", Detail: err.Error(), Code: CodeProblemTooLarge}
	case errors.Is(err, optimizer.ErrInvalidInput):
		return ErrorResponse{Error: "optimization error", Detail: err.Error(), Code: CodeOptimization}
	default:
		return ErrorResponse{Error: "internal server error", Detail: "an unexpected error occurred", Code: CodeInternal}
	}
}
