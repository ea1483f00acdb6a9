package portfolio

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Portfolio/internal/config"
	"github.com/MikeSquared-Agency/Portfolio/internal/hermes"
	"github.com/MikeSquared-Agency/Portfolio/internal/metrics"
	"github.com/MikeSquared-Agency/Portfolio/internal/optimizer"
)

// settings are swapped as a whole on reconfiguration.
type settings struct {
	limits config.OptimizerConfig
	opt    *optimizer.Optimizer
}

// Service validates requests, runs the optimizer and reports the outcome to
// metrics and the event bus. It is shared by every transport.
type Service struct {
	current atomic.Pointer[settings]
	hermes  hermes.Client
	metrics *metrics.Recorder
	logger  *slog.Logger
	started time.Time

	completed  atomic.Int64
	rejected   atomic.Int64
	failed     atomic.Int64
	solveNanos atomic.Int64
}

// NewService creates a Service. h may be nil when no event bus is configured.
func NewService(limits config.OptimizerConfig, h hermes.Client, rec *metrics.Recorder, logger *slog.Logger) *Service {
	s := &Service{
		hermes:  h,
		metrics: rec,
		logger:  logger,
		started: time.Now(),
	}
	s.Reconfigure(limits)
	return s
}

// Reconfigure replaces the limits and rebuilds the optimizer. Requests in
// flight finish with the settings they started with.
func (s *Service) Reconfigure(limits config.OptimizerConfig) {
	opt := optimizer.New(optimizer.Options{
		MaxCells:         limits.MaxTableCells,
		SortByEfficiency: limits.SortByEfficiency,
	}, s.logger)
	s.current.Store(&settings{limits: limits, opt: opt})
	s.logger.Info("optimizer configured",
		"max_capacity", limits.MaxCapacity,
		"max_items", limits.MaxItems,
		"max_table_cells", limits.MaxTableCells,
		"sort_by_efficiency", limits.SortByEfficiency,
	)
}

func (s *Service) Limits() config.OptimizerConfig {
	return s.current.Load().limits
}

// Optimize validates req and solves it. Errors are either *ValidationError,
// wrap optimizer.ErrTableTooLarge, or signal a contract violation between
// validation and the optimizer.
func (s *Service) Optimize(ctx context.Context, transport string, req OptimizeRequest) (*OptimizeResponse, error) {
	start := time.Now()
	id := uuid.New().String()
	cur := s.current.Load()

	sol, err := s.solve(ctx, cur, req)
	elapsed := time.Since(start)
	if err != nil {
		s.reject(id, transport, err, elapsed)
		return nil, err
	}

	s.completed.Add(1)
	s.solveNanos.Add(elapsed.Nanoseconds())
	s.metrics.ObserveRequest(transport, metrics.OutcomeSuccess, elapsed)
	s.metrics.ObserveSolution(len(req.Items), len(sol.Selected))

	resp := &OptimizeResponse{
		OptimizationID: id,
		Selected:       sol.Selected,
		TotalBenefit:   sol.TotalBenefit,
		TotalCost:      sol.TotalCost,
		Capacity:       req.Capacity,
		ItemCount:      len(req.Items),
		DurationMs:     float64(elapsed.Microseconds()) / 1000,
	}

	s.logger.Info("optimization completed",
		"optimization_id", id,
		"transport", transport,
		"items", len(req.Items),
		"capacity", req.Capacity,
		"selected", len(sol.Selected),
		"total_benefit", sol.TotalBenefit,
		"total_cost", sol.TotalCost,
		"duration_ms", resp.DurationMs,
	)
	s.publish(hermes.SubjectOptimizationCompleted(id), hermes.OptimizationCompletedEvent{
		OptimizationID: id,
		Transport:      transport,
		Capacity:       req.Capacity,
		ItemCount:      len(req.Items),
		Selected:       sol.Selected,
		TotalBenefit:   sol.TotalBenefit,
		TotalCost:      sol.TotalCost,
		DurationMs:     resp.DurationMs,
		Timestamp:      time.Now().UTC(),
	})
	return resp, nil
}

func (s *Service) solve(ctx context.Context, cur *settings, req OptimizeRequest) (optimizer.Solution, error) {
	if err := req.Validate(cur.limits); err != nil {
		return optimizer.Solution{}, err
	}
	if err := ctx.Err(); err != nil {
		return optimizer.Solution{}, err
	}
	return cur.opt.Optimize(req.Capacity, req.Items)
}

func (s *Service) reject(id, transport string, err error, elapsed time.Duration) {
	body := Classify(err)

	outcome := metrics.OutcomeInvalid
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		s.rejected.Add(1)
		s.logger.Warn("optimization rejected", "optimization_id", id, "transport", transport, "code", body.Code, "error", err)
	case errors.Is(err, optimizer.ErrTableTooLarge):
		outcome = metrics.OutcomeTooLarge
		s.rejected.Add(1)
		s.logger.Warn("optimization rejected", "optimization_id", id, "transport", transport, "code", body.Code, "error", err)
	default:
		outcome = metrics.OutcomeError
		s.failed.Add(1)
		s.logger.Error("optimization failed", "optimization_id", id, "transport", transport, "error", err)
	}
	s.metrics.ObserveRequest(transport, outcome, elapsed)

	s.publish(hermes.SubjectOptimizationRejected(id), hermes.OptimizationRejectedEvent{
		OptimizationID: id,
		Transport:      transport,
		Code:           body.Code,
		Detail:         body.Detail,
		Timestamp:      time.Now().UTC(),
	})
}

func (s *Service) publish(subject string, evt interface{}) {
	if s.hermes == nil {
		return
	}
	if err := s.hermes.Publish(subject, evt); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

// Statistics validates items and summarizes them.
func (s *Service) Statistics(items []optimizer.Item) (*optimizer.Statistics, error) {
	if err := ValidateItems(items, s.Limits()); err != nil {
		return nil, err
	}
	return optimizer.Summarize(items), nil
}

// Stats reports counters since start.
func (s *Service) Stats() ServiceStats {
	completed := s.completed.Load()
	st := ServiceStats{
		Service:       ServiceName,
		Version:       Version,
		StartedAt:     s.started.UTC(),
		UptimeSeconds: time.Since(s.started).Seconds(),
		Completed:     completed,
		Rejected:      s.rejected.Load(),
		Failed:        s.failed.Load(),
	}
	if completed > 0 {
		st.AvgDurationMs = float64(s.solveNanos.Load()) / float64(completed) / 1e6
	}
	return st
}
