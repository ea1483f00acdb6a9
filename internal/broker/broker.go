package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/Portfolio/internal/config"
	"github.com/MikeSquared-Agency/Portfolio/internal/hermes"
	"github.com/MikeSquared-Agency/Portfolio/internal/metrics"
	"github.com/MikeSquared-Agency/Portfolio/internal/portfolio"
)

// Broker serves optimize requests arriving over NATS and publishes the
// service's counters on a fixed interval.
type Broker struct {
	svc    *portfolio.Service
	hermes hermes.Client
	cfg    *config.Config
	logger *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(svc *portfolio.Service, h hermes.Client, cfg *config.Config, logger *slog.Logger) *Broker {
	return &Broker{
		svc:    svc,
		hermes: h,
		cfg:    cfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

func (b *Broker) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.statsLoop(ctx)
}

func (b *Broker) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
	b.wg.Wait()
}

func (b *Broker) statsLoop(ctx context.Context) {
	defer b.wg.Done()
	ticker := time.NewTicker(b.cfg.StatsInterval())
	defer ticker.Stop()

	for {
		select {
		case <-b.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.publishStats()
		}
	}
}

func (b *Broker) publishStats() {
	if b.hermes == nil {
		return
	}
	st := b.svc.Stats()
	evt := hermes.StatsEvent{
		Completed:     st.Completed,
		Rejected:      st.Rejected,
		Failed:        st.Failed,
		AvgDurationMs: st.AvgDurationMs,
		UptimeSeconds: st.UptimeSeconds,
		Timestamp:     time.Now().UTC(),
	}
	if err := b.hermes.Publish(hermes.SubjectStats, evt); err != nil {
		b.logger.Warn("failed to publish stats", "error", err)
	}
}

// SetupSubscriptions registers the optimize responder.
func (b *Broker) SetupSubscriptions() error {
	if b.hermes == nil {
		return nil
	}
	if err := b.hermes.Reply(hermes.SubjectOptimizeRequest, func(_ string, data []byte) []byte {
		return b.HandleOptimize(context.Background(), data)
	}); err != nil {
		return err
	}
	b.logger.Info("listening for optimize requests", "subject", hermes.SubjectOptimizeRequest)
	return nil
}

// HandleOptimize decodes a request body, solves it and returns the JSON
// reply: an OptimizeResponse on success, an ErrorResponse otherwise.
func (b *Broker) HandleOptimize(ctx context.Context, data []byte) []byte {
	var req portfolio.OptimizeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		b.logger.Warn("invalid optimize request", "error", err)
		return b.encode(portfolio.ErrorResponse{
			Error:  "invalid request body",
			Detail: err.Error(),
			Code:   portfolio.CodeInvalidBody,
		})
	}

	resp, err := b.svc.Optimize(ctx, metrics.TransportNATS, req)
	if err != nil {
		return b.encode(portfolio.Classify(err))
	}
	return b.encode(resp)
}

func (b *Broker) encode(v interface{}) []byte {
	out, err := json.Marshal(v)
	if err != nil {
		b.logger.Error("failed to encode reply", "error", err)
		return []byte(`{"error":"internal server error","code":"INTERNAL_ERROR"}`)
	}
	return out
}
