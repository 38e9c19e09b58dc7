package prober

import (
	"context"
	"log/slog"
	"time"

	"github.com/angeloszaimis/feed-dashboard/internal/feed"
	"github.com/angeloszaimis/feed-dashboard/internal/indicator"
	"github.com/angeloszaimis/feed-dashboard/internal/metrics"
)

// Checker performs the existence check against the feed endpoint.
type Checker interface {
	Probe(ctx context.Context) (int, error)
}

type Prober struct {
	checker   Checker
	indicator *indicator.State
	collector *metrics.Collector
	logger    *slog.Logger
}

// New returns a prober writing to ind. collector may be nil.
func New(checker Checker, ind *indicator.State, collector *metrics.Collector, logger *slog.Logger) *Prober {
	return &Prober{
		checker:   checker,
		indicator: ind,
		collector: collector,
		logger:    logger,
	}
}

// Probe checks the endpoint once. Any 2xx marks the indicator healthy;
// everything else, including transport errors, marks it unhealthy.
func (p *Prober) Probe(ctx context.Context) {
	start := time.Now()
	status, err := p.checker.Probe(ctx)
	duration := time.Since(start)

	healthy := err == nil
	p.indicator.Set(healthy)

	if err != nil {
		p.logger.Warn("Status probe failed",
			slog.Int("status", feed.StatusCode(err)),
			slog.Bool("transport", feed.IsTransport(err)),
			slog.Any("err", err))
	} else {
		p.logger.Debug("Status probe completed",
			slog.Int("status", status),
			slog.String("indicator", p.indicator.String()),
			slog.Duration("duration", duration))
	}

	p.collector.Emit(metrics.MetricEvent{
		Type:       metrics.EventProbeCompleted,
		Task:       metrics.TaskProbe,
		Duration:   duration,
		StatusCode: status,
		Failed:     !healthy,
	})
}
