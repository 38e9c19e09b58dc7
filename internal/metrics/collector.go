package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventProbeCompleted   EventType = "probe_completed"
	EventFetchCompleted   EventType = "fetch_completed"
	EventIndicatorChanged EventType = "indicator_changed"
	EventStaleDiscarded   EventType = "stale_discarded"
)

type MetricEvent struct {
	Type       EventType
	Timestamp  time.Time
	Task       string
	Duration   time.Duration
	StatusCode int
	Failed     bool
	Posts      int
	Healthy    bool
}

type Collector struct {
	eventCh chan MetricEvent
	metrics *Metrics
	logger  *slog.Logger
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan MetricEvent, bufferSize),
		metrics: NewMetrics(),
		logger:  logger,
	}
}

// Emit queues event without blocking. It is safe to call on a nil Collector.
func (c *Collector) Emit(event MetricEvent) {
	if c == nil {
		return
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case c.eventCh <- event:
	default:
		c.logger.Debug("Metrics buffer full, dropping event", slog.String("type", string(event.Type)))
	}
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventProbeCompleted:
		c.metrics.RecordRun(TaskProbe, event.Duration, event.StatusCode, event.Failed)

	case EventFetchCompleted:
		c.metrics.RecordRun(TaskFetch, event.Duration, event.StatusCode, event.Failed)
		if !event.Failed {
			c.metrics.RecordRefresh(event.Posts, event.Timestamp)
		}

	case EventIndicatorChanged:
		c.metrics.UpdateIndicator(event.Healthy)

	case EventStaleDiscarded:
		c.metrics.IncrementStaleDiscarded()
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot() Snapshot {
	return c.metrics.Snapshot()
}
