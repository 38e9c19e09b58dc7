// Package renderer implements the feed refresh task: fetch the posts, sort
// them newest first and replace the dashboard table, or flag the failure on
// the page and the status indicator.
package renderer

import (
	"context"
	"html/template"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/angeloszaimis/feed-dashboard/internal/feed"
	"github.com/angeloszaimis/feed-dashboard/internal/indicator"
	"github.com/angeloszaimis/feed-dashboard/internal/metrics"
	"github.com/angeloszaimis/feed-dashboard/internal/render"
)

const (
	LoadingText = "Loading..."
	ErrorText   = "Error loading tweets. Retrying..."
)

// Fetcher retrieves the current post list.
type Fetcher interface {
	Fetch(ctx context.Context) ([]feed.Post, int, error)
}

// Target is the part of the page the renderer writes to.
type Target interface {
	SetLoading(text string)
	HideLoading()
	ReplaceRows(body template.HTML, countLabel string, at time.Time)
}

// Renderer runs one refresh per Refresh call. Calls may overlap.
type Renderer struct {
	fetcher      Fetcher
	target       Target
	indicator    *indicator.State
	collector    *metrics.Collector
	logger       *slog.Logger
	now          func() time.Time
	discardStale bool

	issued  atomic.Uint64
	mutex   sync.Mutex
	applied uint64
}

type Option func(*Renderer)

// WithClock replaces time.Now for relative-time rendering.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// WithCollector reports fetch results to collector.
func WithCollector(collector *metrics.Collector) Option {
	return func(r *Renderer) {
		r.collector = collector
	}
}

// WithDiscardStale drops results of refreshes that started before the last
// applied one. When disabled the last response to arrive wins.
func WithDiscardStale(discard bool) Option {
	return func(r *Renderer) {
		r.discardStale = discard
	}
}

func New(fetcher Fetcher, target Target, ind *indicator.State, logger *slog.Logger, opts ...Option) *Renderer {
	r := &Renderer{
		fetcher:      fetcher,
		target:       target,
		indicator:    ind,
		logger:       logger,
		now:          time.Now,
		discardStale: true,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Refresh performs one fetch-and-render cycle. Failures are absorbed: they
// are logged, shown on the page and recorded, never returned.
func (r *Renderer) Refresh(ctx context.Context) {
	seq := r.issued.Add(1)
	r.target.SetLoading(LoadingText)

	start := time.Now()
	posts, status, err := r.fetcher.Fetch(ctx)
	duration := time.Since(start)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.discardStale && seq < r.applied {
		r.logger.Debug("Discarding stale feed result",
			slog.Uint64("cycle", seq),
			slog.Uint64("applied", r.applied))
		r.collector.Emit(metrics.MetricEvent{
			Type: metrics.EventStaleDiscarded,
			Task: metrics.TaskFetch,
		})
		return
	}
	r.applied = seq

	if err == nil {
		err = r.apply(posts)
	}

	if err != nil {
		r.indicator.Set(false)
		r.target.SetLoading(ErrorText)
		r.logger.Warn("Failed to refresh feed",
			slog.Uint64("cycle", seq),
			slog.Int("status", feed.StatusCode(err)),
			slog.Bool("transport", feed.IsTransport(err)),
			slog.Any("err", err))
	} else {
		r.logger.Debug("Feed refreshed",
			slog.Uint64("cycle", seq),
			slog.Int("posts", len(posts)),
			slog.Duration("duration", duration))
	}

	r.collector.Emit(metrics.MetricEvent{
		Type:       metrics.EventFetchCompleted,
		Task:       metrics.TaskFetch,
		Duration:   duration,
		StatusCode: status,
		Failed:     err != nil,
		Posts:      len(posts),
	})
}

func (r *Renderer) apply(posts []feed.Post) error {
	now := r.now()
	sorted := render.SortNewestFirst(posts)

	builder := render.NewBuilder(now).AddAll(sorted)
	for _, row := range builder.Rows() {
		r.logger.Debug("Rendering post", slog.String("id", row.ID), slog.String("age", row.TimeLabel))
	}

	body, err := builder.HTML()
	if err != nil {
		return err
	}

	r.indicator.Set(true)
	r.target.HideLoading()
	r.target.ReplaceRows(body, render.CountLabel(len(sorted)), now)
	return nil
}
