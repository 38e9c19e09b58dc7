package main

import (
	"context"
	"log/slog"

	"github.com/angeloszaimis/feed-dashboard/config"
	"github.com/angeloszaimis/feed-dashboard/internal/dashboard"
	"github.com/angeloszaimis/feed-dashboard/internal/feed"
	"github.com/angeloszaimis/feed-dashboard/internal/indicator"
	"github.com/angeloszaimis/feed-dashboard/internal/metrics"
	"github.com/angeloszaimis/feed-dashboard/internal/poller"
	"github.com/angeloszaimis/feed-dashboard/internal/prober"
	"github.com/angeloszaimis/feed-dashboard/internal/renderer"
)

// app is the wired dashboard: one indicator and one page shared by the
// status prober and the feed renderer.
type app struct {
	cfg       *config.Config
	log       *slog.Logger
	indicator *indicator.State
	page      *dashboard.Page
	collector *metrics.Collector
	prober    *prober.Prober
	renderer  *renderer.Renderer
	poller    *poller.Poller
}

func newApp(cfg *config.Config, log *slog.Logger) *app {
	collector := metrics.NewCollector(cfg.Metrics.BufferSize, log)

	client := feed.NewClient(cfg.Feed.URL, cfg.FeedTimeout())

	ind := indicator.New()
	ind.OnChange(func(healthy bool) {
		if healthy {
			log.Info("Feed is back up", slog.String("feed", client.URL()))
		} else {
			log.Warn("Feed is down", slog.String("feed", client.URL()))
		}
		collector.Emit(metrics.MetricEvent{
			Type:    metrics.EventIndicatorChanged,
			Healthy: healthy,
		})
	})

	page := dashboard.NewPage(ind, cfg.PollInterval())

	statusProber := prober.New(client, ind, collector, log)
	feedRenderer := renderer.New(client, page, ind, log,
		renderer.WithCollector(collector),
		renderer.WithDiscardStale(cfg.Poll.DiscardStale))

	tasks := []poller.Task{
		{Name: metrics.TaskProbe, Run: statusProber.Probe},
		{Name: metrics.TaskFetch, Run: feedRenderer.Refresh},
	}

	return &app{
		cfg:       cfg,
		log:       log,
		indicator: ind,
		page:      page,
		collector: collector,
		prober:    statusProber,
		renderer:  feedRenderer,
		poller:    poller.New(cfg.PollInterval(), log, tasks...),
	}
}

// runOnce performs a single polling cycle and waits for it.
func (a *app) runOnce(ctx context.Context) {
	a.poller.RunOnce(ctx)
}
