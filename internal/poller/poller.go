// Package poller runs the dashboard tasks once at start and then on every
// tick of a fixed interval. Each run gets its own goroutine, so a slow
// request never delays the next tick and cycles may overlap.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is one unit of periodic work. Run must absorb its own errors.
type Task struct {
	Name string
	Run  func(ctx context.Context)
}

type Poller struct {
	interval time.Duration
	tasks    []Task
	logger   *slog.Logger
	wg       sync.WaitGroup
}

func New(interval time.Duration, logger *slog.Logger, tasks ...Task) *Poller {
	return &Poller{
		interval: interval,
		tasks:    tasks,
		logger:   logger,
	}
}

// Run fires every task immediately and then on each tick until ctx is done.
// It waits for in-flight runs before returning.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("Poller started",
		slog.Duration("interval", p.interval),
		slog.Int("tasks", len(p.tasks)))

	p.dispatch(ctx)

	for {
		select {
		case <-ctx.Done():
			p.wg.Wait()
			p.logger.Info("Poller stopped")
			return nil

		case <-ticker.C:
			p.dispatch(ctx)
		}
	}
}

// RunOnce runs every task once, concurrently, and waits for all of them.
func (p *Poller) RunOnce(ctx context.Context) {
	p.dispatch(ctx)
	p.wg.Wait()
}

func (p *Poller) dispatch(ctx context.Context) {
	for _, task := range p.tasks {
		p.wg.Add(1)
		go p.run(ctx, task)
	}
}

func (p *Poller) run(ctx context.Context, task Task) {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Task panicked",
				slog.String("task", task.Name),
				slog.Any("panic", r))
		}
	}()

	task.Run(ctx)
}
