package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/angeloszaimis/feed-dashboard/config"
	"github.com/angeloszaimis/feed-dashboard/internal/httpserver"
	"github.com/angeloszaimis/feed-dashboard/pkg/logger"
)

var errUnhealthy = errors.New("feed is unhealthy")

func newRootCmd() *cobra.Command {
	var configDir string

	loadConfig := func() (*config.Config, error) {
		if configDir != "" {
			return config.Load(configDir)
		}
		return config.Load()
	}

	serve := func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return runServe(ctx, newApp(cfg, log))
	}

	root := &cobra.Command{
		Use:          "feed-dashboard",
		Short:        "Poll a posts endpoint and serve it as a live table",
		SilenceUsage: true,
		RunE:         serve,
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory containing config.yaml")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the poller and the dashboard HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE:  serve,
	})

	root.AddCommand(newSnapshotCmd(loadConfig))

	return root
}

func newSnapshotCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Run one polling cycle and print the rendered page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, false, cfg.Server.Environment)
			a := newApp(cfg, log)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			a.runOnce(ctx)

			if err := a.page.WriteHTML(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("write page: %w", err)
			}

			if !a.indicator.Healthy() {
				return errUnhealthy
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "deadline for the polling cycle")

	return cmd
}

// runServe runs the collector, the poller and the HTTP server until ctx is
// cancelled or the server fails.
func runServe(ctx context.Context, a *app) error {
	srv, err := httpserver.New(a.cfg.Server.Address, setupRouter(a))
	if err != nil {
		a.log.Error("Failed to create server", slog.Any("err", err))
		return err
	}

	if err := srv.Listen(); err != nil {
		a.log.Error("Failed to bind dashboard address", slog.String("address", a.cfg.Server.Address), slog.Any("err", err))
		return err
	}

	a.collector.Start(ctx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.poller.Run(gctx)
	})

	g.Go(func() error {
		a.log.Info("Dashboard listening",
			slog.String("address", srv.Addr()),
			slog.String("feed", a.cfg.Feed.URL))
		return srv.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("Shutting down gracefully...")
		return srv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		a.log.Error("Dashboard stopped with error", slog.Any("err", err))
		return err
	}

	return nil
}
