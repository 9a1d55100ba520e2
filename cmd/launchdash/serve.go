package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rewired-gh/launchdash/internal/analysis"
	"github.com/rewired-gh/launchdash/internal/config"
	"github.com/rewired-gh/launchdash/internal/logger"
	"github.com/rewired-gh/launchdash/internal/models"
	"github.com/rewired-gh/launchdash/internal/notify"
	"github.com/rewired-gh/launchdash/internal/server"
	"github.com/rewired-gh/launchdash/internal/storage"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		Long: `Loads the dataset and serves the dashboard until SIGINT or SIGTERM.
A malformed or missing dataset stops startup before the server listens.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	ds, err := openDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	srv := server.New(ds, sliderFromConfig(cfg.Payload), server.Options{
		Addr:            cfg.Server.Addr,
		Title:           cfg.Server.Title,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		SessionTTL:      cfg.Server.SessionTTL,
		MaxSessions:     cfg.Server.MaxSessions,
		ChartWidth:      cfg.Chart.Width,
		ChartHeight:     cfg.Chart.Height,
	})

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutdown signal received, cleaning up...")
		return srv.Shutdown(context.Background())
	})

	if cfg.Telegram.Enabled {
		g.Go(func() error {
			sendStartupSummary(cfg, ds)
			return nil
		})
	} else {
		logger.Debug("Telegram notifications disabled")
	}

	return g.Wait()
}

// sendStartupSummary reports the loaded dataset to Telegram. Failures are logged only.
func sendStartupSummary(cfg *config.Config, ds *storage.Dataset) {
	client, err := notify.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
	if err != nil {
		logger.Warn("Failed to initialize Telegram client: %v", err)
		return
	}

	summary := buildSummary(cfg.Server.Addr, ds)
	if err := client.SendSummary(summary); err != nil {
		logger.Warn("Failed to send startup summary to Telegram: %v", err)
		return
	}
	logger.Info("Startup summary sent to Telegram")
}

func buildSummary(addr string, ds *storage.Dataset) notify.Summary {
	records := ds.Records()
	summary := notify.Summary{
		Source:    ds.Source(),
		Addr:      addr,
		Records:   len(records),
		Successes: analysis.PieData(records, models.AllSites),
	}
	if rng, ok := analysis.ObservedPayloadRange(records); ok {
		summary.PayloadLow, summary.PayloadHigh = rng.Low, rng.High
	}
	return summary
}
