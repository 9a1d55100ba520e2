package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rewired-gh/launchdash/internal/analysis"
	"github.com/rewired-gh/launchdash/internal/config"
	"github.com/rewired-gh/launchdash/internal/dashboard"
	"github.com/rewired-gh/launchdash/internal/logger"
	"github.com/rewired-gh/launchdash/internal/storage"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	configPath string
}

// loadConfig loads and validates the configuration and initializes logging.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Debug("Configuration loaded from %s", o.configPath)
	return cfg, nil
}

func openDataset(ctx context.Context, cfg *config.Config) (*storage.Dataset, error) {
	ds, err := storage.OpenContext(ctx, cfg.Dataset.Path, storage.Options{
		Format:         cfg.Dataset.Format,
		Table:          cfg.Dataset.Table,
		Timeout:        cfg.Dataset.Timeout,
		MaxRetries:     cfg.Dataset.MaxRetries,
		RetryDelayBase: cfg.Dataset.RetryDelayBase,
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load dataset: %w (set dataset.path or LAUNCHDASH_DATASET_PATH to a launch records file)", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	records := ds.Records()
	sites := len(analysis.ListSites(records)) - 1
	if rng, ok := analysis.ObservedPayloadRange(records); ok {
		logger.Info("Loaded %d launch records from %s (%d sites, payload %.0f-%.0f kg)",
			len(records), ds.Source(), sites, rng.Low, rng.High)
	} else {
		logger.Warn("Dataset %s contains no launch records", ds.Source())
	}
	return ds, nil
}

func sliderFromConfig(p config.PayloadConfig) dashboard.Slider {
	return dashboard.Slider{
		Bounds: p.Bounds,
		Min:    p.Min,
		Max:    p.Max,
		Step:   p.Step,
		Marks:  p.Marks,
	}
}
