package cmd

import (
	"fmt"

	"github.com/matthewlchambers/standardizedinventories/core/config"
	"github.com/matthewlchambers/standardizedinventories/core/logger"
	"github.com/matthewlchambers/standardizedinventories/core/storage"

	"go.uber.org/zap"
)

// app bundles the shared dependencies every subcommand starts from.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store *storage.Local
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := storage.NewLocal(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}

	return &app{cfg: cfg, log: l, store: store}, nil
}

func (a *app) commons() (*storage.DataCommons, error) {
	commons, err := storage.NewDataCommons(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create data commons client: %w", err)
	}
	return commons, nil
}
