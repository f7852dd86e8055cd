package main

import (
	"fmt"
	"log/slog"

	"github.com/alexjbarnes/eas-sync/eas"
	"github.com/alexjbarnes/eas-sync/internal/config"
	"github.com/alexjbarnes/eas-sync/internal/logging"
	"github.com/alexjbarnes/eas-sync/internal/state"
)

// app bundles the pieces every command needs.
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	state       *state.State
	client      *eas.Client
	provisioner *eas.Provisioner
	engine      *eas.SyncEngine
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.Environment, cfg.LogLevel)

	st, err := state.LoadAt(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	client := eas.NewClient(cfg.ServerSettings(), eas.NewSession(), logger)
	prov := eas.NewProvisioner(client, client.Session(), st, logger)

	return &app{
		cfg:         cfg,
		logger:      logger,
		state:       st,
		client:      client,
		provisioner: prov,
		engine:      eas.NewSyncEngine(client, prov, st, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.state.Close(); err != nil {
		a.logger.Warn("closing state", slog.String("error", err.Error()))
	}
}
