package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	mesaservice "sufragio/contexts/election-core/mesa-service"
	mesapostgres "sufragio/contexts/election-core/mesa-service/adapters/postgres"
	tallyservice "sufragio/contexts/election-core/tally-service"
	tallypostgres "sufragio/contexts/election-core/tally-service/adapters/postgres"
	votingengine "sufragio/contexts/election-core/voting-engine"
	votingpostgres "sufragio/contexts/election-core/voting-engine/adapters/postgres"
	voterdirectory "sufragio/contexts/identity-access/voter-directory"
	directorypostgres "sufragio/contexts/identity-access/voter-directory/adapters/postgres"
	"sufragio/internal/platform/config"
	"sufragio/internal/platform/db"
	"sufragio/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	directoryRepo := directorypostgres.NewRepository(pg.DB, logger)
	directoryModule := voterdirectory.NewModule(voterdirectory.Dependencies{
		Voters: directoryRepo,
		Logger: logger,
	})

	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	votingModule := votingengine.NewModule(votingengine.Dependencies{
		Ledger:    votingRepo,
		Elections: votingRepo,
		Voters:    votingRepo,
		Clock:     votingpostgres.SystemClock{},
		Logger:    logger,
	})

	mesaRepo := mesapostgres.NewRepository(pg.DB, logger)
	mesaModule := mesaservice.NewModule(mesaservice.Dependencies{
		Mesas:  mesaRepo,
		Clock:  mesapostgres.SystemClock{},
		Logger: logger,
	})

	tallyRepo := tallypostgres.NewRepository(pg.DB, logger)
	tallyModule := tallyservice.NewModule(tallyservice.Dependencies{
		Tallies: tallyRepo,
		Mesas:   tallyRepo,
		Logger:  logger,
	})

	server := httpserver.New(
		directoryModule,
		votingModule,
		mesaModule,
		tallyModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
		httpserver.Options{
			EnableSwaggerUI:         cfg.EnableSwaggerUI,
			EnableParticipationView: cfg.EnableParticipationView,
		},
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
