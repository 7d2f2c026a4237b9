package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	invitationservice "gatherly/contexts/communication/invitation-service"
	invitepostgres "gatherly/contexts/communication/invitation-service/adapters/postgres"
	eventservice "gatherly/contexts/event-planning/event-service"
	eventpostgres "gatherly/contexts/event-planning/event-service/adapters/postgres"
	polllifecycle "gatherly/contexts/event-planning/poll-lifecycle"
	identityclient "gatherly/contexts/event-planning/poll-lifecycle/adapters/identity"
	pollpostgres "gatherly/contexts/event-planning/poll-lifecycle/adapters/postgres"
	pollworkers "gatherly/contexts/event-planning/poll-lifecycle/application/workers"
	identityservice "gatherly/contexts/identity-access/identity-service"
	identitypostgres "gatherly/contexts/identity-access/identity-service/adapters/postgres"
	"gatherly/internal/platform/config"
	"gatherly/internal/platform/db"
	"gatherly/internal/platform/httpserver"
	"gatherly/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	relay        pollworkers.NotificationRelay
	publisher    *messaging.KafkaPublisher
	relayEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
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

	eventRepo := eventpostgres.NewRepository(pg.DB, logger)
	inviteRepo := invitepostgres.NewRepository(pg.DB, logger)
	pollRepo := pollpostgres.NewRepository(pg.DB, logger)
	identityRepo := identitypostgres.NewRepository(pg.DB, logger)
	if err := migrate(eventRepo, identityRepo, inviteRepo, pollRepo); err != nil {
		_ = pg.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	events := eventservice.NewModule(eventservice.Dependencies{
		Repo:   eventRepo,
		Clock:  eventpostgres.SystemClock{},
		IDGen:  eventpostgres.UUIDGenerator{},
		Logger: logger,
	})
	invitations := invitationservice.NewModule(invitationservice.Dependencies{
		Repo:   inviteRepo,
		Events: inviteRepo,
		Clock:  invitepostgres.SystemClock{},
		Logger: logger,
	})

	identityBase := cfg.IdentityBaseURL
	if identityBase == "" {
		// Identity runs inside this process; the verifier still goes over
		// HTTP so its timeout semantics match an external deployment.
		identityBase = "http://localhost" + normalizeAddr(cfg.HTTPPort)
	}
	polls := polllifecycle.NewModule(polllifecycle.Dependencies{
		Polls:   pollRepo,
		Votes:   pollRepo,
		Members: pollRepo,
		Events:  pollRepo,
		Identity: &identityclient.Client{
			BaseURL: identityBase,
			Timeout: cfg.IdentityTimeout,
			Logger:  logger,
		},
		Outbox: pollRepo,
		Clock:  pollpostgres.SystemClock{},
		IDGen:  pollpostgres.UUIDGenerator{},
		Logger: logger,
	})
	identity := identityservice.NewModule(identityservice.Dependencies{
		Repo:   identityRepo,
		Clock:  identitypostgres.SystemClock{},
		IDGen:  identitypostgres.UUIDGenerator{},
		Logger: logger,
	})

	server := httpserver.New(events, invitations, polls, identity, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	publisher, err := messaging.NewKafkaPublisher(cfg.KafkaBrokers, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	pollRepo := pollpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		relay: pollworkers.NotificationRelay{
			Outbox:    pollRepo,
			Publisher: publisher,
			Clock:     pollpostgres.SystemClock{},
			Topic:     cfg.NotificationsTopic,
			BatchSize: 100,
			Logger:    logger,
		},
		publisher:    publisher,
		relayEnabled: cfg.EnableNotificationRelay,
		pollInterval: 2 * time.Second,
		logger:       logger,
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

func (w *WorkerApp) Run(ctx context.Context) error {
	if !w.relayEnabled {
		w.logger.Info("notification relay disabled, worker idle",
			"event", "bootstrap_worker_idle",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.relay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.publisher != nil {
		_ = w.publisher.Close()
	}
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

type migrator interface {
	AutoMigrate() error
}

// Migration order matters: the poll repository declares projections over
// tables owned by the event and invitation repositories.
func migrate(migrators ...migrator) error {
	for _, m := range migrators {
		if err := m.AutoMigrate(); err != nil {
			return err
		}
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
