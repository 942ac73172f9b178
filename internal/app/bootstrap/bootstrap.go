package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	arbiterregistry "tribunal/contexts/arbitration/arbiter-registry"
	registrypostgres "tribunal/contexts/arbitration/arbiter-registry/adapters/postgres"
	disputeservice "tribunal/contexts/arbitration/dispute-service"
	disputepostgres "tribunal/contexts/arbitration/dispute-service/adapters/postgres"
	disputeworkers "tribunal/contexts/arbitration/dispute-service/application/workers"
	settlementledger "tribunal/contexts/finance-core/settlement-ledger"
	ledgerpostgres "tribunal/contexts/finance-core/settlement-ledger/adapters/postgres"
	ledgerworkers "tribunal/contexts/finance-core/settlement-ledger/application/workers"
	"tribunal/internal/platform/config"
	"tribunal/internal/platform/db"
	"tribunal/internal/platform/httpserver"
	"tribunal/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.
// Cross-context hops (dispute service -> registry roster, dispute service ->
// ledger transfers) are adapted here, never imported between contexts.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  disputeworkers.OutboxRelay
	resolution   ledgerworkers.ResolutionAuditConsumer
	consumeAudit bool
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

	registryRepo := registrypostgres.NewRepository(pg.DB, logger)
	registryModule := arbiterregistry.NewModule(arbiterregistry.Dependencies{
		Repository: registryRepo,
		Clock:      registrypostgres.SystemClock{},
		IDGen:      registrypostgres.UUIDGenerator{},
		Owner:      cfg.RegistryOwner,
		Logger:     logger,
	})

	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	ledgerModule := settlementledger.NewModule(settlementledger.Dependencies{
		Repository:     ledgerRepo,
		Idempotency:    ledgerRepo,
		EventDedup:     ledgerRepo,
		Clock:          ledgerpostgres.SystemClock{},
		IDGenerator:    ledgerpostgres.UUIDGenerator{},
		IdempotencyTTL: 7 * 24 * time.Hour,
		EventDedupTTL:  7 * 24 * time.Hour,
		Logger:         logger,
	})

	disputeRepo := disputepostgres.NewRepository(pg.DB, logger)
	disputeModule := disputeservice.NewModule(disputeservice.Dependencies{
		Disputes:            disputeRepo,
		Votes:               disputeRepo,
		Evidence:            disputeRepo,
		Outbox:              disputeRepo,
		Idempotency:         disputeRepo,
		Directory:           registryDirectory{registry: registryModule},
		Ledger:              ledgerTransferrer{ledger: ledgerModule},
		Clock:               disputepostgres.SystemClock{},
		IDGen:               disputepostgres.UUIDGenerator{},
		MinimumStake:        cfg.MinimumStake,
		TreasuryAccount:     cfg.TreasuryAccount,
		StakeWeightedPayout: cfg.EnableStakeWeightedPayout,
		IdempotencyTTL:      7 * 24 * time.Hour,
		Logger:              logger,
	})

	server := httpserver.New(&disputeModule, registryModule, ledgerModule, logger, normalizeAddr(cfg.HTTPPort))
	server.HealthCheck = pg.Ping
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

	bus, err := messaging.NewBus(cfg.BrokerAddrs, logger)
	if err != nil {
		return nil, err
	}

	disputeRepo := disputepostgres.NewRepository(pg.DB, logger)
	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	ledgerModule := settlementledger.NewModule(settlementledger.Dependencies{
		Repository:     ledgerRepo,
		Idempotency:    ledgerRepo,
		EventDedup:     ledgerRepo,
		Clock:          ledgerpostgres.SystemClock{},
		IDGenerator:    ledgerpostgres.UUIDGenerator{},
		IdempotencyTTL: 7 * 24 * time.Hour,
		EventDedupTTL:  7 * 24 * time.Hour,
		Logger:         logger,
	})

	return &WorkerApp{
		postgres: pg,
		outboxRelay: disputeworkers.OutboxRelay{
			Outbox:    disputeRepo,
			Publisher: bus,
			BatchSize: 100,
			Logger:    logger,
		},
		resolution: ledgerworkers.ResolutionAuditConsumer{
			Subscriber:    bus,
			Service:       ledgerModule.Service,
			ConsumerGroup: "settlement-ledger-resolution-cg",
			Logger:        logger,
		},
		consumeAudit: cfg.EnableResolutionAuditConsumer,
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

// Shutdown drains the HTTP listener. Close still releases the database.
func (a *APIApp) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.consumeAudit {
		if err := w.resolution.Start(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"resolution_consumer", w.consumeAudit,
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
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
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// registryDirectory answers the dispute service's roster checks from the
// registry context.
type registryDirectory struct {
	registry *arbiterregistry.Module
}

func (d registryDirectory) IsAuthorized(ctx context.Context, arbiter string) (bool, error) {
	return d.registry.Queries.IsAuthorized(ctx, arbiter)
}

// ledgerTransferrer moves value through the settlement ledger. Stake and
// payout moves are engine-internal, so no idempotency key is attached.
type ledgerTransferrer struct {
	ledger settlementledger.Module
}

func (t ledgerTransferrer) Transfer(ctx context.Context, from string, to string, amount int64, reason string) error {
	_, _, err := t.ledger.Service.Transfer(ctx, "", from, to, amount, reason)
	return err
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
