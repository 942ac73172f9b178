package settlementledger

import (
	"log/slog"
	"time"

	httpadapter "tribunal/contexts/finance-core/settlement-ledger/adapters/http"
	"tribunal/contexts/finance-core/settlement-ledger/adapters/memory"
	"tribunal/contexts/finance-core/settlement-ledger/application"
	"tribunal/contexts/finance-core/settlement-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service

	// Store is set only by NewInMemoryModule.
	Store *memory.Store
}

type Dependencies struct {
	Repository     ports.LedgerRepository
	Idempotency    ports.IdempotencyStore
	EventDedup     ports.EventDedupStore
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	IdempotencyTTL time.Duration
	EventDedupTTL  time.Duration
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:           deps.Repository,
		Idempotency:    deps.Idempotency,
		EventDedup:     deps.EventDedup,
		Clock:          deps.Clock,
		IDGen:          deps.IDGenerator,
		IdempotencyTTL: deps.IdempotencyTTL,
		EventDedupTTL:  deps.EventDedupTTL,
		Logger:         deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:     store,
		Idempotency:    store,
		EventDedup:     store,
		Clock:          store,
		IDGenerator:    store,
		IdempotencyTTL: 7 * 24 * time.Hour,
		EventDedupTTL:  7 * 24 * time.Hour,
		Logger:         logger,
	})
	module.Store = store
	return module
}
