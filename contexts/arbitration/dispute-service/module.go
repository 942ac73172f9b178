package disputeservice

import (
	"log/slog"
	"time"

	httpadapter "tribunal/contexts/arbitration/dispute-service/adapters/http"
	"tribunal/contexts/arbitration/dispute-service/adapters/memory"
	"tribunal/contexts/arbitration/dispute-service/application/commands"
	"tribunal/contexts/arbitration/dispute-service/application/queries"
	"tribunal/contexts/arbitration/dispute-service/application/workers"
	"tribunal/contexts/arbitration/dispute-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Outbox  ports.OutboxStore
	Store   *memory.Store
}

type Dependencies struct {
	Disputes        ports.DisputeRepository
	Votes           ports.VoteRepository
	Evidence        ports.EvidenceRepository
	Outbox          ports.OutboxStore
	Idempotency     ports.IdempotencyStore
	Directory       ports.ArbiterDirectory
	Ledger          ports.ValueTransferrer
	Clock           ports.Clock
	IDGen           ports.IDGenerator
	MinimumStake    int64
	TreasuryAccount string
	// StakeWeightedPayout selects the corrected reward divisor (winning
	// stake sum) instead of the historical winning vote count.
	StakeWeightedPayout bool
	IdempotencyTTL      time.Duration
	Logger              *slog.Logger
}

func NewModule(deps Dependencies) Module {
	locks := commands.NewDisputeLocks()
	openDispute := commands.OpenDisputeUseCase{
		Disputes:       deps.Disputes,
		Idempotency:    deps.Idempotency,
		Outbox:         deps.Outbox,
		Clock:          deps.Clock,
		IDGen:          deps.IDGen,
		IdempotencyTTL: deps.IdempotencyTTL,
		Logger:         deps.Logger,
	}
	submitEvidence := commands.SubmitEvidenceUseCase{
		Disputes:       deps.Disputes,
		Evidence:       deps.Evidence,
		Idempotency:    deps.Idempotency,
		Outbox:         deps.Outbox,
		Clock:          deps.Clock,
		IDGen:          deps.IDGen,
		IdempotencyTTL: deps.IdempotencyTTL,
		Logger:         deps.Logger,
	}
	castVote := commands.CastVoteUseCase{
		Disputes:        deps.Disputes,
		Votes:           deps.Votes,
		Directory:       deps.Directory,
		Ledger:          deps.Ledger,
		Outbox:          deps.Outbox,
		Clock:           deps.Clock,
		IDGen:           deps.IDGen,
		Locks:           locks,
		MinimumStake:    deps.MinimumStake,
		TreasuryAccount: deps.TreasuryAccount,
		Logger:          deps.Logger,
	}
	resolve := commands.ResolveDisputeUseCase{
		Disputes:            deps.Disputes,
		Votes:               deps.Votes,
		Directory:           deps.Directory,
		Ledger:              deps.Ledger,
		Outbox:              deps.Outbox,
		Clock:               deps.Clock,
		IDGen:               deps.IDGen,
		Locks:               locks,
		TreasuryAccount:     deps.TreasuryAccount,
		StakeWeightedPayout: deps.StakeWeightedPayout,
		Logger:              deps.Logger,
	}
	disputeQueries := queries.DisputeQueries{
		Disputes: deps.Disputes,
		Votes:    deps.Votes,
		Evidence: deps.Evidence,
	}
	return Module{
		Handler: httpadapter.Handler{
			OpenDispute:    openDispute,
			SubmitEvidence: submitEvidence,
			CastVote:       castVote,
			Resolve:        resolve,
			Queries:        disputeQueries,
			Logger:         deps.Logger,
		},
		Outbox: deps.Outbox,
	}
}

// NewOutboxRelay builds the worker that drains this module's outbox to the
// bus.
func (m Module) NewOutboxRelay(publisher ports.EventPublisher, batchSize int, logger *slog.Logger) workers.OutboxRelay {
	return workers.OutboxRelay{
		Outbox:    m.Outbox,
		Publisher: publisher,
		BatchSize: batchSize,
		Logger:    logger,
	}
}

// NewInMemoryModule wires the module against the in-memory store. Directory
// and Ledger stay injectable so tests can pair it with the registry and
// settlement modules or with stubs.
func NewInMemoryModule(
	directory ports.ArbiterDirectory,
	ledger ports.ValueTransferrer,
	minimumStake int64,
	treasuryAccount string,
	logger *slog.Logger,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Disputes:        store,
		Votes:           store,
		Evidence:        store,
		Outbox:          store,
		Idempotency:     store,
		Directory:       directory,
		Ledger:          ledger,
		Clock:           store,
		IDGen:           store,
		MinimumStake:    minimumStake,
		TreasuryAccount: treasuryAccount,
		IdempotencyTTL:  24 * time.Hour,
		Logger:          logger,
	})
	module.Store = store
	return module
}
