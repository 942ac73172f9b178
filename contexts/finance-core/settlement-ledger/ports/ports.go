package ports

import (
	"context"
	"time"

	"tribunal/contexts/finance-core/settlement-ledger/domain/entities"

	contractsv1 "tribunal/contracts/gen/events/v1"
)

// TransferInput carries one atomic movement between two accounts.
type TransferInput struct {
	TransferID    string
	FromAccount   string
	ToAccount     string
	Amount        int64
	Reason        string
	TransferredAt time.Time
}

// CreditInput mints funds onto an account, creating it if needed.
type CreditInput struct {
	AccountID  string
	Amount     int64
	CreditedAt time.Time
}

// LedgerRepository persists accounts, transfers, and settlement audits.
type LedgerRepository interface {
	// ApplyTransfer debits the source, credits the destination, and writes
	// the transfer record in one atomic step. The destination account is
	// created at zero when missing; a missing source fails with
	// ErrAccountNotFound and a short source with ErrInsufficientFunds.
	// No balance moves on any failure.
	ApplyTransfer(ctx context.Context, input TransferInput) (entities.TransferRecord, error)

	// CreditAccount adds funds, creating the account when missing.
	CreditAccount(ctx context.Context, input CreditInput) (entities.Account, error)

	GetAccount(ctx context.Context, accountID string) (entities.Account, error)

	// ListTransfers returns transfers touching the account, newest first.
	// An empty accountID returns all transfers.
	ListTransfers(ctx context.Context, accountID string, limit int) ([]entities.TransferRecord, error)

	RecordSettlement(ctx context.Context, audit entities.SettlementAudit) error
	ListSettlements(ctx context.Context, limit int) ([]entities.SettlementAudit, error)
}

type IdempotencyRecord struct {
	Key             string
	RequestHash     string
	ResponsePayload []byte
	ExpiresAt       time.Time
}

type IdempotencyStore interface {
	GetRecord(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
	PutRecord(ctx context.Context, record IdempotencyRecord) error
}

// EventDedupStore remembers consumed event ids so redelivered events are
// processed at most once.
type EventDedupStore interface {
	ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

// EventSubscriber attaches a handler to a topic within a consumer group.
type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, EventEnvelope) error) error
}
