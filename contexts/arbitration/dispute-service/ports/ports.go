package ports

import (
	"context"
	"time"

	"tribunal/contexts/arbitration/dispute-service/domain/entities"
	contractsv1 "tribunal/contracts/gen/events/v1"
)

// EventEnvelope re-exports the canonical contract so application code stays
// off the contracts package directly.
type EventEnvelope = contractsv1.Envelope

type DisputeRepository interface {
	// CreateDispute persists a new dispute and assigns the next monotonic id.
	CreateDispute(ctx context.Context, dispute entities.Dispute) (entities.Dispute, error)
	GetDispute(ctx context.Context, disputeID int64) (entities.Dispute, error)
	ListDisputes(ctx context.Context, status *entities.DisputeStatus, limit int) ([]entities.Dispute, error)
	// FinalizeDispute transitions an open dispute to a terminal outcome.
	// Returns the updated dispute, or ErrDisputeClosed when it is not open.
	FinalizeDispute(ctx context.Context, disputeID int64, outcome entities.DisputeStatus, resolvedAt time.Time) (entities.Dispute, error)
}

type VoteRepository interface {
	// RecordVote inserts the vote and bumps the dispute's tally and stake
	// totals in one atomic write. Returns the updated dispute.
	// Fails with ErrAlreadyVoted when the (dispute, arbiter) key exists.
	RecordVote(ctx context.Context, vote entities.Vote) (entities.Dispute, error)
	GetVote(ctx context.Context, disputeID int64, arbiter string) (entities.Vote, error)
	// ListVotes returns the dispute's votes in insertion order.
	ListVotes(ctx context.Context, disputeID int64) ([]entities.Vote, error)
}

type EvidenceRepository interface {
	// AppendEvidence persists the record and assigns the next evidence id.
	// Evidence ids are monotonic across all disputes, not per dispute.
	AppendEvidence(ctx context.Context, evidence entities.Evidence) (entities.Evidence, error)
	GetEvidence(ctx context.Context, disputeID int64, evidenceID int64) (entities.Evidence, error)
	ListEvidence(ctx context.Context, disputeID int64) ([]entities.Evidence, error)
}

type OutboxStore interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
	ListPendingOutbox(ctx context.Context, limit int) ([]EventEnvelope, error)
	MarkOutboxPublished(ctx context.Context, eventID string) error
}

type IdempotencyRecord struct {
	Key         string
	RequestHash string
	Operation   string
	DisputeID   int64
	EvidenceID  int64
	ExpiresAt   time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
	Put(ctx context.Context, record IdempotencyRecord) error
}

// ArbiterDirectory answers membership questions against the arbiter
// registry. Votes and resolutions check the directory at call time; votes
// already recorded are never re-checked.
type ArbiterDirectory interface {
	IsAuthorized(ctx context.Context, arbiter string) (bool, error)
}

// ValueTransferrer is the external settlement primitive. A transfer is
// all-or-nothing: on error no balance moved.
type ValueTransferrer interface {
	Transfer(ctx context.Context, from string, to string, amount int64, reason string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, envelope EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
