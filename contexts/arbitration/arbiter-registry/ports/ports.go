// Package ports declares the interfaces the arbiter registry depends on.
package ports

import (
	"context"
	"time"

	"tribunal/contexts/arbitration/arbiter-registry/domain/entities"
)

// AuthorizeInput carries one roster append together with its audit row.
type AuthorizeInput struct {
	EntryID      string
	AuditID      string
	Arbiter      string
	AuthorizedBy string
	AuthorizedAt time.Time
}

// RevokeInput carries one roster removal together with its audit row.
type RevokeInput struct {
	AuditID   string
	Arbiter   string
	RevokedBy string
	RevokedAt time.Time
}

// RegistryMutation reports roster state after a successful mutation.
type RegistryMutation struct {
	Entry      entities.ArbiterEntry
	Removed    int
	RosterSize int
}

// RegistryRepository persists the arbiter roster and its audit trail.
// Mutations write the roster row and the audit row atomically.
type RegistryRepository interface {
	// AppendArbiter adds a roster row. Duplicate arbiters are legal and
	// produce additional rows. When the roster already holds
	// entities.RegistryCapacity rows the append fails with
	// domain ErrNotAuthorized and writes nothing.
	AppendArbiter(ctx context.Context, input AuthorizeInput) (RegistryMutation, error)

	// RemoveArbiter deletes every roster row naming the target arbiter and
	// reports how many rows went away. Removing an absent arbiter succeeds
	// with a zero count.
	RemoveArbiter(ctx context.Context, input RevokeInput) (RegistryMutation, error)

	// IsAuthorized reports whether at least one roster row names the arbiter.
	IsAuthorized(ctx context.Context, arbiter string) (bool, error)

	// ListArbiters returns the roster in insertion order.
	ListArbiters(ctx context.Context) ([]entities.ArbiterEntry, error)

	// CountArbiters returns the current roster size.
	CountArbiters(ctx context.Context) (int, error)

	// ListAudit returns audit entries newest first, capped at limit.
	ListAudit(ctx context.Context, limit int) ([]entities.AuditEntry, error)
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator mints identifiers for roster entries and audit rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
