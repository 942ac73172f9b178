package queries

import (
	"context"
	"log/slog"
	"strings"

	"tribunal/contexts/arbitration/arbiter-registry/domain/entities"
	domainerrors "tribunal/contexts/arbitration/arbiter-registry/domain/errors"
	"tribunal/contexts/arbitration/arbiter-registry/ports"
)

const defaultAuditLimit = 100

// RegistryQueries serves roster and audit reads.
type RegistryQueries struct {
	Repository ports.RegistryRepository
	Logger     *slog.Logger
}

// IsAuthorized reports whether the arbiter currently appears on the roster.
func (q RegistryQueries) IsAuthorized(ctx context.Context, arbiter string) (bool, error) {
	arbiter = strings.TrimSpace(arbiter)
	if arbiter == "" {
		return false, domainerrors.ErrInvalidInput
	}
	return q.Repository.IsAuthorized(ctx, arbiter)
}

// Roster returns the full roster in insertion order.
func (q RegistryQueries) Roster(ctx context.Context) ([]entities.ArbiterEntry, error) {
	return q.Repository.ListArbiters(ctx)
}

// RosterSize returns the current number of roster rows.
func (q RegistryQueries) RosterSize(ctx context.Context) (int, error) {
	return q.Repository.CountArbiters(ctx)
}

// Audit returns audit entries newest first. A non-positive limit falls back
// to the default page size.
func (q RegistryQueries) Audit(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	return q.Repository.ListAudit(ctx, limit)
}
