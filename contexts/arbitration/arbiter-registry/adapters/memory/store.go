// Package memory provides an in-memory registry adapter for tests and
// local development wiring.
package memory

import (
	"context"
	"sync"
	"time"

	"tribunal/contexts/arbitration/arbiter-registry/domain/entities"
	domainerrors "tribunal/contexts/arbitration/arbiter-registry/domain/errors"
	"tribunal/contexts/arbitration/arbiter-registry/ports"

	"github.com/google/uuid"
)

// Store keeps the roster as an ordered slice so duplicate entries and
// insertion order survive exactly as written.
type Store struct {
	mu     sync.RWMutex
	roster []entities.ArbiterEntry
	audit  []entities.AuditEntry
}

// NewStore builds an empty in-memory registry.
func NewStore() *Store {
	return &Store{}
}

// AppendArbiter adds a roster row unless the roster is at capacity.
func (s *Store) AppendArbiter(_ context.Context, input ports.AuthorizeInput) (ports.RegistryMutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.roster) >= entities.RegistryCapacity {
		return ports.RegistryMutation{}, domainerrors.ErrNotAuthorized
	}

	entry := entities.ArbiterEntry{
		EntryID:      input.EntryID,
		Arbiter:      input.Arbiter,
		AuthorizedBy: input.AuthorizedBy,
		AuthorizedAt: input.AuthorizedAt,
	}
	s.roster = append(s.roster, entry)
	s.audit = append(s.audit, entities.AuditEntry{
		AuditID:    input.AuditID,
		Action:     entities.ActionAuthorize,
		Actor:      input.AuthorizedBy,
		Arbiter:    input.Arbiter,
		OccurredAt: input.AuthorizedAt,
	})
	return ports.RegistryMutation{Entry: entry, RosterSize: len(s.roster)}, nil
}

// RemoveArbiter deletes every row naming the arbiter and records the audit row.
func (s *Store) RemoveArbiter(_ context.Context, input ports.RevokeInput) (ports.RegistryMutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.roster[:0]
	removed := 0
	for _, entry := range s.roster {
		if entry.Arbiter == input.Arbiter {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	s.roster = kept
	s.audit = append(s.audit, entities.AuditEntry{
		AuditID:    input.AuditID,
		Action:     entities.ActionRevoke,
		Actor:      input.RevokedBy,
		Arbiter:    input.Arbiter,
		Removed:    removed,
		OccurredAt: input.RevokedAt,
	})
	return ports.RegistryMutation{Removed: removed, RosterSize: len(s.roster)}, nil
}

// IsAuthorized reports roster membership.
func (s *Store) IsAuthorized(_ context.Context, arbiter string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.roster {
		if entry.Arbiter == arbiter {
			return true, nil
		}
	}
	return false, nil
}

// ListArbiters returns the roster in insertion order.
func (s *Store) ListArbiters(_ context.Context) ([]entities.ArbiterEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ArbiterEntry, len(s.roster))
	copy(items, s.roster)
	return items, nil
}

// CountArbiters returns the roster size.
func (s *Store) CountArbiters(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.roster), nil
}

// ListAudit returns audit entries newest first.
func (s *Store) ListAudit(_ context.Context, limit int) ([]entities.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.AuditEntry, 0, limit)
	for i := len(s.audit) - 1; i >= 0 && len(items) < limit; i-- {
		items = append(items, s.audit[i])
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var (
	_ ports.RegistryRepository = (*Store)(nil)
	_ ports.Clock              = (*Store)(nil)
	_ ports.IDGenerator        = (*Store)(nil)
)
