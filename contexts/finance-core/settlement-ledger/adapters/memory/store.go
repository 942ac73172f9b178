package memory

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"tribunal/contexts/finance-core/settlement-ledger/domain/entities"
	domainerrors "tribunal/contexts/finance-core/settlement-ledger/domain/errors"
	"tribunal/contexts/finance-core/settlement-ledger/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	accounts    map[string]entities.Account
	transfers   []entities.TransferRecord
	settlements []entities.SettlementAudit
	idempotency map[string]ports.IdempotencyRecord
	eventDedup  map[string]dedupRecord
}

type dedupRecord struct {
	PayloadHash string
	ExpiresAt   time.Time
}

func NewStore() *Store {
	return &Store{
		accounts:    make(map[string]entities.Account),
		idempotency: make(map[string]ports.IdempotencyRecord),
		eventDedup:  make(map[string]dedupRecord),
	}
}

// ApplyTransfer moves the amount under one lock so both balances and the
// record change together or not at all.
func (s *Store) ApplyTransfer(_ context.Context, input ports.TransferInput) (entities.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.accounts[input.FromAccount]
	if !ok {
		return entities.TransferRecord{}, domainerrors.ErrAccountNotFound
	}
	if from.Balance < input.Amount {
		return entities.TransferRecord{}, domainerrors.ErrInsufficientFunds
	}

	at := input.TransferredAt.UTC()
	to, ok := s.accounts[input.ToAccount]
	if !ok {
		to = entities.Account{AccountID: input.ToAccount, CreatedAt: at}
	}

	from.Balance -= input.Amount
	from.UpdatedAt = at
	to.Balance += input.Amount
	to.UpdatedAt = at
	s.accounts[input.FromAccount] = from
	s.accounts[input.ToAccount] = to

	record := entities.TransferRecord{
		TransferID:    input.TransferID,
		FromAccount:   input.FromAccount,
		ToAccount:     input.ToAccount,
		Amount:        input.Amount,
		Reason:        input.Reason,
		TransferredAt: at,
	}
	s.transfers = append(s.transfers, record)
	return record, nil
}

func (s *Store) CreditAccount(_ context.Context, input ports.CreditInput) (entities.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := input.CreditedAt.UTC()
	account, ok := s.accounts[input.AccountID]
	if !ok {
		account = entities.Account{AccountID: input.AccountID, CreatedAt: at}
	}
	account.Balance += input.Amount
	account.UpdatedAt = at
	s.accounts[input.AccountID] = account
	return account, nil
}

func (s *Store) GetAccount(_ context.Context, accountID string) (entities.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return entities.Account{}, domainerrors.ErrAccountNotFound
	}
	return account, nil
}

// ListTransfers returns transfers touching the account, newest first.
func (s *Store) ListTransfers(_ context.Context, accountID string, limit int) ([]entities.TransferRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.TransferRecord, 0, limit)
	for i := len(s.transfers) - 1; i >= 0 && len(items) < limit; i-- {
		record := s.transfers[i]
		if accountID != "" && record.FromAccount != accountID && record.ToAccount != accountID {
			continue
		}
		items = append(items, record)
	}
	return items, nil
}

func (s *Store) RecordSettlement(_ context.Context, audit entities.SettlementAudit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settlements = append(s.settlements, audit)
	return nil
}

func (s *Store) ListSettlements(_ context.Context, limit int) ([]entities.SettlementAudit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.SettlementAudit, 0, limit)
	for i := len(s.settlements) - 1; i >= 0 && len(items) < limit; i-- {
		items = append(items, s.settlements[i])
	}
	return items, nil
}

func (s *Store) GetRecord(_ context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.idempotency[strings.TrimSpace(key)]
	if !ok {
		return ports.IdempotencyRecord{}, false, nil
	}
	if !record.ExpiresAt.After(now.UTC()) {
		delete(s.idempotency, strings.TrimSpace(key))
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) PutRecord(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(record.Key)
	if key == "" {
		return domainerrors.ErrInvalidInput
	}
	if existing, ok := s.idempotency[key]; ok {
		if existing.RequestHash != record.RequestHash {
			return domainerrors.ErrIdempotencyConflict
		}
		if !bytes.Equal(existing.ResponsePayload, record.ResponsePayload) {
			return domainerrors.ErrIdempotencyConflict
		}
		return nil
	}
	s.idempotency[key] = record
	return nil
}

func (s *Store) ReserveEvent(_ context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(eventID)
	if key == "" {
		return false, domainerrors.ErrInvalidInput
	}
	if existing, ok := s.eventDedup[key]; ok {
		if existing.PayloadHash != payloadHash {
			return false, domainerrors.ErrIdempotencyConflict
		}
		return true, nil
	}
	s.eventDedup[key] = dedupRecord{
		PayloadHash: payloadHash,
		ExpiresAt:   expiresAt.UTC(),
	}
	return false, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var (
	_ ports.LedgerRepository = (*Store)(nil)
	_ ports.IdempotencyStore = (*Store)(nil)
	_ ports.EventDedupStore  = (*Store)(nil)
	_ ports.Clock            = (*Store)(nil)
	_ ports.IDGenerator      = (*Store)(nil)
)
