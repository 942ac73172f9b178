package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"tribunal/contexts/finance-core/settlement-ledger/domain/entities"
	domainerrors "tribunal/contexts/finance-core/settlement-ledger/domain/errors"
	"tribunal/contexts/finance-core/settlement-ledger/ports"
)

// Service is the ledger's single application entrypoint. Transfers and
// credits optionally honor an idempotency key; callers inside the process
// pass an empty key and rely on their own replay protection.
type Service struct {
	Repo           ports.LedgerRepository
	Idempotency    ports.IdempotencyStore
	EventDedup     ports.EventDedupStore
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	IdempotencyTTL time.Duration
	EventDedupTTL  time.Duration
	Logger         *slog.Logger
}

// Transfer atomically moves amount from one account to another. Either both
// balances change and a record is written, or nothing changes at all.
func (s Service) Transfer(
	ctx context.Context,
	idempotencyKey string,
	fromAccount string,
	toAccount string,
	amount int64,
	reason string,
) (entities.TransferRecord, bool, error) {
	fromAccount = strings.TrimSpace(fromAccount)
	toAccount = strings.TrimSpace(toAccount)
	if fromAccount == "" || toAccount == "" {
		return entities.TransferRecord{}, false, domainerrors.ErrInvalidInput
	}
	if amount <= 0 {
		return entities.TransferRecord{}, false, domainerrors.ErrInvalidAmount
	}
	if fromAccount == toAccount {
		return entities.TransferRecord{}, false, domainerrors.ErrSameAccount
	}

	now := s.now()
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	var requestHash string
	if idempotencyKey != "" {
		requestHash = hashPayload(map[string]any{
			"from_account": fromAccount,
			"to_account":   toAccount,
			"amount":       amount,
			"reason":       strings.TrimSpace(reason),
		})
		record, found, err := s.Idempotency.GetRecord(ctx, "ledger_transfer:"+idempotencyKey, now)
		if err != nil {
			return entities.TransferRecord{}, false, err
		}
		if found {
			if record.RequestHash != requestHash {
				return entities.TransferRecord{}, false, domainerrors.ErrIdempotencyConflict
			}
			var replayed entities.TransferRecord
			if err := json.Unmarshal(record.ResponsePayload, &replayed); err != nil {
				return entities.TransferRecord{}, false, err
			}
			return replayed, true, nil
		}
	}

	transferID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.TransferRecord{}, false, err
	}
	transfer, err := s.Repo.ApplyTransfer(ctx, ports.TransferInput{
		TransferID:    strings.TrimSpace(transferID),
		FromAccount:   fromAccount,
		ToAccount:     toAccount,
		Amount:        amount,
		Reason:        strings.TrimSpace(reason),
		TransferredAt: now,
	})
	if err != nil {
		return entities.TransferRecord{}, false, err
	}

	if idempotencyKey != "" {
		payload, err := json.Marshal(transfer)
		if err != nil {
			return entities.TransferRecord{}, false, err
		}
		if err := s.Idempotency.PutRecord(ctx, ports.IdempotencyRecord{
			Key:             "ledger_transfer:" + idempotencyKey,
			RequestHash:     requestHash,
			ResponsePayload: payload,
			ExpiresAt:       now.Add(s.idempotencyTTL()),
		}); err != nil {
			return entities.TransferRecord{}, false, err
		}
	}

	ResolveLogger(s.Logger).Info("ledger transfer applied",
		"event", "ledger_transfer_applied",
		"module", "finance-core/settlement-ledger",
		"layer", "application",
		"transfer_id", transfer.TransferID,
		"from_account", transfer.FromAccount,
		"to_account", transfer.ToAccount,
		"amount", transfer.Amount,
	)
	return transfer, false, nil
}

// Credit adds funds to an account, creating it when missing. Operators use
// this to seed arbiter balances and the treasury.
func (s Service) Credit(
	ctx context.Context,
	idempotencyKey string,
	accountID string,
	amount int64,
) (entities.Account, bool, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return entities.Account{}, false, domainerrors.ErrInvalidInput
	}
	if amount <= 0 {
		return entities.Account{}, false, domainerrors.ErrInvalidAmount
	}

	now := s.now()
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	var requestHash string
	if idempotencyKey != "" {
		requestHash = hashPayload(map[string]any{
			"account_id": accountID,
			"amount":     amount,
		})
		record, found, err := s.Idempotency.GetRecord(ctx, "ledger_credit:"+idempotencyKey, now)
		if err != nil {
			return entities.Account{}, false, err
		}
		if found {
			if record.RequestHash != requestHash {
				return entities.Account{}, false, domainerrors.ErrIdempotencyConflict
			}
			var replayed entities.Account
			if err := json.Unmarshal(record.ResponsePayload, &replayed); err != nil {
				return entities.Account{}, false, err
			}
			return replayed, true, nil
		}
	}

	account, err := s.Repo.CreditAccount(ctx, ports.CreditInput{
		AccountID:  accountID,
		Amount:     amount,
		CreditedAt: now,
	})
	if err != nil {
		return entities.Account{}, false, err
	}

	if idempotencyKey != "" {
		payload, err := json.Marshal(account)
		if err != nil {
			return entities.Account{}, false, err
		}
		if err := s.Idempotency.PutRecord(ctx, ports.IdempotencyRecord{
			Key:             "ledger_credit:" + idempotencyKey,
			RequestHash:     requestHash,
			ResponsePayload: payload,
			ExpiresAt:       now.Add(s.idempotencyTTL()),
		}); err != nil {
			return entities.Account{}, false, err
		}
	}

	ResolveLogger(s.Logger).Info("ledger account credited",
		"event", "ledger_account_credited",
		"module", "finance-core/settlement-ledger",
		"layer", "application",
		"account_id", account.AccountID,
		"amount", amount,
		"balance", account.Balance,
	)
	return account, false, nil
}

// Balance returns the current account state.
func (s Service) Balance(ctx context.Context, accountID string) (entities.Account, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return entities.Account{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.GetAccount(ctx, accountID)
}

// History lists transfers touching the account, newest first. An empty
// account lists everything.
func (s Service) History(ctx context.Context, accountID string, limit int) ([]entities.TransferRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.Repo.ListTransfers(ctx, strings.TrimSpace(accountID), limit)
}

// Settlements lists recorded resolution settlements, newest first.
func (s Service) Settlements(ctx context.Context, limit int) ([]entities.SettlementAudit, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.Repo.ListSettlements(ctx, limit)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) idempotencyTTL() time.Duration {
	if s.IdempotencyTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.IdempotencyTTL
}

func (s Service) eventDedupTTL() time.Duration {
	if s.EventDedupTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.EventDedupTTL
}

func hashPayload(payload map[string]any) string {
	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// ResolveLogger falls back to the process default so nil loggers stay safe.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
