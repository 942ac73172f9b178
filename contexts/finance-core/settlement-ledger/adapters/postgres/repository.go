package postgresadapter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	"tribunal/contexts/finance-core/settlement-ledger/domain/entities"
	domainerrors "tribunal/contexts/finance-core/settlement-ledger/domain/errors"
	"tribunal/contexts/finance-core/settlement-ledger/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// ApplyTransfer locks both account rows in lexical order so opposing
// transfers cannot deadlock, then moves the balance and writes the record
// in the same transaction.
func (r *Repository) ApplyTransfer(ctx context.Context, input ports.TransferInput) (entities.TransferRecord, error) {
	var applied transferModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []accountModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_id IN ?", []string{input.FromAccount, input.ToAccount}).
			Order("account_id ASC").
			Find(&rows).
			Error; err != nil {
			return err
		}

		var from, to *accountModel
		for i := range rows {
			switch rows[i].AccountID {
			case input.FromAccount:
				from = &rows[i]
			case input.ToAccount:
				to = &rows[i]
			}
		}
		if from == nil {
			return domainerrors.ErrAccountNotFound
		}
		if from.Balance < input.Amount {
			return domainerrors.ErrInsufficientFunds
		}

		at := input.TransferredAt.UTC()
		from.Balance -= input.Amount
		from.UpdatedAt = at
		if err := tx.Save(from).Error; err != nil {
			return err
		}
		if to == nil {
			created := accountModel{
				AccountID: input.ToAccount,
				Balance:   input.Amount,
				CreatedAt: at,
				UpdatedAt: at,
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
		} else {
			to.Balance += input.Amount
			to.UpdatedAt = at
			if err := tx.Save(to).Error; err != nil {
				return err
			}
		}

		applied = transferModel{
			TransferID:    input.TransferID,
			FromAccount:   input.FromAccount,
			ToAccount:     input.ToAccount,
			Amount:        input.Amount,
			Reason:        input.Reason,
			TransferredAt: at,
		}
		return tx.Create(&applied).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAccountNotFound) || errors.Is(err, domainerrors.ErrInsufficientFunds) {
			return entities.TransferRecord{}, err
		}
		return entities.TransferRecord{}, r.logError("ledger_repo_apply_transfer_failed", err,
			"from_account", input.FromAccount,
			"to_account", input.ToAccount,
		)
	}
	return applied.toEntity(), nil
}

func (r *Repository) CreditAccount(ctx context.Context, input ports.CreditInput) (entities.Account, error) {
	var credited accountModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		at := input.CreditedAt.UTC()
		var row accountModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_id = ?", input.AccountID).
			First(&row).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = accountModel{
				AccountID: input.AccountID,
				Balance:   input.Amount,
				CreatedAt: at,
				UpdatedAt: at,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			credited = row
			return nil
		}
		if err != nil {
			return err
		}
		row.Balance += input.Amount
		row.UpdatedAt = at
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		credited = row
		return nil
	})
	if err != nil {
		return entities.Account{}, r.logError("ledger_repo_credit_failed", err, "account_id", input.AccountID)
	}
	return credited.toEntity(), nil
}

func (r *Repository) GetAccount(ctx context.Context, accountID string) (entities.Account, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Account{}, domainerrors.ErrAccountNotFound
		}
		return entities.Account{}, r.logError("ledger_repo_get_account_failed", err, "account_id", accountID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListTransfers(ctx context.Context, accountID string, limit int) ([]entities.TransferRecord, error) {
	tx := r.db.WithContext(ctx).Model(&transferModel{})
	if accountID != "" {
		tx = tx.Where("from_account = ? OR to_account = ?", accountID, accountID)
	}
	var rows []transferModel
	if err := tx.Order("seq DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, r.logError("ledger_repo_list_transfers_failed", err, "account_id", accountID)
	}
	items := make([]entities.TransferRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) RecordSettlement(ctx context.Context, audit entities.SettlementAudit) error {
	row := settlementModel{
		AuditID:       audit.AuditID,
		EventID:       audit.EventID,
		DisputeID:     audit.DisputeID,
		Outcome:       audit.Outcome,
		RewardsPaid:   audit.RewardsPaid,
		PayoutsFailed: audit.PayoutsFailed,
		TotalPaid:     audit.TotalPaid,
		RecordedAt:    audit.RecordedAt.UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(&row).
		Error
	if err != nil {
		return r.logError("ledger_repo_record_settlement_failed", err, "event_id", audit.EventID)
	}
	return nil
}

func (r *Repository) ListSettlements(ctx context.Context, limit int) ([]entities.SettlementAudit, error) {
	var rows []settlementModel
	err := r.db.WithContext(ctx).
		Order("seq DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("ledger_repo_list_settlements_failed", err)
	}
	items := make([]entities.SettlementAudit, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.SettlementAudit{
			AuditID:       row.AuditID,
			EventID:       row.EventID,
			DisputeID:     row.DisputeID,
			Outcome:       row.Outcome,
			RewardsPaid:   row.RewardsPaid,
			PayoutsFailed: row.PayoutsFailed,
			TotalPaid:     row.TotalPaid,
			RecordedAt:    row.RecordedAt,
		})
	}
	return items, nil
}

func (r *Repository) GetRecord(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, r.logError("ledger_repo_idempotency_get_failed", err)
	}
	if !row.ExpiresAt.After(now.UTC()) {
		if err := r.db.WithContext(ctx).Where("key = ?", key).Delete(&idempotencyModel{}).Error; err != nil {
			return ports.IdempotencyRecord{}, false, r.logError("ledger_repo_idempotency_expire_failed", err)
		}
		return ports.IdempotencyRecord{}, false, nil
	}
	return ports.IdempotencyRecord{
		Key:             row.Key,
		RequestHash:     row.RequestHash,
		ResponsePayload: row.ResponsePayload,
		ExpiresAt:       row.ExpiresAt,
	}, true, nil
}

func (r *Repository) PutRecord(ctx context.Context, record ports.IdempotencyRecord) error {
	row := idempotencyModel{
		Key:             record.Key,
		RequestHash:     record.RequestHash,
		ResponsePayload: record.ResponsePayload,
		ExpiresAt:       record.ExpiresAt.UTC(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		return r.logError("ledger_repo_idempotency_put_failed", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}
	var existing idempotencyModel
	if err := r.db.WithContext(ctx).Where("key = ?", record.Key).First(&existing).Error; err != nil {
		return r.logError("ledger_repo_idempotency_put_failed", err)
	}
	if existing.RequestHash != record.RequestHash || !bytes.Equal(existing.ResponsePayload, record.ResponsePayload) {
		return domainerrors.ErrIdempotencyConflict
	}
	return nil
}

func (r *Repository) ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error) {
	row := dedupModel{
		EventID:     eventID,
		PayloadHash: payloadHash,
		ExpiresAt:   expiresAt.UTC(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		return false, r.logError("ledger_repo_reserve_event_failed", result.Error, "event_id", eventID)
	}
	if result.RowsAffected > 0 {
		return false, nil
	}
	var existing dedupModel
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&existing).Error; err != nil {
		return false, r.logError("ledger_repo_reserve_event_failed", err, "event_id", eventID)
	}
	if existing.PayloadHash != payloadHash {
		return false, domainerrors.ErrIdempotencyConflict
	}
	return true, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "finance-core/settlement-ledger",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("ledger repository operation failed", fields...)
	return err
}

type accountModel struct {
	AccountID string    `gorm:"column:account_id;primaryKey"`
	Balance   int64     `gorm:"column:balance"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "ledger_accounts" }

func (m accountModel) toEntity() entities.Account {
	return entities.Account{
		AccountID: m.AccountID,
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type transferModel struct {
	Seq           int64     `gorm:"column:seq;autoIncrement;->"`
	TransferID    string    `gorm:"column:transfer_id;primaryKey"`
	FromAccount   string    `gorm:"column:from_account;index"`
	ToAccount     string    `gorm:"column:to_account;index"`
	Amount        int64     `gorm:"column:amount"`
	Reason        string    `gorm:"column:reason"`
	TransferredAt time.Time `gorm:"column:transferred_at"`
}

func (transferModel) TableName() string { return "ledger_transfers" }

func (m transferModel) toEntity() entities.TransferRecord {
	return entities.TransferRecord{
		TransferID:    m.TransferID,
		FromAccount:   m.FromAccount,
		ToAccount:     m.ToAccount,
		Amount:        m.Amount,
		Reason:        m.Reason,
		TransferredAt: m.TransferredAt,
	}
}

type settlementModel struct {
	Seq           int64     `gorm:"column:seq;autoIncrement;->"`
	AuditID       string    `gorm:"column:audit_id;primaryKey"`
	EventID       string    `gorm:"column:event_id;uniqueIndex"`
	DisputeID     int64     `gorm:"column:dispute_id;index"`
	Outcome       string    `gorm:"column:outcome"`
	RewardsPaid   int       `gorm:"column:rewards_paid"`
	PayoutsFailed int       `gorm:"column:payouts_failed"`
	TotalPaid     int64     `gorm:"column:total_paid"`
	RecordedAt    time.Time `gorm:"column:recorded_at"`
}

func (settlementModel) TableName() string { return "ledger_settlements" }

type idempotencyModel struct {
	Key             string    `gorm:"column:key;primaryKey"`
	RequestHash     string    `gorm:"column:request_hash"`
	ResponsePayload []byte    `gorm:"column:response_payload"`
	ExpiresAt       time.Time `gorm:"column:expires_at"`
}

func (idempotencyModel) TableName() string { return "ledger_idempotency" }

type dedupModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	PayloadHash string    `gorm:"column:payload_hash"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
}

func (dedupModel) TableName() string { return "ledger_event_dedup" }

var (
	_ ports.LedgerRepository = (*Repository)(nil)
	_ ports.IdempotencyStore = (*Repository)(nil)
	_ ports.EventDedupStore  = (*Repository)(nil)
)
