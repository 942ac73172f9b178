package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tribunal/contexts/arbitration/arbiter-registry/domain/entities"
	domainerrors "tribunal/contexts/arbitration/arbiter-registry/domain/errors"
	"tribunal/contexts/arbitration/arbiter-registry/ports"

	"gorm.io/gorm"
)

// rosterLockID serializes roster mutations so the capacity check and the
// insert run under one advisory lock. Row locks cannot fence a count.
const rosterLockID int64 = 0x5452424e01

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

func (r *Repository) AppendArbiter(ctx context.Context, input ports.AuthorizeInput) (ports.RegistryMutation, error) {
	var mutation ports.RegistryMutation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", rosterLockID).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&arbiterModel{}).Count(&count).Error; err != nil {
			return err
		}
		if count >= entities.RegistryCapacity {
			return domainerrors.ErrNotAuthorized
		}
		row := arbiterModel{
			EntryID:      input.EntryID,
			Arbiter:      input.Arbiter,
			AuthorizedBy: input.AuthorizedBy,
			AuthorizedAt: input.AuthorizedAt.UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		audit := auditModel{
			AuditID:    input.AuditID,
			Action:     string(entities.ActionAuthorize),
			Actor:      input.AuthorizedBy,
			Arbiter:    input.Arbiter,
			OccurredAt: input.AuthorizedAt.UTC(),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}
		mutation = ports.RegistryMutation{Entry: row.toEntity(), RosterSize: int(count) + 1}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotAuthorized) {
			return ports.RegistryMutation{}, err
		}
		return ports.RegistryMutation{}, r.logError("registry_repo_append_failed", err, "arbiter", input.Arbiter)
	}
	return mutation, nil
}

func (r *Repository) RemoveArbiter(ctx context.Context, input ports.RevokeInput) (ports.RegistryMutation, error) {
	var mutation ports.RegistryMutation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", rosterLockID).Error; err != nil {
			return err
		}
		result := tx.Where("arbiter = ?", input.Arbiter).Delete(&arbiterModel{})
		if result.Error != nil {
			return result.Error
		}
		var count int64
		if err := tx.Model(&arbiterModel{}).Count(&count).Error; err != nil {
			return err
		}
		audit := auditModel{
			AuditID:    input.AuditID,
			Action:     string(entities.ActionRevoke),
			Actor:      input.RevokedBy,
			Arbiter:    input.Arbiter,
			Removed:    int(result.RowsAffected),
			OccurredAt: input.RevokedAt.UTC(),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}
		mutation = ports.RegistryMutation{Removed: int(result.RowsAffected), RosterSize: int(count)}
		return nil
	})
	if err != nil {
		return ports.RegistryMutation{}, r.logError("registry_repo_remove_failed", err, "arbiter", input.Arbiter)
	}
	return mutation, nil
}

func (r *Repository) IsAuthorized(ctx context.Context, arbiter string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&arbiterModel{}).
		Where("arbiter = ?", arbiter).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("registry_repo_is_authorized_failed", err, "arbiter", arbiter)
	}
	return count > 0, nil
}

func (r *Repository) ListArbiters(ctx context.Context) ([]entities.ArbiterEntry, error) {
	var rows []arbiterModel
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("registry_repo_list_arbiters_failed", err)
	}
	items := make([]entities.ArbiterEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CountArbiters(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&arbiterModel{}).Count(&count).Error; err != nil {
		return 0, r.logError("registry_repo_count_arbiters_failed", err)
	}
	return int(count), nil
}

func (r *Repository) ListAudit(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	var rows []auditModel
	err := r.db.WithContext(ctx).
		Order("seq DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("registry_repo_list_audit_failed", err)
	}
	items := make([]entities.AuditEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.AuditEntry{
			AuditID:    row.AuditID,
			Action:     entities.RegistryAction(row.Action),
			Actor:      row.Actor,
			Arbiter:    row.Arbiter,
			Removed:    row.Removed,
			OccurredAt: row.OccurredAt,
		})
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "arbitration/arbiter-registry",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("registry repository operation failed", fields...)
	return err
}

type arbiterModel struct {
	Seq          int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	EntryID      string    `gorm:"column:entry_id"`
	Arbiter      string    `gorm:"column:arbiter;index"`
	AuthorizedBy string    `gorm:"column:authorized_by"`
	AuthorizedAt time.Time `gorm:"column:authorized_at"`
}

func (arbiterModel) TableName() string { return "registry_arbiters" }

func (m arbiterModel) toEntity() entities.ArbiterEntry {
	return entities.ArbiterEntry{
		EntryID:      m.EntryID,
		Arbiter:      m.Arbiter,
		AuthorizedBy: m.AuthorizedBy,
		AuthorizedAt: m.AuthorizedAt,
	}
}

type auditModel struct {
	Seq        int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	AuditID    string    `gorm:"column:audit_id"`
	Action     string    `gorm:"column:action"`
	Actor      string    `gorm:"column:actor"`
	Arbiter    string    `gorm:"column:arbiter"`
	Removed    int       `gorm:"column:removed"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
}

func (auditModel) TableName() string { return "registry_audit" }

var _ ports.RegistryRepository = (*Repository)(nil)
