package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tribunal/contexts/arbitration/dispute-service/domain/entities"
	domainerrors "tribunal/contexts/arbitration/dispute-service/domain/errors"
	"tribunal/contexts/arbitration/dispute-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
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

func (r *Repository) CreateDispute(ctx context.Context, dispute entities.Dispute) (entities.Dispute, error) {
	row := disputeModelFromEntity(dispute)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Dispute{}, r.logError("arbitration_repo_create_dispute_failed", err,
			"creator", dispute.Creator,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetDispute(ctx context.Context, disputeID int64) (entities.Dispute, error) {
	var row disputeModel
	err := r.db.WithContext(ctx).
		Where("id = ?", disputeID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Dispute{}, domainerrors.ErrInvalidDispute
		}
		return entities.Dispute{}, r.logError("arbitration_repo_get_dispute_failed", err, "dispute_id", disputeID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListDisputes(ctx context.Context, status *entities.DisputeStatus, limit int) ([]entities.Dispute, error) {
	if limit <= 0 {
		limit = 100
	}
	tx := r.db.WithContext(ctx).Model(&disputeModel{})
	if status != nil {
		tx = tx.Where("status = ?", string(*status))
	}
	var rows []disputeModel
	if err := tx.Order("id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, r.logError("arbitration_repo_list_disputes_failed", err)
	}
	items := make([]entities.Dispute, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) FinalizeDispute(
	ctx context.Context,
	disputeID int64,
	outcome entities.DisputeStatus,
	resolvedAt time.Time,
) (entities.Dispute, error) {
	var finalized disputeModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row disputeModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", disputeID).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrInvalidDispute
			}
			return err
		}
		if row.Status != string(entities.DisputeStatusOpen) {
			return domainerrors.ErrDisputeClosed
		}
		at := resolvedAt.UTC()
		row.Status = string(outcome)
		row.ResolvedAt = &at
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		finalized = row
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidDispute) || errors.Is(err, domainerrors.ErrDisputeClosed) {
			return entities.Dispute{}, err
		}
		return entities.Dispute{}, r.logError("arbitration_repo_finalize_dispute_failed", err, "dispute_id", disputeID)
	}
	return finalized.toEntity(), nil
}

func (r *Repository) RecordVote(ctx context.Context, vote entities.Vote) (entities.Dispute, error) {
	var updated disputeModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row disputeModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", vote.DisputeID).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrInvalidDispute
			}
			return err
		}

		voteRow := voteModelFromEntity(vote)
		if err := tx.Create(&voteRow).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyVoted
			}
			return err
		}

		if vote.Choice == entities.VoteChoiceFor {
			row.VotesFor++
		} else {
			row.VotesAgainst++
		}
		row.TotalStake += vote.Stake
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidDispute) || errors.Is(err, domainerrors.ErrAlreadyVoted) {
			return entities.Dispute{}, err
		}
		return entities.Dispute{}, r.logError("arbitration_repo_record_vote_failed", err,
			"dispute_id", vote.DisputeID,
			"arbiter", vote.Arbiter,
		)
	}
	return updated.toEntity(), nil
}

func (r *Repository) GetVote(ctx context.Context, disputeID int64, arbiter string) (entities.Vote, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where("dispute_id = ?", disputeID).
		Where("arbiter = ?", strings.TrimSpace(arbiter)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vote{}, domainerrors.ErrVoteNotFound
		}
		return entities.Vote{}, r.logError("arbitration_repo_get_vote_failed", err,
			"dispute_id", disputeID,
			"arbiter", strings.TrimSpace(arbiter),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListVotes(ctx context.Context, disputeID int64) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("dispute_id = ?", disputeID).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("arbitration_repo_list_votes_failed", err, "dispute_id", disputeID)
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) AppendEvidence(ctx context.Context, evidence entities.Evidence) (entities.Evidence, error) {
	row := evidenceModelFromEntity(evidence)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Evidence{}, r.logError("arbitration_repo_append_evidence_failed", err,
			"dispute_id", evidence.DisputeID,
			"submitter", evidence.Submitter,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetEvidence(ctx context.Context, disputeID int64, evidenceID int64) (entities.Evidence, error) {
	var row evidenceModel
	err := r.db.WithContext(ctx).
		Where("id = ?", evidenceID).
		Where("dispute_id = ?", disputeID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Evidence{}, domainerrors.ErrEvidenceNotFound
		}
		return entities.Evidence{}, r.logError("arbitration_repo_get_evidence_failed", err,
			"dispute_id", disputeID,
			"evidence_id", evidenceID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListEvidence(ctx context.Context, disputeID int64) ([]entities.Evidence, error) {
	var rows []evidenceModel
	if err := r.db.WithContext(ctx).
		Where("dispute_id = ?", disputeID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("arbitration_repo_list_evidence_failed", err, "dispute_id", disputeID)
	}
	items := make([]entities.Evidence, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) Get(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("key = ?", strings.TrimSpace(key)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, r.logError("arbitration_repo_idempotency_get_failed", err,
			"idempotency_key", strings.TrimSpace(key),
		)
	}
	if !row.ExpiresAt.IsZero() && now.UTC().After(row.ExpiresAt.UTC()) {
		if err := r.db.WithContext(ctx).
			Where("key = ?", strings.TrimSpace(key)).
			Delete(&idempotencyModel{}).Error; err != nil {
			return ports.IdempotencyRecord{}, false, r.logError("arbitration_repo_idempotency_expire_delete_failed", err,
				"idempotency_key", strings.TrimSpace(key),
			)
		}
		return ports.IdempotencyRecord{}, false, nil
	}
	return ports.IdempotencyRecord{
		Key:         row.Key,
		RequestHash: row.RequestHash,
		Operation:   row.Operation,
		DisputeID:   row.DisputeID,
		EvidenceID:  row.EvidenceID,
		ExpiresAt:   row.ExpiresAt.UTC(),
	}, true, nil
}

func (r *Repository) Put(ctx context.Context, record ports.IdempotencyRecord) error {
	row := idempotencyModel{
		Key:         strings.TrimSpace(record.Key),
		RequestHash: strings.TrimSpace(record.RequestHash),
		Operation:   strings.TrimSpace(record.Operation),
		DisputeID:   record.DisputeID,
		EvidenceID:  record.EvidenceID,
		ExpiresAt:   record.ExpiresAt.UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("arbitration_repo_idempotency_put_failed", create.Error, "idempotency_key", row.Key)
	}
	if create.RowsAffected > 0 {
		return nil
	}

	var existing idempotencyModel
	if err := r.db.WithContext(ctx).
		Where("key = ?", row.Key).
		First(&existing).Error; err != nil {
		return r.logError("arbitration_repo_idempotency_load_existing_failed", err, "idempotency_key", row.Key)
	}
	if existing.RequestHash != row.RequestHash || existing.DisputeID != row.DisputeID {
		return domainerrors.ErrIdempotencyConflict
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	row := outboxModel{
		EventID:      strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    createdAt,
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("arbitration_repo_append_outbox_failed", create.Error,
			"event_id", row.EventID,
			"event_type", row.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.EventEnvelope, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("seq ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, r.logError("arbitration_repo_list_pending_outbox_failed", err)
	}
	items := make([]ports.EventEnvelope, 0, len(rows))
	for _, row := range rows {
		var envelope ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &envelope); err != nil {
			return nil, r.logError("arbitration_repo_decode_outbox_failed", err, "event_id", row.EventID)
		}
		items = append(items, envelope)
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, eventID string) error {
	now := time.Now().UTC()
	update := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &now,
		})
	if update.Error != nil {
		return r.logError("arbitration_repo_mark_outbox_published_failed", update.Error,
			"event_id", strings.TrimSpace(eventID),
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "arbitration/dispute-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("arbitration repository operation failed", fields...)
	return err
}

type disputeModel struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Creator       string     `gorm:"column:creator"`
	Description   string     `gorm:"column:description"`
	Status        string     `gorm:"column:status"`
	VotesFor      int64      `gorm:"column:votes_for"`
	VotesAgainst  int64      `gorm:"column:votes_against"`
	TotalStake    int64      `gorm:"column:total_stake"`
	ResolutionFee int64      `gorm:"column:resolution_fee"`
	OpenedAt      time.Time  `gorm:"column:opened_at"`
	ResolvedAt    *time.Time `gorm:"column:resolved_at"`
}

func (disputeModel) TableName() string {
	return "disputes"
}

func disputeModelFromEntity(dispute entities.Dispute) disputeModel {
	row := disputeModel{
		ID:            dispute.DisputeID,
		Creator:       strings.TrimSpace(dispute.Creator),
		Description:   dispute.Description,
		Status:        string(dispute.Status),
		VotesFor:      dispute.VotesFor,
		VotesAgainst:  dispute.VotesAgainst,
		TotalStake:    dispute.TotalStake,
		ResolutionFee: dispute.ResolutionFee,
		OpenedAt:      dispute.OpenedAt.UTC(),
		ResolvedAt:    normalizeOptionalTime(dispute.ResolvedAt),
	}
	if row.OpenedAt.IsZero() {
		row.OpenedAt = time.Now().UTC()
	}
	return row
}

func (m disputeModel) toEntity() entities.Dispute {
	return entities.Dispute{
		DisputeID:     m.ID,
		Creator:       m.Creator,
		Description:   m.Description,
		Status:        entities.DisputeStatus(m.Status),
		VotesFor:      m.VotesFor,
		VotesAgainst:  m.VotesAgainst,
		TotalStake:    m.TotalStake,
		ResolutionFee: m.ResolutionFee,
		OpenedAt:      m.OpenedAt.UTC(),
		ResolvedAt:    normalizeOptionalTime(m.ResolvedAt),
	}
}

type voteModel struct {
	DisputeID int64     `gorm:"column:dispute_id;primaryKey"`
	Arbiter   string    `gorm:"column:arbiter;primaryKey"`
	Seq       int64     `gorm:"column:seq;autoIncrement;->"`
	Choice    string    `gorm:"column:choice"`
	Stake     int64     `gorm:"column:stake"`
	CastAt    time.Time `gorm:"column:cast_at"`
}

func (voteModel) TableName() string {
	return "dispute_votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	row := voteModel{
		DisputeID: vote.DisputeID,
		Arbiter:   strings.TrimSpace(vote.Arbiter),
		Choice:    string(vote.Choice),
		Stake:     vote.Stake,
		CastAt:    vote.CastAt.UTC(),
	}
	if row.CastAt.IsZero() {
		row.CastAt = time.Now().UTC()
	}
	return row
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		DisputeID: m.DisputeID,
		Arbiter:   m.Arbiter,
		Choice:    entities.VoteChoice(m.Choice),
		Stake:     m.Stake,
		CastAt:    m.CastAt.UTC(),
	}
}

type evidenceModel struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	DisputeID   int64     `gorm:"column:dispute_id"`
	Submitter   string    `gorm:"column:submitter"`
	Digest      string    `gorm:"column:digest"`
	SubmittedAt time.Time `gorm:"column:submitted_at"`
}

func (evidenceModel) TableName() string {
	return "dispute_evidence"
}

func evidenceModelFromEntity(evidence entities.Evidence) evidenceModel {
	row := evidenceModel{
		ID:          evidence.EvidenceID,
		DisputeID:   evidence.DisputeID,
		Submitter:   strings.TrimSpace(evidence.Submitter),
		Digest:      strings.TrimSpace(evidence.Digest),
		SubmittedAt: evidence.SubmittedAt.UTC(),
	}
	if row.SubmittedAt.IsZero() {
		row.SubmittedAt = time.Now().UTC()
	}
	return row
}

func (m evidenceModel) toEntity() entities.Evidence {
	return entities.Evidence{
		EvidenceID:  m.ID,
		DisputeID:   m.DisputeID,
		Submitter:   m.Submitter,
		Digest:      m.Digest,
		SubmittedAt: m.SubmittedAt.UTC(),
	}
}

type idempotencyModel struct {
	Key         string    `gorm:"column:key;primaryKey"`
	RequestHash string    `gorm:"column:request_hash"`
	Operation   string    `gorm:"column:operation"`
	DisputeID   int64     `gorm:"column:dispute_id"`
	EvidenceID  int64     `gorm:"column:evidence_id"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
}

func (idempotencyModel) TableName() string {
	return "arbitration_idempotency"
}

type outboxModel struct {
	EventID      string     `gorm:"column:event_id;primaryKey"`
	Seq          int64      `gorm:"column:seq;autoIncrement;->"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "arbitration_outbox"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

var _ ports.DisputeRepository = (*Repository)(nil)
var _ ports.VoteRepository = (*Repository)(nil)
var _ ports.EvidenceRepository = (*Repository)(nil)
var _ ports.IdempotencyStore = (*Repository)(nil)
var _ ports.OutboxStore = (*Repository)(nil)
