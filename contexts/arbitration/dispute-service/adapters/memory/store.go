package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"tribunal/contexts/arbitration/dispute-service/domain/entities"
	domainerrors "tribunal/contexts/arbitration/dispute-service/domain/errors"
	"tribunal/contexts/arbitration/dispute-service/ports"

	"github.com/google/uuid"
)

type voteRecord struct {
	vote entities.Vote
	seq  int64
}

type outboxRecord struct {
	envelope ports.EventEnvelope
	payload  []byte
	seq      int64
	pending  bool
}

// Store is the in-memory implementation of every dispute-service port plus
// Clock and IDGenerator. One mutex guards all maps so multi-row writes
// (vote + tallies) stay atomic, mirroring the transactional postgres
// adapter.
type Store struct {
	mu sync.RWMutex

	disputes    map[int64]entities.Dispute
	votes       map[string]voteRecord
	evidence    map[int64]entities.Evidence
	idempotency map[string]ports.IdempotencyRecord
	outbox      map[string]outboxRecord

	nextDisputeID  int64
	nextEvidenceID int64
	seq            int64
}

func NewStore() *Store {
	return &Store{
		disputes:       make(map[int64]entities.Dispute),
		votes:          make(map[string]voteRecord),
		evidence:       make(map[int64]entities.Evidence),
		idempotency:    make(map[string]ports.IdempotencyRecord),
		outbox:         make(map[string]outboxRecord),
		nextDisputeID:  1,
		nextEvidenceID: 1,
	}
}

func voteKey(disputeID int64, arbiter string) string {
	return fmt.Sprintf("%d/%s", disputeID, strings.TrimSpace(arbiter))
}

func (s *Store) CreateDispute(_ context.Context, dispute entities.Dispute) (entities.Dispute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dispute.DisputeID = s.nextDisputeID
	s.nextDisputeID++
	s.disputes[dispute.DisputeID] = dispute
	return dispute, nil
}

func (s *Store) GetDispute(_ context.Context, disputeID int64) (entities.Dispute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dispute, ok := s.disputes[disputeID]
	if !ok {
		return entities.Dispute{}, domainerrors.ErrInvalidDispute
	}
	return dispute, nil
}

func (s *Store) ListDisputes(_ context.Context, status *entities.DisputeStatus, limit int) ([]entities.Dispute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]entities.Dispute, 0, len(s.disputes))
	for _, dispute := range s.disputes {
		if status != nil && dispute.Status != *status {
			continue
		}
		items = append(items, dispute)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].DisputeID < items[j].DisputeID
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) FinalizeDispute(
	_ context.Context,
	disputeID int64,
	outcome entities.DisputeStatus,
	resolvedAt time.Time,
) (entities.Dispute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dispute, ok := s.disputes[disputeID]
	if !ok {
		return entities.Dispute{}, domainerrors.ErrInvalidDispute
	}
	if dispute.Status != entities.DisputeStatusOpen {
		return entities.Dispute{}, domainerrors.ErrDisputeClosed
	}
	at := resolvedAt.UTC()
	dispute.Status = outcome
	dispute.ResolvedAt = &at
	s.disputes[disputeID] = dispute
	return dispute, nil
}

func (s *Store) RecordVote(_ context.Context, vote entities.Vote) (entities.Dispute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dispute, ok := s.disputes[vote.DisputeID]
	if !ok {
		return entities.Dispute{}, domainerrors.ErrInvalidDispute
	}
	key := voteKey(vote.DisputeID, vote.Arbiter)
	if _, exists := s.votes[key]; exists {
		return entities.Dispute{}, domainerrors.ErrAlreadyVoted
	}

	s.seq++
	s.votes[key] = voteRecord{vote: vote, seq: s.seq}
	if vote.Choice == entities.VoteChoiceFor {
		dispute.VotesFor++
	} else {
		dispute.VotesAgainst++
	}
	dispute.TotalStake += vote.Stake
	s.disputes[vote.DisputeID] = dispute
	return dispute, nil
}

func (s *Store) GetVote(_ context.Context, disputeID int64, arbiter string) (entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.votes[voteKey(disputeID, arbiter)]
	if !ok {
		return entities.Vote{}, domainerrors.ErrVoteNotFound
	}
	return record.vote, nil
}

func (s *Store) ListVotes(_ context.Context, disputeID int64) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]voteRecord, 0)
	for _, record := range s.votes {
		if record.vote.DisputeID == disputeID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].seq < records[j].seq
	})
	items := make([]entities.Vote, 0, len(records))
	for _, record := range records {
		items = append(items, record.vote)
	}
	return items, nil
}

func (s *Store) AppendEvidence(_ context.Context, evidence entities.Evidence) (entities.Evidence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evidence.EvidenceID = s.nextEvidenceID
	s.nextEvidenceID++
	s.evidence[evidence.EvidenceID] = evidence
	return evidence, nil
}

func (s *Store) GetEvidence(_ context.Context, disputeID int64, evidenceID int64) (entities.Evidence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	evidence, ok := s.evidence[evidenceID]
	if !ok || evidence.DisputeID != disputeID {
		return entities.Evidence{}, domainerrors.ErrEvidenceNotFound
	}
	return evidence, nil
}

func (s *Store) ListEvidence(_ context.Context, disputeID int64) ([]entities.Evidence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Evidence, 0)
	for _, evidence := range s.evidence {
		if evidence.DisputeID == disputeID {
			items = append(items, evidence)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].EvidenceID < items[j].EvidenceID
	})
	return items, nil
}

func (s *Store) Get(_ context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key = strings.TrimSpace(key)
	record, exists := s.idempotency[key]
	if !exists {
		return ports.IdempotencyRecord{}, false, nil
	}
	if !record.ExpiresAt.After(now.UTC()) {
		delete(s.idempotency, key)
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) Put(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(record.Key)
	existing, exists := s.idempotency[key]
	if exists {
		if existing.RequestHash != record.RequestHash || existing.DisputeID != record.DisputeID {
			return domainerrors.ErrIdempotencyConflict
		}
		return nil
	}
	record.Key = key
	record.ExpiresAt = record.ExpiresAt.UTC()
	s.idempotency[key] = record
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	eventID := strings.TrimSpace(envelope.EventID)
	if eventID == "" {
		eventID = uuid.NewString()
		envelope.EventID = eventID
	}
	if existing, ok := s.outbox[eventID]; ok {
		if !bytes.Equal(existing.payload, payload) {
			return domainerrors.ErrIdempotencyConflict
		}
		return nil
	}
	s.seq++
	s.outbox[eventID] = outboxRecord{
		envelope: envelope,
		payload:  payload,
		seq:      s.seq,
		pending:  true,
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.EventEnvelope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	records := make([]outboxRecord, 0)
	for _, record := range s.outbox {
		if record.pending {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].seq < records[j].seq
	})
	if len(records) > limit {
		records = records[:limit]
	}
	items := make([]ports.EventEnvelope, 0, len(records))
	for _, record := range records {
		items = append(items, record.envelope)
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.outbox[strings.TrimSpace(eventID)]
	if !ok {
		return domainerrors.ErrIdempotencyConflict
	}
	record.pending = false
	s.outbox[strings.TrimSpace(eventID)] = record
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
