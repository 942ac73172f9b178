package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tribunal/contexts/arbitration/dispute-service/adapters/memory"
	"tribunal/contexts/arbitration/dispute-service/domain/entities"
	domainerrors "tribunal/contexts/arbitration/dispute-service/domain/errors"
)

const testDigest = "A3F2B8C1D4E5F6A7B8C9D0E1F2A3B4C5D6E7F8A9B0C1D2E3F4A5B6C7D8E9F0A1"

func TestSubmitEvidenceStoresDigestLowercased(t *testing.T) {
	store := memory.NewStore()
	useCase := SubmitEvidenceUseCase{
		Disputes:    store,
		Evidence:    store,
		Idempotency: store,
		Outbox:      store,
		Clock:       store,
		IDGen:       store,
	}
	dispute, err := store.CreateDispute(context.Background(), entities.Dispute{
		Creator:     "creator-1",
		Description: "needs evidence",
		Status:      entities.DisputeStatusOpen,
		OpenedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed dispute: %v", err)
	}

	result, err := useCase.Execute(context.Background(), SubmitEvidenceCommand{
		DisputeID: dispute.DisputeID,
		Submitter: "creator-1",
		Digest:    testDigest,
	})
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if result.Evidence.EvidenceID != 1 {
		t.Fatalf("expected first evidence id 1, got %d", result.Evidence.EvidenceID)
	}
	if result.Evidence.Digest != strings.ToLower(testDigest) {
		t.Fatalf("expected lowercased digest, got %q", result.Evidence.Digest)
	}

	listed, err := store.ListEvidence(context.Background(), dispute.DisputeID)
	if err != nil {
		t.Fatalf("list evidence: %v", err)
	}
	if len(listed) != 1 || listed[0].Submitter != "creator-1" {
		t.Fatalf("unexpected evidence records %+v", listed)
	}
}

func TestSubmitEvidenceRejectsMalformedDigest(t *testing.T) {
	store := memory.NewStore()
	useCase := SubmitEvidenceUseCase{
		Disputes:    store,
		Evidence:    store,
		Idempotency: store,
		Outbox:      store,
		Clock:       store,
		IDGen:       store,
	}
	dispute, err := store.CreateDispute(context.Background(), entities.Dispute{
		Creator:     "creator-1",
		Description: "needs evidence",
		Status:      entities.DisputeStatusOpen,
		OpenedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed dispute: %v", err)
	}

	for _, digest := range []string{"", "zz", strings.Repeat("a", 63), strings.Repeat("g", 64)} {
		_, err := useCase.Execute(context.Background(), SubmitEvidenceCommand{
			DisputeID: dispute.DisputeID,
			Submitter: "creator-1",
			Digest:    digest,
		})
		if !errors.Is(err, domainerrors.ErrInvalidInput) {
			t.Fatalf("digest %q: expected ErrInvalidInput, got %v", digest, err)
		}
	}
}

func TestSubmitEvidenceRejectsClosedDispute(t *testing.T) {
	store := memory.NewStore()
	useCase := SubmitEvidenceUseCase{
		Disputes:    store,
		Evidence:    store,
		Idempotency: store,
		Outbox:      store,
		Clock:       store,
		IDGen:       store,
	}
	dispute, err := store.CreateDispute(context.Background(), entities.Dispute{
		Creator:     "creator-1",
		Description: "already settled",
		Status:      entities.DisputeStatusOpen,
		OpenedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed dispute: %v", err)
	}
	if _, err := store.FinalizeDispute(context.Background(), dispute.DisputeID, entities.DisputeStatusResolvedFor, time.Now().UTC()); err != nil {
		t.Fatalf("finalize dispute: %v", err)
	}

	_, err = useCase.Execute(context.Background(), SubmitEvidenceCommand{
		DisputeID: dispute.DisputeID,
		Submitter: "creator-1",
		Digest:    testDigest,
	})
	if !errors.Is(err, domainerrors.ErrDisputeClosed) {
		t.Fatalf("expected ErrDisputeClosed, got %v", err)
	}
}

func TestSubmitEvidenceRejectsUnknownDispute(t *testing.T) {
	store := memory.NewStore()
	useCase := SubmitEvidenceUseCase{
		Disputes:    store,
		Evidence:    store,
		Idempotency: store,
		Outbox:      store,
		Clock:       store,
		IDGen:       store,
	}

	_, err := useCase.Execute(context.Background(), SubmitEvidenceCommand{
		DisputeID: 42,
		Submitter: "creator-1",
		Digest:    testDigest,
	})
	if !errors.Is(err, domainerrors.ErrInvalidDispute) {
		t.Fatalf("expected ErrInvalidDispute, got %v", err)
	}
}

func TestSubmitEvidenceReplaysOnSameKey(t *testing.T) {
	store := memory.NewStore()
	useCase := SubmitEvidenceUseCase{
		Disputes:    store,
		Evidence:    store,
		Idempotency: store,
		Outbox:      store,
		Clock:       store,
		IDGen:       store,
	}
	dispute, err := store.CreateDispute(context.Background(), entities.Dispute{
		Creator:     "creator-1",
		Description: "retried evidence",
		Status:      entities.DisputeStatusOpen,
		OpenedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed dispute: %v", err)
	}
	cmd := SubmitEvidenceCommand{
		DisputeID:      dispute.DisputeID,
		Submitter:      "creator-1",
		Digest:         testDigest,
		IdempotencyKey: "evidence-key-1",
	}

	first, err := useCase.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("first submit returned error: %v", err)
	}
	second, err := useCase.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("replayed submit returned error: %v", err)
	}
	if !second.Replayed || second.Evidence.EvidenceID != first.Evidence.EvidenceID {
		t.Fatalf("expected replay of evidence %d, got %+v", first.Evidence.EvidenceID, second)
	}

	listed, err := store.ListEvidence(context.Background(), dispute.DisputeID)
	if err != nil {
		t.Fatalf("list evidence: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one evidence record after replay, got %d", len(listed))
	}
}
