package application

import (
	"context"
	"errors"
	"testing"

	"tribunal/contexts/finance-core/settlement-ledger/adapters/memory"
	domainerrors "tribunal/contexts/finance-core/settlement-ledger/domain/errors"
)

func TestTransferMovesFundsAtomically(t *testing.T) {
	store := memory.NewStore()
	service := Service{Repo: store, Idempotency: store, EventDedup: store, Clock: store, IDGen: store}

	if _, _, err := service.Credit(context.Background(), "", "account-a", 100); err != nil {
		t.Fatalf("credit returned error: %v", err)
	}

	transfer, replayed, err := service.Transfer(context.Background(), "", "account-a", "account-b", 60, "settlement")
	if err != nil {
		t.Fatalf("transfer returned error: %v", err)
	}
	if replayed {
		t.Fatalf("fresh transfer must not report replay")
	}
	if transfer.TransferID == "" || transfer.Amount != 60 || transfer.Reason != "settlement" {
		t.Fatalf("unexpected transfer record %+v", transfer)
	}

	from, err := service.Balance(context.Background(), "account-a")
	if err != nil {
		t.Fatalf("balance account-a: %v", err)
	}
	if from.Balance != 40 {
		t.Fatalf("expected balance 40, got %d", from.Balance)
	}
	// The destination account is created by the transfer itself.
	to, err := service.Balance(context.Background(), "account-b")
	if err != nil {
		t.Fatalf("balance account-b: %v", err)
	}
	if to.Balance != 60 {
		t.Fatalf("expected balance 60, got %d", to.Balance)
	}
}

func TestTransferInsufficientFundsChangesNothing(t *testing.T) {
	store := memory.NewStore()
	service := Service{Repo: store, Idempotency: store, EventDedup: store, Clock: store, IDGen: store}

	if _, _, err := service.Credit(context.Background(), "", "account-a", 50); err != nil {
		t.Fatalf("credit returned error: %v", err)
	}

	_, _, err := service.Transfer(context.Background(), "", "account-a", "account-b", 60, "settlement")
	if !errors.Is(err, domainerrors.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	from, err := service.Balance(context.Background(), "account-a")
	if err != nil {
		t.Fatalf("balance account-a: %v", err)
	}
	if from.Balance != 50 {
		t.Fatalf("failed transfer must not touch the source, got %d", from.Balance)
	}
	if _, err := service.Balance(context.Background(), "account-b"); !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("failed transfer must not create the destination, got %v", err)
	}

	history, err := service.History(context.Background(), "account-a", 10)
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("failed transfer must not be recorded, got %+v", history)
	}
}

func TestTransferValidation(t *testing.T) {
	store := memory.NewStore()
	service := Service{Repo: store, Idempotency: store, EventDedup: store, Clock: store, IDGen: store}

	if _, _, err := service.Transfer(context.Background(), "", "account-a", "account-b", 0, ""); !errors.Is(err, domainerrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero amount, got %v", err)
	}
	if _, _, err := service.Transfer(context.Background(), "", "account-a", "account-b", -5, ""); !errors.Is(err, domainerrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative amount, got %v", err)
	}
	if _, _, err := service.Transfer(context.Background(), "", "account-a", "account-a", 10, ""); !errors.Is(err, domainerrors.ErrSameAccount) {
		t.Fatalf("expected ErrSameAccount, got %v", err)
	}
	if _, _, err := service.Transfer(context.Background(), "", "  ", "account-b", 10, ""); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank source, got %v", err)
	}
	if _, _, err := service.Transfer(context.Background(), "", "ghost", "account-b", 10, ""); !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestTransferReplaysOnSameKey(t *testing.T) {
	store := memory.NewStore()
	service := Service{Repo: store, Idempotency: store, EventDedup: store, Clock: store, IDGen: store}

	if _, _, err := service.Credit(context.Background(), "", "account-a", 100); err != nil {
		t.Fatalf("credit returned error: %v", err)
	}

	first, _, err := service.Transfer(context.Background(), "retry-key", "account-a", "account-b", 60, "settlement")
	if err != nil {
		t.Fatalf("first transfer returned error: %v", err)
	}
	second, replayed, err := service.Transfer(context.Background(), "retry-key", "account-a", "account-b", 60, "settlement")
	if err != nil {
		t.Fatalf("replayed transfer returned error: %v", err)
	}
	if !replayed || second.TransferID != first.TransferID {
		t.Fatalf("expected replay of %s, got %+v replayed=%v", first.TransferID, second, replayed)
	}

	from, err := service.Balance(context.Background(), "account-a")
	if err != nil {
		t.Fatalf("balance account-a: %v", err)
	}
	if from.Balance != 40 {
		t.Fatalf("replay must not move funds twice, got balance %d", from.Balance)
	}
}

func TestTransferRejectsKeyReuseWithDifferentPayload(t *testing.T) {
	store := memory.NewStore()
	service := Service{Repo: store, Idempotency: store, EventDedup: store, Clock: store, IDGen: store}

	if _, _, err := service.Credit(context.Background(), "", "account-a", 100); err != nil {
		t.Fatalf("credit returned error: %v", err)
	}
	if _, _, err := service.Transfer(context.Background(), "retry-key", "account-a", "account-b", 60, "settlement"); err != nil {
		t.Fatalf("first transfer returned error: %v", err)
	}

	_, _, err := service.Transfer(context.Background(), "retry-key", "account-a", "account-b", 10, "settlement")
	if !errors.Is(err, domainerrors.ErrIdempotencyConflict) {
		t.Fatalf("expected ErrIdempotencyConflict, got %v", err)
	}
}

func TestCreditCreatesAndReplays(t *testing.T) {
	store := memory.NewStore()
	service := Service{Repo: store, Idempotency: store, EventDedup: store, Clock: store, IDGen: store}

	account, replayed, err := service.Credit(context.Background(), "credit-key", "account-a", 100)
	if err != nil {
		t.Fatalf("credit returned error: %v", err)
	}
	if replayed || account.Balance != 100 {
		t.Fatalf("unexpected credit result %+v replayed=%v", account, replayed)
	}

	again, replayed, err := service.Credit(context.Background(), "credit-key", "account-a", 100)
	if err != nil {
		t.Fatalf("replayed credit returned error: %v", err)
	}
	if !replayed || again.Balance != 100 {
		t.Fatalf("expected replay with balance 100, got %+v replayed=%v", again, replayed)
	}

	if _, _, err := service.Credit(context.Background(), "", "account-a", 0); !errors.Is(err, domainerrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestHistoryFiltersByAccountNewestFirst(t *testing.T) {
	store := memory.NewStore()
	service := Service{Repo: store, Idempotency: store, EventDedup: store, Clock: store, IDGen: store}

	if _, _, err := service.Credit(context.Background(), "", "account-a", 1000); err != nil {
		t.Fatalf("credit returned error: %v", err)
	}
	if _, _, err := service.Transfer(context.Background(), "", "account-a", "account-b", 100, "first"); err != nil {
		t.Fatalf("transfer returned error: %v", err)
	}
	if _, _, err := service.Transfer(context.Background(), "", "account-a", "account-c", 200, "second"); err != nil {
		t.Fatalf("transfer returned error: %v", err)
	}
	if _, _, err := service.Transfer(context.Background(), "", "account-b", "account-c", 50, "third"); err != nil {
		t.Fatalf("transfer returned error: %v", err)
	}

	history, err := service.History(context.Background(), "account-a", 10)
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 transfers touching account-a, got %d", len(history))
	}
	if history[0].Reason != "second" || history[1].Reason != "first" {
		t.Fatalf("expected newest first ordering, got %+v", history)
	}

	all, err := service.History(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 transfers overall, got %d", len(all))
	}
}
