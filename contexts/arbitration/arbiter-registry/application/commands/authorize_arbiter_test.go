package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tribunal/contexts/arbitration/arbiter-registry/adapters/memory"
	"tribunal/contexts/arbitration/arbiter-registry/domain/entities"
	domainerrors "tribunal/contexts/arbitration/arbiter-registry/domain/errors"
)

func TestAuthorizeArbiterAppendsRosterRow(t *testing.T) {
	store := memory.NewStore()
	useCase := AuthorizeArbiterUseCase{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Owner:      "owner-1",
	}

	result, err := useCase.Execute(context.Background(), AuthorizeArbiterCommand{
		Caller:  "owner-1",
		Arbiter: "arbiter-1",
	})
	if err != nil {
		t.Fatalf("authorize returned error: %v", err)
	}
	if result.RosterSize != 1 {
		t.Fatalf("expected roster size 1, got %d", result.RosterSize)
	}
	if result.Entry.EntryID == "" {
		t.Fatalf("expected a generated entry id")
	}
	if result.Entry.Arbiter != "arbiter-1" || result.Entry.AuthorizedBy != "owner-1" {
		t.Fatalf("unexpected entry %+v", result.Entry)
	}

	authorized, err := store.IsAuthorized(context.Background(), "arbiter-1")
	if err != nil {
		t.Fatalf("is authorized: %v", err)
	}
	if !authorized {
		t.Fatalf("expected arbiter-1 to be authorized")
	}
}

func TestAuthorizeArbiterKeepsDuplicateRows(t *testing.T) {
	store := memory.NewStore()
	useCase := AuthorizeArbiterUseCase{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Owner:      "owner-1",
	}

	if _, err := useCase.Execute(context.Background(), AuthorizeArbiterCommand{Caller: "owner-1", Arbiter: "arbiter-1"}); err != nil {
		t.Fatalf("first authorize returned error: %v", err)
	}
	second, err := useCase.Execute(context.Background(), AuthorizeArbiterCommand{Caller: "owner-1", Arbiter: "arbiter-1"})
	if err != nil {
		t.Fatalf("second authorize returned error: %v", err)
	}
	if second.RosterSize != 2 {
		t.Fatalf("expected duplicate row to count, got roster size %d", second.RosterSize)
	}

	roster, err := store.ListArbiters(context.Background())
	if err != nil {
		t.Fatalf("list arbiters: %v", err)
	}
	if len(roster) != 2 || roster[0].Arbiter != "arbiter-1" || roster[1].Arbiter != "arbiter-1" {
		t.Fatalf("expected two rows for arbiter-1, got %+v", roster)
	}
	if roster[0].EntryID == roster[1].EntryID {
		t.Fatalf("duplicate rows must carry distinct entry ids")
	}
}

func TestAuthorizeArbiterRejectsNonOwner(t *testing.T) {
	store := memory.NewStore()
	useCase := AuthorizeArbiterUseCase{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Owner:      "owner-1",
	}

	_, err := useCase.Execute(context.Background(), AuthorizeArbiterCommand{
		Caller:  "intruder",
		Arbiter: "arbiter-1",
	})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}

	size, err := store.CountArbiters(context.Background())
	if err != nil {
		t.Fatalf("count arbiters: %v", err)
	}
	if size != 0 {
		t.Fatalf("expected empty roster after rejected call, got %d", size)
	}
}

func TestAuthorizeArbiterValidatesInput(t *testing.T) {
	store := memory.NewStore()
	useCase := AuthorizeArbiterUseCase{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Owner:      "owner-1",
	}

	if _, err := useCase.Execute(context.Background(), AuthorizeArbiterCommand{Caller: "owner-1", Arbiter: "   "}); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank arbiter, got %v", err)
	}
	if _, err := useCase.Execute(context.Background(), AuthorizeArbiterCommand{Caller: "", Arbiter: "arbiter-1"}); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank caller, got %v", err)
	}
}

func TestAuthorizeArbiterStopsAtCapacity(t *testing.T) {
	store := memory.NewStore()
	useCase := AuthorizeArbiterUseCase{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Owner:      "owner-1",
	}

	for i := 0; i < entities.RegistryCapacity; i++ {
		if _, err := useCase.Execute(context.Background(), AuthorizeArbiterCommand{
			Caller:  "owner-1",
			Arbiter: fmt.Sprintf("arbiter-%d", i),
		}); err != nil {
			t.Fatalf("authorize %d returned error: %v", i, err)
		}
	}

	_, err := useCase.Execute(context.Background(), AuthorizeArbiterCommand{
		Caller:  "owner-1",
		Arbiter: "one-too-many",
	})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized at capacity, got %v", err)
	}

	size, err := store.CountArbiters(context.Background())
	if err != nil {
		t.Fatalf("count arbiters: %v", err)
	}
	if size != entities.RegistryCapacity {
		t.Fatalf("expected roster to stay at %d, got %d", entities.RegistryCapacity, size)
	}
}
