package commands

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tribunal/contexts/arbitration/dispute-service/adapters/memory"
	"tribunal/contexts/arbitration/dispute-service/domain/entities"
	domainerrors "tribunal/contexts/arbitration/dispute-service/domain/errors"
)

func seedVotedDispute(t *testing.T, store *memory.Store, fee int64, votes []entities.Vote) entities.Dispute {
	dispute, err := store.CreateDispute(context.Background(), entities.Dispute{
		Creator:       "creator-1",
		Description:   "payout scenario",
		Status:        entities.DisputeStatusOpen,
		ResolutionFee: fee,
		OpenedAt:      time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed dispute: %v", err)
	}
	for _, vote := range votes {
		vote.DisputeID = dispute.DisputeID
		vote.CastAt = time.Now().UTC()
		if _, err := store.RecordVote(context.Background(), vote); err != nil {
			t.Fatalf("seed vote for %s: %v", vote.Arbiter, err)
		}
	}
	return dispute
}

func TestResolveDisputePaysWinnersByVoteCount(t *testing.T) {
	store := memory.NewStore()
	ledger := &ledgerStub{}
	useCase := ResolveDisputeUseCase{
		Disputes:        store,
		Votes:           store,
		Directory:       stubDirectory{"arbiter-1": true},
		Ledger:          ledger,
		Outbox:          store,
		Clock:           store,
		IDGen:           store,
		Locks:           NewDisputeLocks(),
		TreasuryAccount: "treasury",
	}
	dispute := seedVotedDispute(t, store, 1000, []entities.Vote{
		{Arbiter: "arbiter-1", Choice: entities.VoteChoiceFor, Stake: 100},
		{Arbiter: "arbiter-2", Choice: entities.VoteChoiceFor, Stake: 100},
		{Arbiter: "arbiter-3", Choice: entities.VoteChoiceAgainst, Stake: 50},
	})

	result, err := useCase.Execute(context.Background(), ResolveDisputeCommand{
		DisputeID: dispute.DisputeID,
		Caller:    "arbiter-1",
	})
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if result.Dispute.Status != entities.DisputeStatusResolvedFor {
		t.Fatalf("expected status %q, got %q", entities.DisputeStatusResolvedFor, result.Dispute.Status)
	}
	if result.Dispute.ResolvedAt == nil {
		t.Fatalf("expected resolved_at to be set")
	}

	res := result.Resolution
	if res.WinningVotes != 2 {
		t.Fatalf("expected 2 winning votes, got %d", res.WinningVotes)
	}
	// fee 1000 over 2 winning votes: each staked unit earns 500.
	if res.RewardPerStakeUnit != 500 {
		t.Fatalf("expected reward rate 500, got %d", res.RewardPerStakeUnit)
	}
	if res.RewardsPaid != 2 || res.PayoutsFailed != 0 {
		t.Fatalf("expected 2 payouts with 0 failures, got %d/%d", res.RewardsPaid, res.PayoutsFailed)
	}
	if res.TotalPaid != 100000 {
		t.Fatalf("expected total paid 100000, got %d", res.TotalPaid)
	}

	for _, arbiter := range []string{"arbiter-1", "arbiter-2"} {
		calls := ledger.callsTo(arbiter)
		if len(calls) != 1 {
			t.Fatalf("expected one payout to %s, got %d", arbiter, len(calls))
		}
		if calls[0].From != "treasury" || calls[0].Amount != 50000 {
			t.Fatalf("unexpected payout to %s: %+v", arbiter, calls[0])
		}
		if calls[0].Reason != "dispute-1-reward" {
			t.Fatalf("unexpected payout reason %q", calls[0].Reason)
		}
	}
	if len(ledger.callsTo("arbiter-3")) != 0 {
		t.Fatalf("losing voter must not be paid")
	}
}

func TestResolveDisputeStakeWeightedDivisor(t *testing.T) {
	store := memory.NewStore()
	ledger := &ledgerStub{}
	useCase := ResolveDisputeUseCase{
		Disputes:            store,
		Votes:               store,
		Directory:           stubDirectory{"arbiter-1": true},
		Ledger:              ledger,
		Outbox:              store,
		Clock:               store,
		IDGen:               store,
		Locks:               NewDisputeLocks(),
		TreasuryAccount:     "treasury",
		StakeWeightedPayout: true,
	}
	dispute := seedVotedDispute(t, store, 1000, []entities.Vote{
		{Arbiter: "arbiter-1", Choice: entities.VoteChoiceFor, Stake: 100},
		{Arbiter: "arbiter-2", Choice: entities.VoteChoiceFor, Stake: 100},
		{Arbiter: "arbiter-3", Choice: entities.VoteChoiceAgainst, Stake: 50},
	})

	result, err := useCase.Execute(context.Background(), ResolveDisputeCommand{
		DisputeID: dispute.DisputeID,
		Caller:    "arbiter-1",
	})
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}

	// fee 1000 over 200 winning stake units: rate 5, so the pool pays out
	// exactly once instead of multiplying by the vote count.
	if result.Resolution.RewardPerStakeUnit != 5 {
		t.Fatalf("expected reward rate 5, got %d", result.Resolution.RewardPerStakeUnit)
	}
	if result.Resolution.TotalPaid != 1000 {
		t.Fatalf("expected total paid 1000, got %d", result.Resolution.TotalPaid)
	}
	for _, arbiter := range []string{"arbiter-1", "arbiter-2"} {
		calls := ledger.callsTo(arbiter)
		if len(calls) != 1 || calls[0].Amount != 500 {
			t.Fatalf("expected payout of 500 to %s, got %+v", arbiter, calls)
		}
	}
}

func TestResolveDisputeTieResolvesAgainst(t *testing.T) {
	store := memory.NewStore()
	ledger := &ledgerStub{}
	useCase := ResolveDisputeUseCase{
		Disputes:        store,
		Votes:           store,
		Directory:       stubDirectory{"arbiter-1": true},
		Ledger:          ledger,
		Outbox:          store,
		Clock:           store,
		IDGen:           store,
		Locks:           NewDisputeLocks(),
		TreasuryAccount: "treasury",
	}
	dispute := seedVotedDispute(t, store, 100, []entities.Vote{
		{Arbiter: "arbiter-1", Choice: entities.VoteChoiceFor, Stake: 30},
		{Arbiter: "arbiter-2", Choice: entities.VoteChoiceAgainst, Stake: 10},
	})

	result, err := useCase.Execute(context.Background(), ResolveDisputeCommand{
		DisputeID: dispute.DisputeID,
		Caller:    "arbiter-1",
	})
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if result.Dispute.Status != entities.DisputeStatusResolvedAgainst {
		t.Fatalf("tie must resolve against, got %q", result.Dispute.Status)
	}
	if calls := ledger.callsTo("arbiter-2"); len(calls) != 1 || calls[0].Amount != 1000 {
		t.Fatalf("expected tie payout of 1000 to arbiter-2, got %+v", calls)
	}
	if len(ledger.callsTo("arbiter-1")) != 0 {
		t.Fatalf("for-voter must not be paid on a tie")
	}
}

func TestResolveDisputeRequiresVotes(t *testing.T) {
	store := memory.NewStore()
	useCase := ResolveDisputeUseCase{
		Disputes:        store,
		Votes:           store,
		Directory:       stubDirectory{"arbiter-1": true},
		Ledger:          &ledgerStub{},
		Outbox:          store,
		Clock:           store,
		IDGen:           store,
		Locks:           NewDisputeLocks(),
		TreasuryAccount: "treasury",
	}
	dispute := seedVotedDispute(t, store, 1000, nil)

	_, err := useCase.Execute(context.Background(), ResolveDisputeCommand{
		DisputeID: dispute.DisputeID,
		Caller:    "arbiter-1",
	})
	if !errors.Is(err, domainerrors.ErrNoVotesCast) {
		t.Fatalf("expected ErrNoVotesCast, got %v", err)
	}

	current, err := store.GetDispute(context.Background(), dispute.DisputeID)
	if err != nil {
		t.Fatalf("get dispute: %v", err)
	}
	if !current.IsOpen() {
		t.Fatalf("dispute must stay open without votes, got %q", current.Status)
	}
}

func TestResolveDisputeRejectsUnauthorizedCaller(t *testing.T) {
	store := memory.NewStore()
	useCase := ResolveDisputeUseCase{
		Disputes:        store,
		Votes:           store,
		Directory:       stubDirectory{},
		Ledger:          &ledgerStub{},
		Outbox:          store,
		Clock:           store,
		IDGen:           store,
		Locks:           NewDisputeLocks(),
		TreasuryAccount: "treasury",
	}
	dispute := seedVotedDispute(t, store, 1000, []entities.Vote{
		{Arbiter: "arbiter-1", Choice: entities.VoteChoiceFor, Stake: 100},
	})

	_, err := useCase.Execute(context.Background(), ResolveDisputeCommand{
		DisputeID: dispute.DisputeID,
		Caller:    "stranger",
	})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}

	current, err := store.GetDispute(context.Background(), dispute.DisputeID)
	if err != nil {
		t.Fatalf("get dispute: %v", err)
	}
	if !current.IsOpen() {
		t.Fatalf("dispute must stay open after rejected resolve, got %q", current.Status)
	}
}

func TestResolveDisputeIsTerminal(t *testing.T) {
	store := memory.NewStore()
	useCase := ResolveDisputeUseCase{
		Disputes:        store,
		Votes:           store,
		Directory:       stubDirectory{"arbiter-1": true},
		Ledger:          &ledgerStub{},
		Outbox:          store,
		Clock:           store,
		IDGen:           store,
		Locks:           NewDisputeLocks(),
		TreasuryAccount: "treasury",
	}
	dispute := seedVotedDispute(t, store, 1000, []entities.Vote{
		{Arbiter: "arbiter-1", Choice: entities.VoteChoiceFor, Stake: 100},
	})
	if _, err := useCase.Execute(context.Background(), ResolveDisputeCommand{
		DisputeID: dispute.DisputeID,
		Caller:    "arbiter-1",
	}); err != nil {
		t.Fatalf("first resolve returned error: %v", err)
	}

	_, err := useCase.Execute(context.Background(), ResolveDisputeCommand{
		DisputeID: dispute.DisputeID,
		Caller:    "arbiter-1",
	})
	if !errors.Is(err, domainerrors.ErrDisputeClosed) {
		t.Fatalf("expected ErrDisputeClosed, got %v", err)
	}
}

func TestResolveDisputePayoutFailureDoesNotAbort(t *testing.T) {
	store := memory.NewStore()
	ledger := &ledgerStub{failTo: map[string]error{"arbiter-2": errors.New("account frozen")}}
	useCase := ResolveDisputeUseCase{
		Disputes:        store,
		Votes:           store,
		Directory:       stubDirectory{"arbiter-1": true},
		Ledger:          ledger,
		Outbox:          store,
		Clock:           store,
		IDGen:           store,
		Locks:           NewDisputeLocks(),
		TreasuryAccount: "treasury",
	}
	dispute := seedVotedDispute(t, store, 1000, []entities.Vote{
		{Arbiter: "arbiter-1", Choice: entities.VoteChoiceFor, Stake: 100},
		{Arbiter: "arbiter-2", Choice: entities.VoteChoiceFor, Stake: 100},
	})

	result, err := useCase.Execute(context.Background(), ResolveDisputeCommand{
		DisputeID: dispute.DisputeID,
		Caller:    "arbiter-1",
	})
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if result.Resolution.RewardsPaid != 1 || result.Resolution.PayoutsFailed != 1 {
		t.Fatalf("expected 1 paid and 1 failed, got %d/%d", result.Resolution.RewardsPaid, result.Resolution.PayoutsFailed)
	}
	if result.Resolution.TotalPaid != 50000 {
		t.Fatalf("expected total paid 50000, got %d", result.Resolution.TotalPaid)
	}
	if result.Dispute.Status != entities.DisputeStatusResolvedFor {
		t.Fatalf("dispute must close despite payout failure, got %q", result.Dispute.Status)
	}
}

func TestResolveDisputePaysRevokedVoter(t *testing.T) {
	store := memory.NewStore()
	ledger := &ledgerStub{}
	directory := stubDirectory{"arbiter-1": true, "arbiter-2": false}
	useCase := ResolveDisputeUseCase{
		Disputes:        store,
		Votes:           store,
		Directory:       directory,
		Ledger:          ledger,
		Outbox:          store,
		Clock:           store,
		IDGen:           store,
		Locks:           NewDisputeLocks(),
		TreasuryAccount: "treasury",
	}
	dispute := seedVotedDispute(t, store, 1000, []entities.Vote{
		{Arbiter: "arbiter-1", Choice: entities.VoteChoiceFor, Stake: 100},
		{Arbiter: "arbiter-2", Choice: entities.VoteChoiceFor, Stake: 100},
	})

	result, err := useCase.Execute(context.Background(), ResolveDisputeCommand{
		DisputeID: dispute.DisputeID,
		Caller:    "arbiter-1",
	})
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	// Reward eligibility follows the vote rows, not the roster at resolve time.
	if result.Resolution.RewardsPaid != 2 {
		t.Fatalf("expected both voters paid, got %d", result.Resolution.RewardsPaid)
	}
	if calls := ledger.callsTo("arbiter-2"); len(calls) != 1 {
		t.Fatalf("expected revoked voter to be paid, got %+v", calls)
	}
}

func TestResolveDisputeEmitsResolvedEvent(t *testing.T) {
	store := memory.NewStore()
	useCase := ResolveDisputeUseCase{
		Disputes:        store,
		Votes:           store,
		Directory:       stubDirectory{"arbiter-1": true},
		Ledger:          &ledgerStub{},
		Outbox:          store,
		Clock:           store,
		IDGen:           store,
		Locks:           NewDisputeLocks(),
		TreasuryAccount: "treasury",
	}
	dispute := seedVotedDispute(t, store, 1000, []entities.Vote{
		{Arbiter: "arbiter-1", Choice: entities.VoteChoiceFor, Stake: 100},
	})

	if _, err := useCase.Execute(context.Background(), ResolveDisputeCommand{
		DisputeID: dispute.DisputeID,
		Caller:    "arbiter-1",
	}); err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	var resolved *struct {
		DisputeID int64  `json:"dispute_id"`
		Outcome   string `json:"outcome"`
		TotalPaid int64  `json:"total_paid"`
	}
	for _, envelope := range pending {
		if envelope.EventType != TopicDisputeResolved {
			continue
		}
		if envelope.PartitionKey != "1" || envelope.SchemaVersion != 1 {
			t.Fatalf("unexpected envelope metadata %+v", envelope)
		}
		var payload struct {
			DisputeID int64  `json:"dispute_id"`
			Outcome   string `json:"outcome"`
			TotalPaid int64  `json:"total_paid"`
		}
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			t.Fatalf("decode resolved payload: %v", err)
		}
		resolved = &payload
	}
	if resolved == nil {
		t.Fatalf("expected a %s event in the outbox", TopicDisputeResolved)
	}
	if resolved.DisputeID != dispute.DisputeID || resolved.Outcome != string(entities.DisputeStatusResolvedFor) {
		t.Fatalf("unexpected resolved payload %+v", resolved)
	}
	if resolved.TotalPaid != 100000 {
		t.Fatalf("expected total_paid 100000, got %d", resolved.TotalPaid)
	}
}
