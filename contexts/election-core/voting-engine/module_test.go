package votingengine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	votingengine "sufragio/contexts/election-core/voting-engine"
	"sufragio/contexts/election-core/voting-engine/domain/entities"
	domainerrors "sufragio/contexts/election-core/voting-engine/domain/errors"
	httptransport "sufragio/contexts/election-core/voting-engine/transport/http"
)

func intPtr(v int) *int { return &v }

func seedVotingModule() votingengine.Module {
	module := votingengine.NewInMemoryModule(nil)
	module.Store.SetActiveElection(entities.Election{
		ElectionID: 1,
		Name:       "Elección Nacional 2024",
		HeldOn:     time.Date(2024, 10, 27, 0, 0, 0, 0, time.UTC),
	})
	module.Store.SetOption(entities.BallotOption{OptionID: 10, ElectionID: 1, Color: "blanco", ListNumber: nil})
	module.Store.SetOption(entities.BallotOption{OptionID: 11, ElectionID: 1, Color: "rojo", ListNumber: intPtr(15)})
	module.Store.SetVoter("ABC12345", "41234567", 7)
	module.Store.SetMesaOpen(7, true)
	return module
}

func TestCastVoteSucceeds(t *testing.T) {
	module := seedVotingModule()
	ctx := context.Background()

	resp, err := module.Handler.CastVoteHandler(ctx, httptransport.CastVoteRequest{
		Credential:     "ABC12345",
		BallotOptionID: 11,
		CircuitID:      7,
	})
	if err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	if resp.BallotID == 0 {
		t.Fatalf("expected an assigned ballot id")
	}
	if resp.Observed {
		t.Fatalf("vote in own circuit must not be observed")
	}
	if resp.Message != "Voto registrado exitosamente" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestCastVoteRejectsDuplicate(t *testing.T) {
	module := seedVotingModule()
	ctx := context.Background()
	req := httptransport.CastVoteRequest{
		Credential:     "ABC12345",
		BallotOptionID: 11,
		CircuitID:      7,
	}

	if _, err := module.Handler.CastVoteHandler(ctx, req); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	_, err := module.Handler.CastVoteHandler(ctx, req)
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected already voted error, got %v", err)
	}
	if got := len(module.Store.Ballots()); got != 1 {
		t.Fatalf("duplicate vote must not add a ballot, found %d", got)
	}
}

func TestCastVoteRejectedWhenMesaClosed(t *testing.T) {
	module := seedVotingModule()
	module.Store.SetMesaOpen(7, false)

	_, err := module.Handler.CastVoteHandler(context.Background(), httptransport.CastVoteRequest{
		Credential:     "ABC12345",
		BallotOptionID: 11,
		CircuitID:      7,
	})
	if !errors.Is(err, domainerrors.ErrMesaClosed) {
		t.Fatalf("expected mesa closed error, got %v", err)
	}
	if got := len(module.Store.Ballots()); got != 0 {
		t.Fatalf("rejected vote must not persist a ballot, found %d", got)
	}
}

func TestCastVoteOutsideOwnCircuitIsObserved(t *testing.T) {
	module := seedVotingModule()
	module.Store.SetMesaOpen(8, true)
	ctx := context.Background()

	resp, err := module.Handler.CastVoteHandler(ctx, httptransport.CastVoteRequest{
		Credential:     "ABC12345",
		BallotOptionID: 11,
		CircuitID:      8,
	})
	if err != nil {
		t.Fatalf("observed vote should still be admitted: %v", err)
	}
	if !resp.Observed {
		t.Fatalf("vote outside assigned circuit must be observed")
	}
	if resp.Message != "Voto registrado como observado (no corresponde a su circuito)" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}

	listed, err := module.Handler.ObservedBallotsHandler(ctx)
	if err != nil {
		t.Fatalf("listing observed ballots failed: %v", err)
	}
	if len(listed.Items) != 1 || listed.Items[0].BallotID != resp.BallotID {
		t.Fatalf("expected the observed ballot in the listing, got %+v", listed.Items)
	}
}

func TestObservedVoteStillCountsOnce(t *testing.T) {
	module := seedVotingModule()
	module.Store.SetMesaOpen(8, true)
	ctx := context.Background()

	if _, err := module.Handler.CastVoteHandler(ctx, httptransport.CastVoteRequest{
		Credential:     "ABC12345",
		BallotOptionID: 11,
		CircuitID:      8,
	}); err != nil {
		t.Fatalf("observed vote failed: %v", err)
	}

	_, err := module.Handler.CastVoteHandler(ctx, httptransport.CastVoteRequest{
		Credential:     "ABC12345",
		BallotOptionID: 11,
		CircuitID:      7,
	})
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("observed vote must still consume the one-vote right, got %v", err)
	}
}

func TestCastVoteUnknownOption(t *testing.T) {
	module := seedVotingModule()

	_, err := module.Handler.CastVoteHandler(context.Background(), httptransport.CastVoteRequest{
		Credential:     "ABC12345",
		BallotOptionID: 999,
		CircuitID:      7,
	})
	if !errors.Is(err, domainerrors.ErrBallotOptionNotFound) {
		t.Fatalf("expected ballot option not found, got %v", err)
	}
}

func TestCastVoteUnknownCredential(t *testing.T) {
	module := seedVotingModule()

	_, err := module.Handler.CastVoteHandler(context.Background(), httptransport.CastVoteRequest{
		Credential:     "ZZZ99999",
		BallotOptionID: 11,
		CircuitID:      7,
	})
	if !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected voter not found, got %v", err)
	}
}

func TestCastVoteRequiresActiveElection(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil)
	module.Store.SetVoter("ABC12345", "41234567", 7)
	module.Store.SetMesaOpen(7, true)

	_, err := module.Handler.CastVoteHandler(context.Background(), httptransport.CastVoteRequest{
		Credential:     "ABC12345",
		BallotOptionID: 11,
		CircuitID:      7,
	})
	if !errors.Is(err, domainerrors.ErrNoActiveElection) {
		t.Fatalf("expected no active election, got %v", err)
	}
}

func TestCastVoteValidatesInput(t *testing.T) {
	module := seedVotingModule()

	_, err := module.Handler.CastVoteHandler(context.Background(), httptransport.CastVoteRequest{
		Credential:     "",
		BallotOptionID: 11,
		CircuitID:      7,
	})
	if !errors.Is(err, domainerrors.ErrInvalidVoteInput) {
		t.Fatalf("expected invalid vote input, got %v", err)
	}
}

func TestBallotOptionLabels(t *testing.T) {
	module := seedVotingModule()

	resp, err := module.Handler.BallotOptionsHandler(context.Background(), 1)
	if err != nil {
		t.Fatalf("ballot options failed: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected two options, got %d", len(resp.Items))
	}
	for _, item := range resp.Items {
		switch item.OptionID {
		case 10:
			if item.Label != "Voto en Blanco" || !item.Blank {
				t.Fatalf("unexpected blank option rendering: %+v", item)
			}
		case 11:
			if item.Label != "Lista 15" || item.Blank {
				t.Fatalf("unexpected list option rendering: %+v", item)
			}
		default:
			t.Fatalf("unexpected option id %d", item.OptionID)
		}
	}
}
