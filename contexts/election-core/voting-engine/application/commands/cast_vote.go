package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "sufragio/contexts/election-core/voting-engine/application"
	domainerrors "sufragio/contexts/election-core/voting-engine/domain/errors"
	"sufragio/contexts/election-core/voting-engine/ports"
)

type CastVoteCommand struct {
	Credential string
	OptionID   int64
	CircuitID  int64
}

type CastVoteResult struct {
	BallotID int64
	Observed bool
}

// CastVoteUseCase orchestrates vote admission. Per (voter, election) the state
// machine is NotVoted -> Voted with no reverse transition: a voter who cast a
// ballot is rejected on every later attempt regardless of option or circuit.
type CastVoteUseCase struct {
	Ledger    ports.BallotLedger
	Elections ports.ElectionCatalog
	Voters    ports.VoterLookup
	Clock     ports.Clock
	Logger    *slog.Logger
}

// Cast admits or rejects one vote. Validation happens before any datastore
// write; the duplicate pre-check here is advisory and the ledger re-enforces
// both the mesa gate and uniqueness inside its transaction.
func (uc CastVoteUseCase) Cast(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	credential := strings.TrimSpace(cmd.Credential)
	if credential == "" || cmd.OptionID <= 0 || cmd.CircuitID <= 0 {
		logger.Warn("vote cast validation failed",
			"event", "voting_cast_validation_failed",
			"module", "election-core/voting-engine",
			"layer", "application",
			"option_id", cmd.OptionID,
			"circuit_id", cmd.CircuitID,
		)
		return CastVoteResult{}, domainerrors.ErrInvalidVoteInput
	}

	election, active, err := uc.Elections.ActiveElection(ctx)
	if err != nil {
		return CastVoteResult{}, err
	}
	if !active {
		logger.Warn("vote cast with no active election",
			"event", "voting_cast_no_active_election",
			"module", "election-core/voting-engine",
			"layer", "application",
		)
		return CastVoteResult{}, domainerrors.ErrNoActiveElection
	}

	voter, found, err := uc.Voters.VoterByCredential(ctx, credential)
	if err != nil {
		return CastVoteResult{}, err
	}
	if !found {
		return CastVoteResult{}, domainerrors.ErrVoterNotFound
	}

	if voted, err := uc.Voters.HasVoted(ctx, voter.Cedula, election.ElectionID); err != nil {
		return CastVoteResult{}, err
	} else if voted {
		logger.Info("duplicate vote rejected on pre-check",
			"event", "voting_cast_duplicate_precheck",
			"module", "election-core/voting-engine",
			"layer", "application",
			"election_id", election.ElectionID,
		)
		return CastVoteResult{}, domainerrors.ErrAlreadyVoted
	}

	// Voting away from the assigned circuit is permitted but flagged.
	observed := cmd.CircuitID != voter.CircuitID

	ballotID, err := uc.Ledger.CastBallot(ctx, ports.BallotCast{
		Cedula:     voter.Cedula,
		ElectionID: election.ElectionID,
		OptionID:   cmd.OptionID,
		CircuitID:  cmd.CircuitID,
		Observed:   observed,
		CastAt:     uc.now(),
	})
	if err != nil {
		return CastVoteResult{}, err
	}

	logger.Info("ballot recorded",
		"event", "voting_ballot_recorded",
		"module", "election-core/voting-engine",
		"layer", "application",
		"ballot_id", ballotID,
		"election_id", election.ElectionID,
		"circuit_id", cmd.CircuitID,
		"observed", observed,
	)
	return CastVoteResult{
		BallotID: ballotID,
		Observed: observed,
	}, nil
}

func (uc CastVoteUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
