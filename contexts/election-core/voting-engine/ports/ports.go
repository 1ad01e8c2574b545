package ports

import (
	"context"
	"time"

	"sufragio/contexts/election-core/voting-engine/domain/entities"
)

// BallotCast is the fully resolved write-model for one accepted vote.
type BallotCast struct {
	Cedula     string
	ElectionID int64
	OptionID   int64
	CircuitID  int64
	Observed   bool
	CastAt     time.Time
}

type BallotLedger interface {
	// CastBallot commits the ballot row and both link rows as one atomic
	// unit, re-validating mesa state, option membership, and the
	// one-ballot-per-election guarantee inside the same transaction. Either
	// all three rows exist afterwards or none do.
	CastBallot(ctx context.Context, cast BallotCast) (int64, error)
	// ListObserved returns observed ballots, newest first, for downstream
	// reconciliation review.
	ListObserved(ctx context.Context) ([]entities.Ballot, error)
}

type ElectionCatalog interface {
	ActiveElection(ctx context.Context) (entities.Election, bool, error)
	BallotOptions(ctx context.Context, electionID int64) ([]entities.BallotOption, error)
}

// VoterProjection is the slice of the voter directory the orchestrator needs:
// identity and assigned circuit.
type VoterProjection struct {
	Cedula    string
	CircuitID int64
}

type VoterLookup interface {
	VoterByCredential(ctx context.Context, credential string) (VoterProjection, bool, error)
	// HasVoted is the fast-path duplicate check; the ledger's unique
	// constraint remains the source of truth.
	HasVoted(ctx context.Context, cedula string, electionID int64) (bool, error)
}

type Clock interface {
	Now() time.Time
}
