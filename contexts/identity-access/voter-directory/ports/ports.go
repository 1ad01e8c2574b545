package ports

import (
	"context"

	"sufragio/contexts/identity-access/voter-directory/domain/entities"
)

// ElectionProjection is the read-only slice of the election catalog the
// directory needs to report whether a voter already cast a ballot.
type ElectionProjection struct {
	ElectionID int64
	Name       string
	Active     bool
}

type VoterRepository interface {
	VoterByCredential(ctx context.Context, credential string) (entities.Voter, entities.CircuitLocation, bool, error)
	RoleByCedula(ctx context.Context, cedula string) (entities.Role, error)
	HasVoted(ctx context.Context, cedula string, electionID int64) (bool, error)
	ActiveElection(ctx context.Context) (ElectionProjection, bool, error)
}
