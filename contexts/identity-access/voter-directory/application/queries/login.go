package queries

import (
	"context"
	"log/slog"
	"strings"

	application "sufragio/contexts/identity-access/voter-directory/application"
	"sufragio/contexts/identity-access/voter-directory/domain/entities"
	domainerrors "sufragio/contexts/identity-access/voter-directory/domain/errors"
	"sufragio/contexts/identity-access/voter-directory/ports"
)

// LoginResult carries everything the booth UI needs after credential
// resolution: identity, assigned circuit location, role variant, and whether
// the voter already cast a ballot in the active election.
type LoginResult struct {
	Voter        entities.Voter
	Location     entities.CircuitLocation
	Role         entities.Role
	AlreadyVoted bool
}

type LoginUseCase struct {
	Voters ports.VoterRepository
	Logger *slog.Logger
}

// Login resolves a voter by credential. Absence of a directory match surfaces
// as ErrVoterNotFound; the directory itself is never mutated.
func (uc LoginUseCase) Login(ctx context.Context, credential string) (LoginResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	credential = strings.TrimSpace(credential)
	if credential == "" {
		logger.Warn("login validation failed",
			"event", "directory_login_validation_failed",
			"module", "identity-access/voter-directory",
			"layer", "application",
		)
		return LoginResult{}, domainerrors.ErrCredentialRequired
	}

	voter, location, found, err := uc.Voters.VoterByCredential(ctx, credential)
	if err != nil {
		return LoginResult{}, err
	}
	if !found {
		logger.Info("login credential not in padron",
			"event", "directory_login_voter_not_found",
			"module", "identity-access/voter-directory",
			"layer", "application",
		)
		return LoginResult{}, domainerrors.ErrVoterNotFound
	}

	role, err := uc.Voters.RoleByCedula(ctx, voter.Cedula)
	if err != nil {
		return LoginResult{}, err
	}

	alreadyVoted := false
	if election, active, err := uc.Voters.ActiveElection(ctx); err != nil {
		return LoginResult{}, err
	} else if active {
		alreadyVoted, err = uc.Voters.HasVoted(ctx, voter.Cedula, election.ElectionID)
		if err != nil {
			return LoginResult{}, err
		}
	}

	logger.Info("voter resolved",
		"event", "directory_login_resolved",
		"module", "identity-access/voter-directory",
		"layer", "application",
		"circuit_id", voter.CircuitID,
		"role_kind", string(role.Kind),
		"already_voted", alreadyVoted,
	)
	return LoginResult{
		Voter:        voter,
		Location:     location,
		Role:         role,
		AlreadyVoted: alreadyVoted,
	}, nil
}

// ResolveRole answers the tagged role variant for an identity without a full
// login round trip. Used by result-visibility checks and booth displays.
func (uc LoginUseCase) ResolveRole(ctx context.Context, cedula string) (entities.Role, error) {
	cedula = strings.TrimSpace(cedula)
	if cedula == "" {
		return entities.Role{}, domainerrors.ErrCredentialRequired
	}
	return uc.Voters.RoleByCedula(ctx, cedula)
}
