package queries

import (
	"context"

	"sufragio/contexts/election-core/voting-engine/domain/entities"
	domainerrors "sufragio/contexts/election-core/voting-engine/domain/errors"
	"sufragio/contexts/election-core/voting-engine/ports"
)

// CatalogUseCase serves the read side of the voting booth: the active
// election and its selectable ballot options.
type CatalogUseCase struct {
	Elections ports.ElectionCatalog
	Ledger    ports.BallotLedger
}

func (uc CatalogUseCase) ActiveElection(ctx context.Context) (entities.Election, error) {
	election, active, err := uc.Elections.ActiveElection(ctx)
	if err != nil {
		return entities.Election{}, err
	}
	if !active {
		return entities.Election{}, domainerrors.ErrNoActiveElection
	}
	return election, nil
}

func (uc CatalogUseCase) BallotOptions(ctx context.Context, electionID int64) ([]entities.BallotOption, error) {
	return uc.Elections.BallotOptions(ctx, electionID)
}

func (uc CatalogUseCase) ObservedBallots(ctx context.Context) ([]entities.Ballot, error) {
	return uc.Ledger.ListObserved(ctx)
}
