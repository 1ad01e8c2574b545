package httpadapter

import (
	"context"
	"log/slog"

	"sufragio/contexts/election-core/voting-engine/application/commands"
	"sufragio/contexts/election-core/voting-engine/application/queries"
	httptransport "sufragio/contexts/election-core/voting-engine/transport/http"
)

type Handler struct {
	Votes   commands.CastVoteUseCase
	Catalog queries.CatalogUseCase
	Logger  *slog.Logger
}

func (h Handler) CastVoteHandler(ctx context.Context, req httptransport.CastVoteRequest) (httptransport.CastVoteResponse, error) {
	result, err := h.Votes.Cast(ctx, commands.CastVoteCommand{
		Credential: req.Credential,
		OptionID:   req.BallotOptionID,
		CircuitID:  req.CircuitID,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	message := "Voto registrado exitosamente"
	if result.Observed {
		message = "Voto registrado como observado (no corresponde a su circuito)"
	}
	return httptransport.CastVoteResponse{
		BallotID: result.BallotID,
		Observed: result.Observed,
		Message:  message,
	}, nil
}

func (h Handler) ActiveElectionHandler(ctx context.Context) (httptransport.ElectionResponse, error) {
	election, err := h.Catalog.ActiveElection(ctx)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return httptransport.ElectionResponse{
		ElectionID: election.ElectionID,
		Name:       election.Name,
		HeldOn:     election.HeldOn,
		IsActive:   election.IsActive,
	}, nil
}

func (h Handler) BallotOptionsHandler(ctx context.Context, electionID int64) (httptransport.BallotOptionsResponse, error) {
	options, err := h.Catalog.BallotOptions(ctx, electionID)
	if err != nil {
		return httptransport.BallotOptionsResponse{}, err
	}
	items := make([]httptransport.BallotOptionItem, 0, len(options))
	for _, option := range options {
		items = append(items, httptransport.BallotOptionItem{
			OptionID:   option.OptionID,
			Color:      option.Color,
			Label:      option.Label(),
			ListNumber: option.ListNumber,
			Blank:      option.IsBlank(),
		})
	}
	return httptransport.BallotOptionsResponse{
		ElectionID: electionID,
		Items:      items,
	}, nil
}

func (h Handler) ObservedBallotsHandler(ctx context.Context) (httptransport.ObservedBallotsResponse, error) {
	ballots, err := h.Catalog.ObservedBallots(ctx)
	if err != nil {
		return httptransport.ObservedBallotsResponse{}, err
	}
	items := make([]httptransport.ObservedBallotItem, 0, len(ballots))
	for _, ballot := range ballots {
		items = append(items, httptransport.ObservedBallotItem{
			BallotID:  ballot.BallotID,
			CircuitID: ballot.CircuitID,
			CastAt:    ballot.CastAt,
			Status:    string(ballot.Status),
		})
	}
	return httptransport.ObservedBallotsResponse{Items: items}, nil
}
