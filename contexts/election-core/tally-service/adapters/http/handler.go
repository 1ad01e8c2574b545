package httpadapter

import (
	"context"
	"log/slog"

	"sufragio/contexts/election-core/tally-service/application/queries"
	"sufragio/contexts/election-core/tally-service/domain/entities"
	httptransport "sufragio/contexts/election-core/tally-service/transport/http"
)

type Handler struct {
	Results queries.ResultsUseCase
	Logger  *slog.Logger
}

func (h Handler) CircuitResultsHandler(
	ctx context.Context,
	circuitID int64,
	requester string,
) (httptransport.CircuitResultsResponse, error) {
	results, err := h.Results.CircuitResults(ctx, circuitID, requester)
	if err != nil {
		return httptransport.CircuitResultsResponse{}, err
	}
	items, total := tallyItems(results.Rows)
	return httptransport.CircuitResultsResponse{
		CircuitID: circuitID,
		Mesa: httptransport.MesaStatus{
			CircuitID: results.Mesa.CircuitID,
			IsOpen:    results.Mesa.IsOpen,
			OpenedAt:  results.Mesa.OpenedAt,
			ClosedAt:  results.Mesa.ClosedAt,
		},
		Official: !results.Mesa.IsOpen,
		Total:    total,
		Items:    items,
	}, nil
}

func (h Handler) DepartmentResultsHandler(ctx context.Context, departmentID int64) (httptransport.DepartmentResultsResponse, error) {
	rows, err := h.Results.DepartmentResults(ctx, departmentID)
	if err != nil {
		return httptransport.DepartmentResultsResponse{}, err
	}
	items, total := tallyItems(rows)
	return httptransport.DepartmentResultsResponse{
		DepartmentID: departmentID,
		Total:        total,
		Items:        items,
	}, nil
}

func (h Handler) NationalResultsHandler(ctx context.Context) (httptransport.NationalResultsResponse, error) {
	rows, err := h.Results.NationalResults(ctx)
	if err != nil {
		return httptransport.NationalResultsResponse{}, err
	}
	items, total := tallyItems(rows)
	return httptransport.NationalResultsResponse{
		Total: total,
		Items: items,
	}, nil
}

func (h Handler) ParticipationHandler(ctx context.Context) (httptransport.ParticipationResponse, error) {
	stats, err := h.Results.Participation(ctx)
	if err != nil {
		return httptransport.ParticipationResponse{}, err
	}
	perCircuit := make([]httptransport.CircuitTurnoutItem, 0, len(stats.PerCircuit))
	for _, turnout := range stats.PerCircuit {
		perCircuit = append(perCircuit, httptransport.CircuitTurnoutItem{
			CircuitID:    turnout.CircuitID,
			City:         turnout.City,
			Neighborhood: turnout.Neighborhood,
			Ballots:      turnout.Ballots,
		})
	}
	return httptransport.ParticipationResponse{
		TotalVoters:  stats.TotalVoters,
		TotalBallots: stats.TotalBallots,
		Turnout: httptransport.Percentage{
			Count: stats.TotalBallots,
			Total: stats.TotalVoters,
		},
		PerCircuit: perCircuit,
	}, nil
}

// tallyItems maps ranked rows to transport items, attaching each row's share
// of the scope total.
func tallyItems(rows []entities.TallyRow) ([]httptransport.TallyRowItem, int64) {
	var total int64
	for _, row := range rows {
		total += row.Count
	}
	items := make([]httptransport.TallyRowItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, httptransport.TallyRowItem{
			OptionID:   row.OptionID,
			Label:      row.Label,
			Color:      row.Color,
			ListNumber: row.ListNumber,
			Count:      row.Count,
			Percentage: httptransport.Percentage{
				Count: row.Count,
				Total: total,
			},
		})
	}
	return items, total
}
