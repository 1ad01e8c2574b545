package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	application "sufragio/contexts/election-core/tally-service/application"
	"sufragio/contexts/election-core/tally-service/domain/entities"
	domainerrors "sufragio/contexts/election-core/tally-service/domain/errors"
	"sufragio/contexts/election-core/tally-service/ports"
)

// CircuitResults pairs the ranked rows with the mesa state so callers can
// tell a final tally from a partial one.
type CircuitResults struct {
	Rows []entities.TallyRow
	Mesa ports.MesaStateProjection
}

type ResultsUseCase struct {
	Tallies ports.TallyRepository
	Mesas   ports.MesaStateReader
	Logger  *slog.Logger
}

// CircuitResults returns the circuit tally, gated by mesa visibility: an open
// mesa exposes its partial tally only to its own officials.
func (uc ResultsUseCase) CircuitResults(
	ctx context.Context,
	circuitID int64,
	requester string,
) (CircuitResults, error) {
	logger := application.ResolveLogger(uc.Logger)
	requester = strings.TrimSpace(requester)
	if requester == "" {
		return CircuitResults{}, domainerrors.ErrRequesterRequired
	}

	mesa, found, err := uc.Mesas.MesaState(ctx, circuitID)
	if err != nil {
		return CircuitResults{}, err
	}
	if !found {
		return CircuitResults{}, domainerrors.ErrCircuitNotFound
	}

	if mesa.IsOpen {
		official, err := uc.Mesas.IsOfficialOf(ctx, requester, circuitID)
		if err != nil {
			return CircuitResults{}, err
		}
		if !official {
			logger.Info("partial tally denied to non-official",
				"event", "tally_circuit_results_denied",
				"module", "election-core/tally-service",
				"layer", "application",
				"circuit_id", circuitID,
			)
			return CircuitResults{}, domainerrors.ErrResultsNotVisible
		}
	}

	rows, err := uc.Tallies.TallyByCircuit(ctx, circuitID)
	if err != nil {
		return CircuitResults{}, err
	}
	return CircuitResults{
		Rows: rankRows(rows),
		Mesa: mesa,
	}, nil
}

func (uc ResultsUseCase) DepartmentResults(ctx context.Context, departmentID int64) ([]entities.TallyRow, error) {
	rows, err := uc.Tallies.TallyByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return rankRows(rows), nil
}

func (uc ResultsUseCase) NationalResults(ctx context.Context) ([]entities.TallyRow, error) {
	rows, err := uc.Tallies.TallyNational(ctx)
	if err != nil {
		return nil, err
	}
	return rankRows(rows), nil
}

func (uc ResultsUseCase) Participation(ctx context.Context) (entities.ParticipationStats, error) {
	return uc.Tallies.ParticipationStats(ctx)
}

// rankRows enforces the display ordering: count descending, ties broken by
// ascending option id so repeated queries render identically.
func rankRows(rows []entities.TallyRow) []entities.TallyRow {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].OptionID < rows[j].OptionID
		}
		return rows[i].Count > rows[j].Count
	})
	return rows
}
