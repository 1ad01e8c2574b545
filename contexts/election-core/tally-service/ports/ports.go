package ports

import (
	"context"
	"time"

	"sufragio/contexts/election-core/tally-service/domain/entities"
)

type TallyRepository interface {
	// Tally methods group valid ballots of the active election by option,
	// left-joined so zero-count options still appear. Rows come back ordered
	// by count descending, option id ascending.
	TallyNational(ctx context.Context) ([]entities.TallyRow, error)
	TallyByCircuit(ctx context.Context, circuitID int64) ([]entities.TallyRow, error)
	TallyByDepartment(ctx context.Context, departmentID int64) ([]entities.TallyRow, error)
	ParticipationStats(ctx context.Context) (entities.ParticipationStats, error)
}

// MesaStateProjection is the mesa slice the aggregator needs to gate and
// annotate circuit results.
type MesaStateProjection struct {
	CircuitID         int64
	IsOpen            bool
	OpenedAt          *time.Time
	ClosedAt          *time.Time
	ClosingOfficialID string
}

type MesaStateReader interface {
	MesaState(ctx context.Context, circuitID int64) (MesaStateProjection, bool, error)
	IsOfficialOf(ctx context.Context, cedula string, circuitID int64) (bool, error)
}
