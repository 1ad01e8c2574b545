package ports

import (
	"context"
	"time"

	"sufragio/contexts/election-core/mesa-service/domain/entities"
)

type MesaStateRepository interface {
	// GetState returns the mesa row for a circuit; absence is reported via
	// domain ErrMesaNotFound.
	GetState(ctx context.Context, circuitID int64) (entities.MesaState, error)
	// Open upserts the circuit to open, stamping openedAt and clearing any
	// close metadata. Idempotent.
	Open(ctx context.Context, circuitID int64, openedAt time.Time) error
	// Close transitions an open mesa to closed atomically. Fails with
	// ErrMesaNotFound when no state row exists and ErrMesaAlreadyClosed when
	// the mesa was closed before.
	Close(ctx context.Context, circuitID int64, officialID string, closedAt time.Time) error
	// IsOfficialOf reports whether the identity holds a mesa-official role
	// scoped to the circuit.
	IsOfficialOf(ctx context.Context, cedula string, circuitID int64) (bool, error)
	ListOpen(ctx context.Context) ([]entities.OpenMesa, error)
}

type Clock interface {
	Now() time.Time
}
