package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "sufragio/contexts/election-core/mesa-service/application"
	domainerrors "sufragio/contexts/election-core/mesa-service/domain/errors"
	"sufragio/contexts/election-core/mesa-service/ports"
)

// LifecycleUseCase drives mesa open/close transitions. State moves
// open -> closed at most once per election; reopening happens only through
// the explicit Open upsert at election start.
type LifecycleUseCase struct {
	Mesas  ports.MesaStateRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

// Open marks the circuit's mesa as accepting ballots, clearing any close
// metadata from a previous election. Safe to repeat.
func (uc LifecycleUseCase) Open(ctx context.Context, circuitID int64) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Mesas.Open(ctx, circuitID, uc.now()); err != nil {
		return err
	}
	logger.Info("mesa opened",
		"event", "mesa_opened",
		"module", "election-core/mesa-service",
		"layer", "application",
		"circuit_id", circuitID,
	)
	return nil
}

// Close transitions the mesa to closed, recording the closing official. The
// official must hold a mesa role in the same circuit.
func (uc LifecycleUseCase) Close(ctx context.Context, circuitID int64, officialID string) error {
	logger := application.ResolveLogger(uc.Logger)
	officialID = strings.TrimSpace(officialID)
	if officialID == "" {
		logger.Warn("mesa close validation failed",
			"event", "mesa_close_validation_failed",
			"module", "election-core/mesa-service",
			"layer", "application",
			"circuit_id", circuitID,
		)
		return domainerrors.ErrOfficialRequired
	}

	authorized, err := uc.Mesas.IsOfficialOf(ctx, officialID, circuitID)
	if err != nil {
		return err
	}
	if !authorized {
		logger.Warn("mesa close rejected for non-official",
			"event", "mesa_close_not_authorized",
			"module", "election-core/mesa-service",
			"layer", "application",
			"circuit_id", circuitID,
		)
		return domainerrors.ErrCloseNotAuthorized
	}

	if err := uc.Mesas.Close(ctx, circuitID, officialID, uc.now()); err != nil {
		return err
	}
	logger.Info("mesa closed",
		"event", "mesa_closed",
		"module", "election-core/mesa-service",
		"layer", "application",
		"circuit_id", circuitID,
	)
	return nil
}

func (uc LifecycleUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
