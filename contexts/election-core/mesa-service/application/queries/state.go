package queries

import (
	"context"

	"sufragio/contexts/election-core/mesa-service/domain/entities"
	"sufragio/contexts/election-core/mesa-service/ports"
)

type StateUseCase struct {
	Mesas ports.MesaStateRepository
}

func (uc StateUseCase) State(ctx context.Context, circuitID int64) (entities.MesaState, error) {
	return uc.Mesas.GetState(ctx, circuitID)
}

func (uc StateUseCase) OpenMesas(ctx context.Context) ([]entities.OpenMesa, error) {
	return uc.Mesas.ListOpen(ctx)
}

func (uc StateUseCase) IsOfficialOf(ctx context.Context, cedula string, circuitID int64) (bool, error) {
	return uc.Mesas.IsOfficialOf(ctx, cedula, circuitID)
}
