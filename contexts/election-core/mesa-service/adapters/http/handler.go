package httpadapter

import (
	"context"
	"log/slog"

	"sufragio/contexts/election-core/mesa-service/application/commands"
	"sufragio/contexts/election-core/mesa-service/application/queries"
	"sufragio/contexts/election-core/mesa-service/domain/entities"
	httptransport "sufragio/contexts/election-core/mesa-service/transport/http"
)

type Handler struct {
	Lifecycle commands.LifecycleUseCase
	State     queries.StateUseCase
	Logger    *slog.Logger
}

func (h Handler) GetStateHandler(ctx context.Context, circuitID int64) (httptransport.MesaStateResponse, error) {
	state, err := h.State.State(ctx, circuitID)
	if err != nil {
		return httptransport.MesaStateResponse{}, err
	}
	return mapState(state), nil
}

func (h Handler) OpenMesaHandler(ctx context.Context, circuitID int64) (httptransport.MesaStateResponse, error) {
	if err := h.Lifecycle.Open(ctx, circuitID); err != nil {
		return httptransport.MesaStateResponse{}, err
	}
	state, err := h.State.State(ctx, circuitID)
	if err != nil {
		return httptransport.MesaStateResponse{}, err
	}
	return mapState(state), nil
}

func (h Handler) CloseMesaHandler(
	ctx context.Context,
	circuitID int64,
	req httptransport.CloseMesaRequest,
) (httptransport.MesaStateResponse, error) {
	if err := h.Lifecycle.Close(ctx, circuitID, req.OfficialID); err != nil {
		return httptransport.MesaStateResponse{}, err
	}
	state, err := h.State.State(ctx, circuitID)
	if err != nil {
		return httptransport.MesaStateResponse{}, err
	}
	return mapState(state), nil
}

func (h Handler) OpenMesasHandler(ctx context.Context) (httptransport.OpenMesasResponse, error) {
	mesas, err := h.State.OpenMesas(ctx)
	if err != nil {
		return httptransport.OpenMesasResponse{}, err
	}
	items := make([]httptransport.OpenMesaItem, 0, len(mesas))
	for _, mesa := range mesas {
		items = append(items, httptransport.OpenMesaItem{
			CircuitID:    mesa.CircuitID,
			OpenedAt:     mesa.OpenedAt,
			City:         mesa.City,
			Neighborhood: mesa.Neighborhood,
		})
	}
	return httptransport.OpenMesasResponse{Items: items}, nil
}

func mapState(state entities.MesaState) httptransport.MesaStateResponse {
	return httptransport.MesaStateResponse{
		CircuitID:         state.CircuitID,
		IsOpen:            state.IsOpen,
		OpenedAt:          state.OpenedAt,
		ClosedAt:          state.ClosedAt,
		ClosingOfficialID: state.ClosingOfficialID,
	}
}
