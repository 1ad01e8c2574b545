package mesaservice_test

import (
	"context"
	"errors"
	"testing"

	mesaservice "sufragio/contexts/election-core/mesa-service"
	domainerrors "sufragio/contexts/election-core/mesa-service/domain/errors"
	httptransport "sufragio/contexts/election-core/mesa-service/transport/http"
)

func TestOpenMesaIsIdempotent(t *testing.T) {
	module := mesaservice.NewInMemoryModule(nil)
	ctx := context.Background()

	first, err := module.Handler.OpenMesaHandler(ctx, 7)
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	if !first.IsOpen || first.OpenedAt == nil {
		t.Fatalf("expected open mesa with opened_at, got %+v", first)
	}

	second, err := module.Handler.OpenMesaHandler(ctx, 7)
	if err != nil {
		t.Fatalf("repeated open failed: %v", err)
	}
	if !second.IsOpen {
		t.Fatalf("repeated open should leave mesa open")
	}
}

func TestOpenMesaClearsPreviousClosure(t *testing.T) {
	module := mesaservice.NewInMemoryModule(nil)
	module.Store.SetOfficial("41234567", 7)
	ctx := context.Background()

	if _, err := module.Handler.OpenMesaHandler(ctx, 7); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := module.Handler.CloseMesaHandler(ctx, 7, httptransport.CloseMesaRequest{OfficialID: "41234567"}); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	state, err := module.Handler.OpenMesaHandler(ctx, 7)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if !state.IsOpen {
		t.Fatalf("expected mesa open after reopen")
	}
	if state.ClosedAt != nil || state.ClosingOfficialID != "" {
		t.Fatalf("reopen should clear closure metadata, got %+v", state)
	}
}

func TestCloseMesaRecordsOfficial(t *testing.T) {
	module := mesaservice.NewInMemoryModule(nil)
	module.Store.SetOfficial("41234567", 7)
	ctx := context.Background()

	if _, err := module.Handler.OpenMesaHandler(ctx, 7); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	state, err := module.Handler.CloseMesaHandler(ctx, 7, httptransport.CloseMesaRequest{OfficialID: "41234567"})
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if state.IsOpen {
		t.Fatalf("expected mesa closed")
	}
	if state.ClosedAt == nil || state.ClosingOfficialID != "41234567" {
		t.Fatalf("expected closure metadata, got %+v", state)
	}
}

func TestCloseMesaFailsWhenAlreadyClosed(t *testing.T) {
	module := mesaservice.NewInMemoryModule(nil)
	module.Store.SetOfficial("41234567", 7)
	ctx := context.Background()

	if _, err := module.Handler.OpenMesaHandler(ctx, 7); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := module.Handler.CloseMesaHandler(ctx, 7, httptransport.CloseMesaRequest{OfficialID: "41234567"}); err != nil {
		t.Fatalf("first close failed: %v", err)
	}

	_, err := module.Handler.CloseMesaHandler(ctx, 7, httptransport.CloseMesaRequest{OfficialID: "41234567"})
	if !errors.Is(err, domainerrors.ErrMesaAlreadyClosed) {
		t.Fatalf("expected already closed error, got %v", err)
	}
}

func TestCloseMesaRejectsNonOfficial(t *testing.T) {
	module := mesaservice.NewInMemoryModule(nil)
	module.Store.SetOfficial("41234567", 7)
	ctx := context.Background()

	if _, err := module.Handler.OpenMesaHandler(ctx, 7); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	_, err := module.Handler.CloseMesaHandler(ctx, 7, httptransport.CloseMesaRequest{OfficialID: "99999999"})
	if !errors.Is(err, domainerrors.ErrCloseNotAuthorized) {
		t.Fatalf("expected close not authorized, got %v", err)
	}
}

func TestCloseMesaRequiresOfficialID(t *testing.T) {
	module := mesaservice.NewInMemoryModule(nil)
	ctx := context.Background()

	if _, err := module.Handler.OpenMesaHandler(ctx, 7); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	_, err := module.Handler.CloseMesaHandler(ctx, 7, httptransport.CloseMesaRequest{OfficialID: "  "})
	if !errors.Is(err, domainerrors.ErrOfficialRequired) {
		t.Fatalf("expected official required, got %v", err)
	}
}

func TestGetStateUnknownCircuit(t *testing.T) {
	module := mesaservice.NewInMemoryModule(nil)

	_, err := module.Handler.GetStateHandler(context.Background(), 99)
	if !errors.Is(err, domainerrors.ErrMesaNotFound) {
		t.Fatalf("expected mesa not found, got %v", err)
	}
}

func TestOpenMesasListsOnlyOpen(t *testing.T) {
	module := mesaservice.NewInMemoryModule(nil)
	module.Store.SetOfficial("41234567", 8)
	module.Store.SetLocation(7, "Montevideo", "Cordón")
	module.Store.SetLocation(8, "Salto", "Centro")
	ctx := context.Background()

	if _, err := module.Handler.OpenMesaHandler(ctx, 7); err != nil {
		t.Fatalf("open 7 failed: %v", err)
	}
	if _, err := module.Handler.OpenMesaHandler(ctx, 8); err != nil {
		t.Fatalf("open 8 failed: %v", err)
	}
	if _, err := module.Handler.CloseMesaHandler(ctx, 8, httptransport.CloseMesaRequest{OfficialID: "41234567"}); err != nil {
		t.Fatalf("close 8 failed: %v", err)
	}

	resp, err := module.Handler.OpenMesasHandler(ctx)
	if err != nil {
		t.Fatalf("open mesas failed: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected one open mesa, got %d", len(resp.Items))
	}
	if resp.Items[0].CircuitID != 7 || resp.Items[0].City != "Montevideo" {
		t.Fatalf("unexpected open mesa item: %+v", resp.Items[0])
	}
}
