package mesaservice

import (
	"log/slog"

	httpadapter "sufragio/contexts/election-core/mesa-service/adapters/http"
	"sufragio/contexts/election-core/mesa-service/adapters/memory"
	"sufragio/contexts/election-core/mesa-service/application/commands"
	"sufragio/contexts/election-core/mesa-service/application/queries"
	"sufragio/contexts/election-core/mesa-service/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Lifecycle commands.LifecycleUseCase
	State     queries.StateUseCase
	Store     *memory.Store
}

type Dependencies struct {
	Mesas  ports.MesaStateRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	lifecycle := commands.LifecycleUseCase{
		Mesas:  deps.Mesas,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	state := queries.StateUseCase{
		Mesas: deps.Mesas,
	}
	return Module{
		Handler: httpadapter.Handler{
			Lifecycle: lifecycle,
			State:     state,
			Logger:    deps.Logger,
		},
		Lifecycle: lifecycle,
		State:     state,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Mesas:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
