package tallyservice

import (
	"log/slog"

	httpadapter "sufragio/contexts/election-core/tally-service/adapters/http"
	"sufragio/contexts/election-core/tally-service/adapters/memory"
	"sufragio/contexts/election-core/tally-service/application/queries"
	"sufragio/contexts/election-core/tally-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Results queries.ResultsUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Tallies ports.TallyRepository
	Mesas   ports.MesaStateReader
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	results := queries.ResultsUseCase{
		Tallies: deps.Tallies,
		Mesas:   deps.Mesas,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Results: results,
			Logger:  deps.Logger,
		},
		Results: results,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Tallies: store,
		Mesas:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
