package votingengine

import (
	"log/slog"

	httpadapter "sufragio/contexts/election-core/voting-engine/adapters/http"
	"sufragio/contexts/election-core/voting-engine/adapters/memory"
	"sufragio/contexts/election-core/voting-engine/application/commands"
	"sufragio/contexts/election-core/voting-engine/application/queries"
	"sufragio/contexts/election-core/voting-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Votes   commands.CastVoteUseCase
	Catalog queries.CatalogUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Ledger    ports.BallotLedger
	Elections ports.ElectionCatalog
	Voters    ports.VoterLookup
	Clock     ports.Clock
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	votes := commands.CastVoteUseCase{
		Ledger:    deps.Ledger,
		Elections: deps.Elections,
		Voters:    deps.Voters,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	catalog := queries.CatalogUseCase{
		Elections: deps.Elections,
		Ledger:    deps.Ledger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Votes:   votes,
			Catalog: catalog,
			Logger:  deps.Logger,
		},
		Votes:   votes,
		Catalog: catalog,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Ledger:    store,
		Elections: store,
		Voters:    store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
