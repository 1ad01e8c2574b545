package voterdirectory

import (
	"log/slog"

	httpadapter "sufragio/contexts/identity-access/voter-directory/adapters/http"
	"sufragio/contexts/identity-access/voter-directory/adapters/memory"
	"sufragio/contexts/identity-access/voter-directory/application/queries"
	"sufragio/contexts/identity-access/voter-directory/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Login   queries.LoginUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Voters ports.VoterRepository
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	login := queries.LoginUseCase{
		Voters: deps.Voters,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Directory: login,
			Logger:    deps.Logger,
		},
		Login: login,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Voters: store,
		Logger: logger,
	})
	module.Store = store
	return module
}
