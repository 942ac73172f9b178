package arbiterregistry

import (
	"log/slog"

	httpadapter "tribunal/contexts/arbitration/arbiter-registry/adapters/http"
	"tribunal/contexts/arbitration/arbiter-registry/adapters/memory"
	"tribunal/contexts/arbitration/arbiter-registry/application/commands"
	"tribunal/contexts/arbitration/arbiter-registry/application/queries"
	"tribunal/contexts/arbitration/arbiter-registry/ports"
)

// Module bundles the registry's wired entrypoints.
type Module struct {
	Handler *httpadapter.Handler
	Queries queries.RegistryQueries

	// Store is set only by NewInMemoryModule.
	Store *memory.Store
}

// Dependencies lists what the registry needs from the outside.
type Dependencies struct {
	Repository ports.RegistryRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Owner      string
	Logger     *slog.Logger
}

// NewModule wires commands and queries onto the provided adapters.
func NewModule(deps Dependencies) *Module {
	registryQueries := queries.RegistryQueries{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	handler := &httpadapter.Handler{
		Authorize: commands.AuthorizeArbiterUseCase{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			IDGen:      deps.IDGen,
			Owner:      deps.Owner,
			Logger:     deps.Logger,
		},
		Revoke: commands.RevokeArbiterUseCase{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			IDGen:      deps.IDGen,
			Owner:      deps.Owner,
			Logger:     deps.Logger,
		},
		Queries: registryQueries,
		Logger:  deps.Logger,
	}
	return &Module{
		Handler: handler,
		Queries: registryQueries,
	}
}

// NewInMemoryModule wires the registry onto a fresh in-memory store.
func NewInMemoryModule(owner string, logger *slog.Logger) *Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Owner:      owner,
		Logger:     logger,
	})
	module.Store = store
	return module
}
