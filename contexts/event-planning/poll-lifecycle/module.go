package polllifecycle

import (
	"log/slog"

	httpadapter "gatherly/contexts/event-planning/poll-lifecycle/adapters/http"
	"gatherly/contexts/event-planning/poll-lifecycle/adapters/memory"
	"gatherly/contexts/event-planning/poll-lifecycle/application/commands"
	"gatherly/contexts/event-planning/poll-lifecycle/application/queries"
	"gatherly/contexts/event-planning/poll-lifecycle/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Polls    ports.PollRepository
	Votes    ports.VoteLedger
	Members  ports.MembershipReader
	Events   ports.EventDirectory
	Identity ports.IdentityVerifier
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	pollUseCase := commands.PollUseCase{
		Polls:    deps.Polls,
		Votes:    deps.Votes,
		Members:  deps.Members,
		Events:   deps.Events,
		Identity: deps.Identity,
		Outbox:   deps.Outbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	tallyUseCase := queries.TallyUseCase{
		Polls: deps.Polls,
		Votes: deps.Votes,
	}
	return Module{
		Handler: httpadapter.Handler{
			Polls:   pollUseCase,
			Tallies: tallyUseCase,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Polls:    store,
		Votes:    store,
		Members:  store,
		Events:   store,
		Identity: store,
		Outbox:   store,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
