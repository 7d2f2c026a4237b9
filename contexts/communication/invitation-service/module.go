package invitationservice

import (
	"log/slog"

	httpadapter "gatherly/contexts/communication/invitation-service/adapters/http"
	"gatherly/contexts/communication/invitation-service/adapters/memory"
	"gatherly/contexts/communication/invitation-service/application"
	"gatherly/contexts/communication/invitation-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repo   ports.Repository
	Events ports.EventReader
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repo,
		Events: deps.Events,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Invitations: service,
			Logger:      deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:   store,
		Events: store,
		Clock:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
