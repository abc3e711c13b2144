package versionservice

import (
	"log/slog"

	httpadapter "pressroom/contexts/campaign-approval/version-service/adapters/http"
	"pressroom/contexts/campaign-approval/version-service/adapters/memory"
	"pressroom/contexts/campaign-approval/version-service/application/commands"
	"pressroom/contexts/campaign-approval/version-service/application/queries"
	"pressroom/contexts/campaign-approval/version-service/domain/entities"
	"pressroom/contexts/campaign-approval/version-service/ports"
)

type Module struct {
	Handler           httpadapter.Handler
	CreateVersion     commands.CreateVersionUseCase
	UpdateStatus      commands.UpdateStatusUseCase
	GetCurrentVersion queries.GetCurrentVersionUseCase
	Store             *memory.Store
}

type Dependencies struct {
	Versions    ports.VersionRepository
	Renderer    ports.Renderer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createVersion := commands.CreateVersionUseCase{
		Versions: deps.Versions,
		Renderer: deps.Renderer,
		Clock:    deps.Clock,
		IDGen:    deps.IDGenerator,
		Logger:   deps.Logger,
	}
	updateStatus := commands.UpdateStatusUseCase{
		Versions: deps.Versions,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	getCurrent := queries.GetCurrentVersionUseCase{
		Versions: deps.Versions,
		Logger:   deps.Logger,
	}
	listVersions := queries.ListVersionsUseCase{
		Versions: deps.Versions,
		Logger:   deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateVersion:     createVersion,
			UpdateStatus:      updateStatus,
			GetCurrentVersion: getCurrent,
			ListVersions:      listVersions,
			Logger:            deps.Logger,
		},
		CreateVersion:     createVersion,
		UpdateStatus:      updateStatus,
		GetCurrentVersion: getCurrent,
	}
}

func NewInMemoryModule(seed []entities.Version, renderer ports.Renderer, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	if renderer == nil {
		renderer = memory.StaticRenderer{}
	}
	module := NewModule(Dependencies{
		Versions:    store,
		Renderer:    renderer,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
