package pipelineservice

import (
	"log/slog"

	httpadapter "pressroom/contexts/project-pipeline/pipeline-service/adapters/http"
	"pressroom/contexts/project-pipeline/pipeline-service/adapters/memory"
	"pressroom/contexts/project-pipeline/pipeline-service/application/commands"
	"pressroom/contexts/project-pipeline/pipeline-service/application/queries"
	"pressroom/contexts/project-pipeline/pipeline-service/domain/entities"
	"pressroom/contexts/project-pipeline/pipeline-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Projects    ports.ProjectRepository
	History     ports.StageHistoryRepository
	Tasks       ports.TaskReader
	TaskWriter  ports.TaskWriter
	Templates   ports.TemplateReader
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createProject := commands.CreateProjectUseCase{
		Projects:  deps.Projects,
		History:   deps.History,
		Templates: deps.Templates,
		Tasks:     deps.TaskWriter,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	requestStageMove := commands.RequestStageMoveUseCase{
		Projects:  deps.Projects,
		History:   deps.History,
		Tasks:     deps.Tasks,
		Writer:    deps.TaskWriter,
		Templates: deps.Templates,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}

	getProject := queries.GetProjectUseCase{
		Projects: deps.Projects,
		Logger:   deps.Logger,
	}
	listStageHistory := queries.ListStageHistoryUseCase{
		History: deps.History,
		Logger:  deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateProject:    createProject,
			RequestStageMove: requestStageMove,
			GetProject:       getProject,
			ListStageHistory: listStageHistory,
			Logger:           deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Project, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Projects:    store,
		History:     store,
		Tasks:       store,
		TaskWriter:  store,
		Templates:   store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
