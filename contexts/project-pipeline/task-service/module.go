package taskservice

import (
	"log/slog"

	httpadapter "pressroom/contexts/project-pipeline/task-service/adapters/http"
	"pressroom/contexts/project-pipeline/task-service/adapters/memory"
	"pressroom/contexts/project-pipeline/task-service/application/commands"
	"pressroom/contexts/project-pipeline/task-service/application/queries"
	"pressroom/contexts/project-pipeline/task-service/application/workers"
	"pressroom/contexts/project-pipeline/task-service/domain/entities"
	"pressroom/contexts/project-pipeline/task-service/ports"
)

type Module struct {
	Handler      httpadapter.Handler
	CompleteTask commands.CompleteTaskUseCase
	GraphAuditor workers.GraphAuditor
	Store        *memory.Store
}

type Dependencies struct {
	Tasks       ports.TaskRepository
	Audit       ports.GraphAuditRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createTask := commands.CreateTaskUseCase{
		Tasks:  deps.Tasks,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	editDependencies := commands.EditDependenciesUseCase{
		Tasks:  deps.Tasks,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	completeTask := commands.CompleteTaskUseCase{
		Tasks:  deps.Tasks,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	rescheduleTask := commands.RescheduleTaskUseCase{
		Tasks:  deps.Tasks,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}

	getTask := queries.GetTaskUseCase{
		Tasks:  deps.Tasks,
		Logger: deps.Logger,
	}
	listTasks := queries.ListProjectTasksUseCase{
		Tasks:  deps.Tasks,
		Logger: deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateTask:       createTask,
			EditDependencies: editDependencies,
			CompleteTask:     completeTask,
			RescheduleTask:   rescheduleTask,
			GetTask:          getTask,
			ListTasks:        listTasks,
			Logger:           deps.Logger,
		},
		CompleteTask: completeTask,
		GraphAuditor: workers.GraphAuditor{
			Tasks:    deps.Tasks,
			Projects: deps.Audit,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Task, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Tasks:       store,
		Audit:       store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
