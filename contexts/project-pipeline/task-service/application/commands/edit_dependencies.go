package commands

import (
	"context"
	"log/slog"
	"strings"

	application "pressroom/contexts/project-pipeline/task-service/application"
	"pressroom/contexts/project-pipeline/task-service/domain/entities"
	domainerrors "pressroom/contexts/project-pipeline/task-service/domain/errors"
	"pressroom/contexts/project-pipeline/task-service/domain/taskgraph"
	"pressroom/contexts/project-pipeline/task-service/ports"
)

type EditDependenciesCommand struct {
	OrganizationID           string
	TaskID                   string
	DependsOnTaskIDs         []string
	DependsOnStageCompletion []string
}

// EditDependenciesUseCase replaces a task's dependency edges. The edit is
// validated against a single snapshot of the project task set and refused
// outright when it would introduce a cycle; persisted edges stay untouched
// on any failure.
type EditDependenciesUseCase struct {
	Tasks  ports.TaskRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc EditDependenciesUseCase) Execute(ctx context.Context, cmd EditDependenciesCommand) (entities.Task, error) {
	logger := application.ResolveLogger(uc.Logger)
	task, err := uc.Tasks.GetTask(ctx, strings.TrimSpace(cmd.OrganizationID), strings.TrimSpace(cmd.TaskID))
	if err != nil {
		return entities.Task{}, err
	}

	snapshot, err := uc.Tasks.ListTasksByProject(ctx, task.OrganizationID, task.ProjectID)
	if err != nil {
		return entities.Task{}, err
	}

	depIDs := normalizeIDs(cmd.DependsOnTaskIDs)
	if err := validateDependencyTargets(depIDs, task.TaskID, snapshot); err != nil {
		return entities.Task{}, err
	}

	edited := make([]entities.Task, 0, len(snapshot))
	for _, item := range snapshot {
		if item.TaskID == task.TaskID {
			item.DependsOnTaskIDs = depIDs
		}
		edited = append(edited, item)
	}
	if cycles := taskgraph.FindCycles(edited); len(cycles) > 0 {
		logger.Warn("dependency edit rejected",
			"event", "task_dependency_cycle_rejected",
			"module", "project-pipeline/task-service",
			"layer", "application",
			"task_id", task.TaskID,
			"project_id", task.ProjectID,
			"cycle_count", len(cycles),
		)
		return entities.Task{}, domainerrors.ErrDependencyCycle
	}

	task.DependsOnTaskIDs = depIDs
	task.DependsOnStageCompletion = normalizeIDs(cmd.DependsOnStageCompletion)
	task.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Tasks.UpdateTask(ctx, task); err != nil {
		return entities.Task{}, err
	}

	logger.Info("task dependencies updated",
		"event", "task_dependencies_updated",
		"module", "project-pipeline/task-service",
		"layer", "application",
		"task_id", task.TaskID,
		"project_id", task.ProjectID,
		"dependency_count", len(depIDs),
	)
	return task, nil
}
