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

type CompleteTaskCommand struct {
	OrganizationID string
	TaskID         string
}

type CompleteTaskUseCase struct {
	Tasks  ports.TaskRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc CompleteTaskUseCase) Execute(ctx context.Context, cmd CompleteTaskCommand) (entities.Task, error) {
	logger := application.ResolveLogger(uc.Logger)
	task, err := uc.Tasks.GetTask(ctx, strings.TrimSpace(cmd.OrganizationID), strings.TrimSpace(cmd.TaskID))
	if err != nil {
		return entities.Task{}, err
	}
	if !task.IsOpen() {
		return entities.Task{}, domainerrors.ErrInvalidStatusTransition
	}

	snapshot, err := uc.Tasks.ListTasksByProject(ctx, task.OrganizationID, task.ProjectID)
	if err != nil {
		return entities.Task{}, err
	}
	byID := make(map[string]entities.Task, len(snapshot))
	for _, item := range snapshot {
		byID[item.TaskID] = item
	}
	if !taskgraph.CanComplete(task, byID) {
		return entities.Task{}, domainerrors.ErrDependenciesIncomplete
	}

	now := uc.Clock.Now().UTC()
	task.Status = entities.TaskStatusCompleted
	task.CompletedAt = &now
	task.UpdatedAt = now
	if err := uc.Tasks.UpdateTask(ctx, task); err != nil {
		return entities.Task{}, err
	}

	logger.Info("task completed",
		"event", "task_completed",
		"module", "project-pipeline/task-service",
		"layer", "application",
		"task_id", task.TaskID,
		"project_id", task.ProjectID,
	)
	return task, nil
}
