package queries

import (
	"context"
	"log/slog"
	"strings"

	"pressroom/contexts/project-pipeline/task-service/domain/entities"
	"pressroom/contexts/project-pipeline/task-service/ports"
)

type GetTaskUseCase struct {
	Tasks  ports.TaskRepository
	Logger *slog.Logger
}

func (uc GetTaskUseCase) Execute(ctx context.Context, organizationID string, taskID string) (entities.Task, error) {
	return uc.Tasks.GetTask(ctx, strings.TrimSpace(organizationID), strings.TrimSpace(taskID))
}

type ListProjectTasksUseCase struct {
	Tasks  ports.TaskRepository
	Logger *slog.Logger
}

func (uc ListProjectTasksUseCase) Execute(ctx context.Context, organizationID string, projectID string) ([]entities.Task, error) {
	return uc.Tasks.ListTasksByProject(ctx, strings.TrimSpace(organizationID), strings.TrimSpace(projectID))
}
