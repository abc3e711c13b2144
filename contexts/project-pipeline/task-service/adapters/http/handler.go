package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pressroom/contexts/project-pipeline/task-service/application/commands"
	"pressroom/contexts/project-pipeline/task-service/application/queries"
	"pressroom/contexts/project-pipeline/task-service/domain/entities"
	domainerrors "pressroom/contexts/project-pipeline/task-service/domain/errors"
	httptransport "pressroom/contexts/project-pipeline/task-service/transport/http"
)

type Handler struct {
	CreateTask       commands.CreateTaskUseCase
	EditDependencies commands.EditDependenciesUseCase
	CompleteTask     commands.CompleteTaskUseCase
	RescheduleTask   commands.RescheduleTaskUseCase
	GetTask          queries.GetTaskUseCase
	ListTasks        queries.ListProjectTasksUseCase
	Logger           *slog.Logger
}

func (h Handler) CreateTaskHandler(
	ctx context.Context,
	organizationID string,
	projectID string,
	req httptransport.CreateTaskRequest,
) (httptransport.CreateTaskResponse, error) {
	task, err := h.CreateTask.Execute(ctx, commands.CreateTaskCommand{
		OrganizationID:             organizationID,
		ProjectID:                  projectID,
		Title:                      req.Title,
		DependsOnTaskIDs:           append([]string(nil), req.DependsOnTaskIDs...),
		DependsOnStageCompletion:   append([]string(nil), req.DependsOnStageCompletion...),
		RequiredForStageCompletion: req.RequiredForStageCompletion,
		BlocksStageTransition:      req.BlocksStageTransition,
		StageContext:               req.StageContext,
		DeadlineRules:              mapDeadlineRulesFromDTO(req.DeadlineRules),
		AutoCompleteOnStageChange:  req.AutoCompleteOnStageChange,
	})
	if err != nil {
		return httptransport.CreateTaskResponse{}, err
	}
	return httptransport.CreateTaskResponse{Task: mapTask(task)}, nil
}

func (h Handler) EditDependenciesHandler(
	ctx context.Context,
	organizationID string,
	taskID string,
	req httptransport.EditDependenciesRequest,
) (httptransport.EditDependenciesResponse, error) {
	task, err := h.EditDependencies.Execute(ctx, commands.EditDependenciesCommand{
		OrganizationID:           organizationID,
		TaskID:                   taskID,
		DependsOnTaskIDs:         append([]string(nil), req.DependsOnTaskIDs...),
		DependsOnStageCompletion: append([]string(nil), req.DependsOnStageCompletion...),
	})
	if err != nil {
		return httptransport.EditDependenciesResponse{}, err
	}
	return httptransport.EditDependenciesResponse{Task: mapTask(task)}, nil
}

func (h Handler) CompleteTaskHandler(
	ctx context.Context,
	organizationID string,
	taskID string,
) (httptransport.CompleteTaskResponse, error) {
	task, err := h.CompleteTask.Execute(ctx, commands.CompleteTaskCommand{
		OrganizationID: organizationID,
		TaskID:         taskID,
	})
	if err != nil {
		return httptransport.CompleteTaskResponse{}, err
	}
	return httptransport.CompleteTaskResponse{Task: mapTask(task)}, nil
}

func (h Handler) RescheduleTaskHandler(
	ctx context.Context,
	organizationID string,
	taskID string,
	req httptransport.RescheduleTaskRequest,
) (httptransport.RescheduleTaskResponse, error) {
	dueAt, err := parseDueAt(req.DueAt)
	if err != nil {
		return httptransport.RescheduleTaskResponse{}, domainerrors.ErrInvalidTaskInput
	}
	result, err := h.RescheduleTask.Execute(ctx, commands.RescheduleTaskCommand{
		OrganizationID: organizationID,
		TaskID:         taskID,
		DueAt:          dueAt,
	})
	if err != nil {
		return httptransport.RescheduleTaskResponse{}, err
	}
	return httptransport.RescheduleTaskResponse{
		Task:            mapTask(result.Task),
		CascadedTaskIDs: append([]string(nil), result.CascadedTaskID...),
	}, nil
}

func (h Handler) ListTasksHandler(
	ctx context.Context,
	organizationID string,
	projectID string,
) (httptransport.ListTasksResponse, error) {
	items, err := h.ListTasks.Execute(ctx, organizationID, projectID)
	if err != nil {
		return httptransport.ListTasksResponse{}, err
	}
	result := make([]httptransport.TaskDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapTask(item))
	}
	return httptransport.ListTasksResponse{Items: result}, nil
}

func mapTask(item entities.Task) httptransport.TaskDTO {
	result := httptransport.TaskDTO{
		TaskID:                     item.TaskID,
		ProjectID:                  item.ProjectID,
		Title:                      item.Title,
		Status:                     string(item.Status),
		DependsOnTaskIDs:           append([]string(nil), item.DependsOnTaskIDs...),
		DependsOnStageCompletion:   append([]string(nil), item.DependsOnStageCompletion...),
		RequiredForStageCompletion: item.RequiredForStageCompletion,
		BlocksStageTransition:      item.BlocksStageTransition,
		StageContext:               item.StageContext,
		AutoCreated:                item.AutoCreated,
		AutoCompleteOnStageChange:  item.AutoCompleteOnStageChange,
		CreatedAt:                  item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                  item.UpdatedAt.Format(time.RFC3339),
	}
	if item.DeadlineRules != nil {
		result.DeadlineRules = &httptransport.DeadlineRulesDTO{
			DaysAfterStageEntry: item.DeadlineRules.DaysAfterStageEntry,
			CascadeDelay:        item.DeadlineRules.CascadeDelay,
		}
	}
	if item.DueAt != nil {
		result.DueAt = item.DueAt.UTC().Format(time.RFC3339)
	}
	if item.CompletedAt != nil {
		result.CompletedAt = item.CompletedAt.UTC().Format(time.RFC3339)
	}
	return result
}

func mapDeadlineRulesFromDTO(dto *httptransport.DeadlineRulesDTO) *entities.DeadlineRules {
	if dto == nil {
		return nil
	}
	return &entities.DeadlineRules{
		DaysAfterStageEntry: dto.DaysAfterStageEntry,
		CascadeDelay:        dto.CascadeDelay,
	}
}

func parseDueAt(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("due_at is required")
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse due_at: %w", err)
	}
	return parsed.UTC(), nil
}
