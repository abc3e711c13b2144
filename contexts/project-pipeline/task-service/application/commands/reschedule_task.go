package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "pressroom/contexts/project-pipeline/task-service/application"
	"pressroom/contexts/project-pipeline/task-service/domain/entities"
	"pressroom/contexts/project-pipeline/task-service/domain/taskgraph"
	"pressroom/contexts/project-pipeline/task-service/ports"
)

type RescheduleTaskCommand struct {
	OrganizationID string
	TaskID         string
	DueAt          time.Time
}

type RescheduleTaskResult struct {
	Task           entities.Task
	CascadedTaskID []string
}

// RescheduleTaskUseCase moves a task due date. When the date moves later,
// the delay cascades to dependents whose deadline rules opted in, shifted
// by the same delta.
type RescheduleTaskUseCase struct {
	Tasks  ports.TaskRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc RescheduleTaskUseCase) Execute(ctx context.Context, cmd RescheduleTaskCommand) (RescheduleTaskResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	task, err := uc.Tasks.GetTask(ctx, strings.TrimSpace(cmd.OrganizationID), strings.TrimSpace(cmd.TaskID))
	if err != nil {
		return RescheduleTaskResult{}, err
	}

	newDue := cmd.DueAt.UTC()
	var delta time.Duration
	if task.DueAt != nil {
		delta = newDue.Sub(task.DueAt.UTC())
	}

	now := uc.Clock.Now().UTC()
	task.DueAt = &newDue
	task.UpdatedAt = now
	if err := uc.Tasks.UpdateTask(ctx, task); err != nil {
		return RescheduleTaskResult{}, err
	}

	result := RescheduleTaskResult{Task: task}
	if delta > 0 {
		snapshot, err := uc.Tasks.ListTasksByProject(ctx, task.OrganizationID, task.ProjectID)
		if err != nil {
			return RescheduleTaskResult{}, err
		}
		for _, shift := range taskgraph.CascadeShift(snapshot, task.TaskID, delta) {
			dependent, err := uc.Tasks.GetTask(ctx, task.OrganizationID, shift.TaskID)
			if err != nil {
				return RescheduleTaskResult{}, err
			}
			due := shift.NewDueAt
			dependent.DueAt = &due
			dependent.UpdatedAt = now
			if err := uc.Tasks.UpdateTask(ctx, dependent); err != nil {
				return RescheduleTaskResult{}, err
			}
			result.CascadedTaskID = append(result.CascadedTaskID, shift.TaskID)
		}
	}

	logger.Info("task rescheduled",
		"event", "task_rescheduled",
		"module", "project-pipeline/task-service",
		"layer", "application",
		"task_id", task.TaskID,
		"project_id", task.ProjectID,
		"cascaded_count", len(result.CascadedTaskID),
	)
	return result, nil
}
