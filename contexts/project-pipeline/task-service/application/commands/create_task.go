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

type CreateTaskCommand struct {
	OrganizationID             string
	ProjectID                  string
	Title                      string
	DependsOnTaskIDs           []string
	DependsOnStageCompletion   []string
	RequiredForStageCompletion bool
	BlocksStageTransition      bool
	StageContext               string
	DeadlineRules              *entities.DeadlineRules
	AutoCompleteOnStageChange  bool
}

type CreateTaskUseCase struct {
	Tasks  ports.TaskRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc CreateTaskUseCase) Execute(ctx context.Context, cmd CreateTaskCommand) (entities.Task, error) {
	logger := application.ResolveLogger(uc.Logger)
	task := entities.Task{
		OrganizationID:             strings.TrimSpace(cmd.OrganizationID),
		ProjectID:                  strings.TrimSpace(cmd.ProjectID),
		Title:                      strings.TrimSpace(cmd.Title),
		Status:                     entities.TaskStatusPending,
		DependsOnTaskIDs:           normalizeIDs(cmd.DependsOnTaskIDs),
		DependsOnStageCompletion:   normalizeIDs(cmd.DependsOnStageCompletion),
		RequiredForStageCompletion: cmd.RequiredForStageCompletion,
		BlocksStageTransition:      cmd.BlocksStageTransition,
		StageContext:               strings.TrimSpace(cmd.StageContext),
		DeadlineRules:              cmd.DeadlineRules,
		AutoCompleteOnStageChange:  cmd.AutoCompleteOnStageChange,
	}
	if !task.ValidateBasics() {
		return entities.Task{}, domainerrors.ErrInvalidTaskInput
	}

	existing, err := uc.Tasks.ListTasksByProject(ctx, task.OrganizationID, task.ProjectID)
	if err != nil {
		return entities.Task{}, err
	}
	if err := validateDependencyTargets(task.DependsOnTaskIDs, "", existing); err != nil {
		return entities.Task{}, err
	}

	taskID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Task{}, err
	}
	now := uc.Clock.Now().UTC()
	task.TaskID = taskID
	task.CreatedAt = now
	task.UpdatedAt = now

	if cycles := taskgraph.FindCycles(append(existing, task)); len(cycles) > 0 {
		return entities.Task{}, domainerrors.ErrDependencyCycle
	}

	if err := uc.Tasks.CreateTask(ctx, task); err != nil {
		return entities.Task{}, err
	}

	logger.Info("task created",
		"event", "task_created",
		"module", "project-pipeline/task-service",
		"layer", "application",
		"task_id", task.TaskID,
		"project_id", task.ProjectID,
		"dependency_count", len(task.DependsOnTaskIDs),
	)
	return task, nil
}

func normalizeIDs(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		result = append(result, value)
	}
	return result
}

func validateDependencyTargets(depIDs []string, selfID string, projectTasks []entities.Task) error {
	known := make(map[string]bool, len(projectTasks))
	for _, task := range projectTasks {
		known[task.TaskID] = true
	}
	for _, depID := range depIDs {
		if depID == selfID {
			return domainerrors.ErrDependencyCycle
		}
		if !known[depID] {
			return domainerrors.ErrUnknownDependency
		}
	}
	return nil
}
