package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "pressroom/contexts/project-pipeline/pipeline-service/application"
	"pressroom/contexts/project-pipeline/pipeline-service/domain/entities"
	domainerrors "pressroom/contexts/project-pipeline/pipeline-service/domain/errors"
	"pressroom/contexts/project-pipeline/pipeline-service/ports"
)

type RequestStageMoveCommand struct {
	OrganizationID string
	ProjectID      string
	TargetStage    entities.Stage
	TriggeredBy    entities.TriggerType
	ActorID        string
}

type StageMoveResult struct {
	Project          entities.Project
	AutoCompletedIDs []string
	AutoCreatedCount int
}

// RequestStageMoveUseCase advances (or explicitly reverts) a project stage.
// The task set is snapshotted once per call and every gate is evaluated
// against that single snapshot before any write is issued; a blocked move
// leaves the project in its prior stage with the transition marker cleared.
type RequestStageMoveUseCase struct {
	Projects  ports.ProjectRepository
	History   ports.StageHistoryRepository
	Tasks     ports.TaskReader
	Writer    ports.TaskWriter
	Templates ports.TemplateReader
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc RequestStageMoveUseCase) Execute(ctx context.Context, cmd RequestStageMoveCommand) (StageMoveResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	orgID := strings.TrimSpace(cmd.OrganizationID)
	project, err := uc.Projects.GetProject(ctx, orgID, strings.TrimSpace(cmd.ProjectID))
	if err != nil {
		return StageMoveResult{}, err
	}

	trigger := cmd.TriggeredBy
	if trigger == "" {
		trigger = entities.TriggerManual
	}
	if !entities.IsSupportedTrigger(trigger) {
		return StageMoveResult{}, domainerrors.ErrInvalidStageMove
	}

	currentIdx := entities.StageIndex(project.CurrentStage)
	targetIdx := entities.StageIndex(cmd.TargetStage)
	if targetIdx < 0 || targetIdx == currentIdx {
		return StageMoveResult{}, domainerrors.ErrInvalidStageMove
	}
	if targetIdx < currentIdx && trigger != entities.TriggerRevert {
		return StageMoveResult{}, domainerrors.ErrInvalidStageMove
	}
	if targetIdx > currentIdx && trigger == entities.TriggerRevert {
		return StageMoveResult{}, domainerrors.ErrInvalidStageMove
	}

	now := uc.Clock.Now().UTC()
	if err := uc.Projects.ClaimTransition(ctx, orgID, project.ProjectID, entities.StageTransition{
		TargetStage: cmd.TargetStage,
		TriggeredBy: trigger,
		StartedAt:   now,
	}); err != nil {
		return StageMoveResult{}, err
	}
	// The marker is cleared on every outcome; a blocked move must not leave
	// a dangling in-flight transition.
	defer func() {
		if clearErr := uc.Projects.ClearTransition(ctx, orgID, project.ProjectID); clearErr != nil {
			logger.Error("transition clear failed",
				"event", "pipeline_transition_clear_failed",
				"module", "project-pipeline/pipeline-service",
				"layer", "application",
				"project_id", project.ProjectID,
				"error", clearErr.Error(),
			)
		}
	}()

	snapshot, err := uc.Tasks.ListProjectTasks(ctx, orgID, project.ProjectID)
	if err != nil {
		return StageMoveResult{}, err
	}

	if trigger != entities.TriggerRevert {
		completed, err := uc.completedStages(ctx, orgID, project.ProjectID)
		if err != nil {
			return StageMoveResult{}, err
		}
		if blocked := gateStageMove(snapshot, project.CurrentStage, cmd.TargetStage, completed); blocked != nil {
			logger.Warn("stage move blocked",
				"event", "pipeline_stage_move_blocked",
				"module", "project-pipeline/pipeline-service",
				"layer", "application",
				"project_id", project.ProjectID,
				"from_stage", string(project.CurrentStage),
				"to_stage", string(cmd.TargetStage),
				"blocking_task_count", len(blocked.TaskIDs),
			)
			return StageMoveResult{}, blocked
		}
	}

	if err := uc.History.CompleteLatestStageEntry(ctx, orgID, project.ProjectID, now); err != nil {
		return StageMoveResult{}, err
	}
	entryID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return StageMoveResult{}, err
	}
	if err := uc.History.AppendStageEntry(ctx, entities.StageHistoryEntry{
		EntryID:        entryID,
		OrganizationID: orgID,
		ProjectID:      project.ProjectID,
		Stage:          cmd.TargetStage,
		EnteredAt:      now,
		TriggeredBy:    trigger,
	}); err != nil {
		return StageMoveResult{}, err
	}

	result := StageMoveResult{}
	departed := project.CurrentStage
	for _, task := range snapshot {
		if !task.AutoCompleteOnStageChange || !task.IsOpen() {
			continue
		}
		if task.StageContext != "" && task.StageContext != string(departed) {
			continue
		}
		if err := uc.Writer.CompleteTask(ctx, orgID, task.TaskID, now); err != nil {
			return StageMoveResult{}, err
		}
		result.AutoCompletedIDs = append(result.AutoCompletedIDs, task.TaskID)
	}

	project.CurrentStage = cmd.TargetStage
	project.UpdatedAt = now
	if err := uc.Projects.UpdateProject(ctx, project); err != nil {
		return StageMoveResult{}, err
	}

	created, err := uc.instantiateForStage(ctx, project, cmd.TargetStage, now)
	if err != nil {
		return StageMoveResult{}, err
	}
	result.Project = project
	result.AutoCreatedCount = created

	logger.Info("stage move applied",
		"event", "pipeline_stage_move_applied",
		"module", "project-pipeline/pipeline-service",
		"layer", "application",
		"project_id", project.ProjectID,
		"from_stage", string(departed),
		"to_stage", string(cmd.TargetStage),
		"trigger", string(trigger),
		"auto_completed", len(result.AutoCompletedIDs),
		"auto_created", created,
	)
	return result, nil
}

// completedStages returns the set of stages the project has fully passed
// through according to its history. A history read failure aborts the move
// rather than reporting every stage-dependency gate as unsatisfied.
func (uc RequestStageMoveUseCase) completedStages(ctx context.Context, organizationID string, projectID string) (map[entities.Stage]bool, error) {
	history, err := uc.History.ListStageHistory(ctx, organizationID, projectID)
	if err != nil {
		return nil, err
	}
	completed := make(map[entities.Stage]bool, len(history))
	for _, entry := range history {
		if entry.CompletedAt != nil {
			completed[entry.Stage] = true
		}
	}
	return completed, nil
}

func gateStageMove(
	snapshot []ports.TaskView,
	currentStage entities.Stage,
	targetStage entities.Stage,
	completedStages map[entities.Stage]bool,
) *domainerrors.BlockedError {
	var blocking []string

	for _, task := range snapshot {
		if task.RequiredForStageCompletion &&
			task.StageContext == string(currentStage) &&
			task.Status != "completed" {
			blocking = append(blocking, task.TaskID)
		}
	}
	for _, task := range snapshot {
		if task.BlocksStageTransition && task.IsOpen() {
			blocking = append(blocking, task.TaskID)
		}
	}
	for _, task := range snapshot {
		if task.StageContext != string(targetStage) {
			continue
		}
		for _, requiredStage := range task.DependsOnStageCompletion {
			if !completedStages[entities.Stage(requiredStage)] {
				blocking = append(blocking, task.TaskID)
				break
			}
		}
	}

	if len(blocking) == 0 {
		return nil
	}
	return domainerrors.NewBlockedError(dedupeIDs(blocking))
}

func (uc RequestStageMoveUseCase) instantiateForStage(
	ctx context.Context,
	project entities.Project,
	stage entities.Stage,
	enteredAt time.Time,
) (int, error) {
	return instantiateStageTasksCount(ctx, uc.Templates, uc.Writer, project, stage, enteredAt)
}

func instantiateStageTasks(
	ctx context.Context,
	templates ports.TemplateReader,
	writer ports.TaskWriter,
	project entities.Project,
	stage entities.Stage,
	enteredAt time.Time,
) error {
	_, err := instantiateStageTasksCount(ctx, templates, writer, project, stage, enteredAt)
	return err
}

func instantiateStageTasksCount(
	ctx context.Context,
	templates ports.TemplateReader,
	writer ports.TaskWriter,
	project entities.Project,
	stage entities.Stage,
	enteredAt time.Time,
) (int, error) {
	if templates == nil || writer == nil {
		return 0, nil
	}
	items, err := templates.ListStageTemplates(ctx, project.OrganizationID, project.ProjectID, stage)
	if err != nil {
		return 0, err
	}
	created := 0
	for _, tpl := range items {
		spec := ports.StageTaskSpec{
			OrganizationID:             project.OrganizationID,
			ProjectID:                  project.ProjectID,
			Title:                      tpl.Title,
			StageContext:               string(stage),
			RequiredForStageCompletion: tpl.RequiredForStageCompletion,
			BlocksStageTransition:      tpl.BlocksStageTransition,
			AutoCompleteOnStageChange:  tpl.AutoCompleteOnStageChange,
		}
		if tpl.DeadlineRules != nil {
			rules := *tpl.DeadlineRules
			spec.DeadlineRules = &rules
			if rules.DaysAfterStageEntry > 0 {
				due := enteredAt.Add(time.Duration(rules.DaysAfterStageEntry) * 24 * time.Hour)
				spec.DueAt = &due
			}
		}
		if err := writer.CreateStageTask(ctx, spec); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func dedupeIDs(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if seen[value] {
			continue
		}
		seen[value] = true
		result = append(result, value)
	}
	return result
}
