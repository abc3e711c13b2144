package commands

import (
	"context"
	"log/slog"
	"strings"

	application "pressroom/contexts/project-pipeline/pipeline-service/application"
	"pressroom/contexts/project-pipeline/pipeline-service/domain/entities"
	domainerrors "pressroom/contexts/project-pipeline/pipeline-service/domain/errors"
	"pressroom/contexts/project-pipeline/pipeline-service/ports"
)

type CreateProjectCommand struct {
	OrganizationID string
	Name           string
	ActorID        string
}

type CreateProjectUseCase struct {
	Projects  ports.ProjectRepository
	History   ports.StageHistoryRepository
	Templates ports.TemplateReader
	Tasks     ports.TaskWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc CreateProjectUseCase) Execute(ctx context.Context, cmd CreateProjectCommand) (entities.Project, error) {
	logger := application.ResolveLogger(uc.Logger)
	project := entities.Project{
		OrganizationID: strings.TrimSpace(cmd.OrganizationID),
		Name:           strings.TrimSpace(cmd.Name),
		CurrentStage:   entities.StageIdeasPlanning,
	}
	if !project.ValidateBasics() {
		return entities.Project{}, domainerrors.ErrInvalidProjectInput
	}

	projectID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Project{}, err
	}
	now := uc.Clock.Now().UTC()
	project.ProjectID = projectID
	project.CreatedAt = now
	project.UpdatedAt = now
	if err := uc.Projects.CreateProject(ctx, project); err != nil {
		return entities.Project{}, err
	}

	entryID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Project{}, err
	}
	if err := uc.History.AppendStageEntry(ctx, entities.StageHistoryEntry{
		EntryID:        entryID,
		OrganizationID: project.OrganizationID,
		ProjectID:      project.ProjectID,
		Stage:          entities.StageIdeasPlanning,
		EnteredAt:      now,
		TriggeredBy:    entities.TriggerManual,
	}); err != nil {
		return entities.Project{}, err
	}

	if err := instantiateStageTasks(ctx, uc.Templates, uc.Tasks, project, entities.StageIdeasPlanning, now); err != nil {
		return entities.Project{}, err
	}

	logger.Info("project created",
		"event", "pipeline_project_created",
		"module", "project-pipeline/pipeline-service",
		"layer", "application",
		"project_id", project.ProjectID,
		"stage", string(project.CurrentStage),
	)
	return project, nil
}
