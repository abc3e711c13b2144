package queries

import (
	"context"
	"log/slog"
	"strings"

	"pressroom/contexts/project-pipeline/pipeline-service/domain/entities"
	"pressroom/contexts/project-pipeline/pipeline-service/ports"
)

type GetProjectUseCase struct {
	Projects ports.ProjectRepository
	Logger   *slog.Logger
}

func (uc GetProjectUseCase) Execute(ctx context.Context, organizationID string, projectID string) (entities.Project, error) {
	return uc.Projects.GetProject(ctx, strings.TrimSpace(organizationID), strings.TrimSpace(projectID))
}

type ListStageHistoryUseCase struct {
	History ports.StageHistoryRepository
	Logger  *slog.Logger
}

func (uc ListStageHistoryUseCase) Execute(ctx context.Context, organizationID string, projectID string) ([]entities.StageHistoryEntry, error) {
	return uc.History.ListStageHistory(ctx, strings.TrimSpace(organizationID), strings.TrimSpace(projectID))
}
