package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pressroom/contexts/project-pipeline/pipeline-service/application/commands"
	"pressroom/contexts/project-pipeline/pipeline-service/application/queries"
	"pressroom/contexts/project-pipeline/pipeline-service/domain/entities"
	httptransport "pressroom/contexts/project-pipeline/pipeline-service/transport/http"
)

type Handler struct {
	CreateProject    commands.CreateProjectUseCase
	RequestStageMove commands.RequestStageMoveUseCase
	GetProject       queries.GetProjectUseCase
	ListStageHistory queries.ListStageHistoryUseCase
	Logger           *slog.Logger
}

func (h Handler) CreateProjectHandler(
	ctx context.Context,
	organizationID string,
	userID string,
	req httptransport.CreateProjectRequest,
) (httptransport.CreateProjectResponse, error) {
	project, err := h.CreateProject.Execute(ctx, commands.CreateProjectCommand{
		OrganizationID: organizationID,
		Name:           req.Name,
		ActorID:        userID,
	})
	if err != nil {
		return httptransport.CreateProjectResponse{}, err
	}
	return httptransport.CreateProjectResponse{Project: mapProject(project)}, nil
}

func (h Handler) GetProjectHandler(
	ctx context.Context,
	organizationID string,
	projectID string,
) (httptransport.GetProjectResponse, error) {
	project, err := h.GetProject.Execute(ctx, organizationID, projectID)
	if err != nil {
		return httptransport.GetProjectResponse{}, err
	}
	return httptransport.GetProjectResponse{Project: mapProject(project)}, nil
}

func (h Handler) StageMoveHandler(
	ctx context.Context,
	organizationID string,
	userID string,
	projectID string,
	req httptransport.StageMoveRequest,
) (httptransport.StageMoveResponse, error) {
	result, err := h.RequestStageMove.Execute(ctx, commands.RequestStageMoveCommand{
		OrganizationID: organizationID,
		ProjectID:      projectID,
		TargetStage:    entities.Stage(req.TargetStage),
		TriggeredBy:    entities.TriggerType(req.TriggeredBy),
		ActorID:        userID,
	})
	if err != nil {
		return httptransport.StageMoveResponse{}, err
	}
	return httptransport.StageMoveResponse{
		Project:          mapProject(result.Project),
		AutoCompletedIDs: append([]string(nil), result.AutoCompletedIDs...),
		AutoCreatedCount: result.AutoCreatedCount,
	}, nil
}

func (h Handler) StageHistoryHandler(
	ctx context.Context,
	organizationID string,
	projectID string,
) (httptransport.StageHistoryResponse, error) {
	items, err := h.ListStageHistory.Execute(ctx, organizationID, projectID)
	if err != nil {
		return httptransport.StageHistoryResponse{}, err
	}
	result := make([]httptransport.StageHistoryEntryDTO, 0, len(items))
	for _, entry := range items {
		dto := httptransport.StageHistoryEntryDTO{
			Stage:       string(entry.Stage),
			EnteredAt:   entry.EnteredAt.Format(time.RFC3339),
			TriggeredBy: string(entry.TriggeredBy),
		}
		if entry.CompletedAt != nil {
			dto.CompletedAt = entry.CompletedAt.UTC().Format(time.RFC3339)
		}
		result = append(result, dto)
	}
	return httptransport.StageHistoryResponse{Items: result}, nil
}

func mapProject(item entities.Project) httptransport.ProjectDTO {
	return httptransport.ProjectDTO{
		ProjectID:    item.ProjectID,
		Name:         item.Name,
		CurrentStage: string(item.CurrentStage),
		CreatedAt:    item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    item.UpdatedAt.Format(time.RFC3339),
	}
}
