package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pressroom/contexts/campaign-approval/version-service/application/commands"
	"pressroom/contexts/campaign-approval/version-service/application/queries"
	"pressroom/contexts/campaign-approval/version-service/domain/entities"
	httptransport "pressroom/contexts/campaign-approval/version-service/transport/http"
)

type Handler struct {
	CreateVersion     commands.CreateVersionUseCase
	UpdateStatus      commands.UpdateStatusUseCase
	GetCurrentVersion queries.GetCurrentVersionUseCase
	ListVersions      queries.ListVersionsUseCase
	Logger            *slog.Logger
}

func (h Handler) CreateVersionHandler(
	ctx context.Context,
	organizationID string,
	campaignID string,
	req httptransport.CreateVersionRequest,
) (httptransport.CreateVersionResponse, error) {
	version, err := h.CreateVersion.Execute(ctx, commands.CreateVersionCommand{
		OrganizationID: organizationID,
		CampaignID:     campaignID,
		Status:         entities.VersionStatus(req.Status),
	})
	if err != nil {
		return httptransport.CreateVersionResponse{}, err
	}
	return httptransport.CreateVersionResponse{Version: mapVersion(version)}, nil
}

func (h Handler) UpdateStatusHandler(
	ctx context.Context,
	organizationID string,
	versionID string,
	req httptransport.UpdateStatusRequest,
) (httptransport.UpdateStatusResponse, error) {
	version, err := h.UpdateStatus.Execute(ctx, commands.UpdateStatusCommand{
		OrganizationID: organizationID,
		VersionID:      versionID,
		NewStatus:      entities.VersionStatus(req.Status),
	})
	if err != nil {
		return httptransport.UpdateStatusResponse{}, err
	}
	return httptransport.UpdateStatusResponse{Version: mapVersion(version)}, nil
}

func (h Handler) GetCurrentVersionHandler(
	ctx context.Context,
	organizationID string,
	campaignID string,
) (httptransport.GetCurrentVersionResponse, error) {
	version, err := h.GetCurrentVersion.Execute(ctx, organizationID, campaignID)
	if err != nil {
		return httptransport.GetCurrentVersionResponse{}, err
	}
	return httptransport.GetCurrentVersionResponse{Version: mapVersion(version)}, nil
}

func (h Handler) ListVersionsHandler(
	ctx context.Context,
	organizationID string,
	campaignID string,
) (httptransport.ListVersionsResponse, error) {
	items, err := h.ListVersions.Execute(ctx, organizationID, campaignID)
	if err != nil {
		return httptransport.ListVersionsResponse{}, err
	}
	result := make([]httptransport.VersionDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapVersion(item))
	}
	return httptransport.ListVersionsResponse{Items: result}, nil
}

func mapVersion(item entities.Version) httptransport.VersionDTO {
	return httptransport.VersionDTO{
		VersionID:   item.VersionID,
		CampaignID:  item.CampaignID,
		Number:      item.Number,
		Status:      string(item.Status),
		DownloadRef: item.DownloadRef,
		PageCount:   item.PageCount,
		WordCount:   item.WordCount,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
}
