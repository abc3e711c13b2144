package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pressroom/contexts/campaign-approval/campaign-service/application/commands"
	"pressroom/contexts/campaign-approval/campaign-service/application/queries"
	"pressroom/contexts/campaign-approval/campaign-service/domain/entities"
	httptransport "pressroom/contexts/campaign-approval/campaign-service/transport/http"
)

type Handler struct {
	CreateCampaign    commands.CreateCampaignUseCase
	ChangeStatus      commands.ChangeStatusUseCase
	GetCampaign       queries.GetCampaignUseCase
	ListStatusHistory queries.ListStatusHistoryUseCase
	Logger            *slog.Logger
}

func (h Handler) CreateCampaignHandler(
	ctx context.Context,
	organizationID string,
	userID string,
	req httptransport.CreateCampaignRequest,
) (httptransport.CreateCampaignResponse, error) {
	campaign, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		OrganizationID: organizationID,
		Name:           req.Name,
		ActorID:        userID,
	})
	if err != nil {
		return httptransport.CreateCampaignResponse{}, err
	}
	return httptransport.CreateCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) ChangeStatusHandler(
	ctx context.Context,
	organizationID string,
	userID string,
	campaignID string,
	req httptransport.ChangeStatusRequest,
) (httptransport.ChangeStatusResponse, error) {
	campaign, err := h.ChangeStatus.Execute(ctx, commands.ChangeStatusCommand{
		OrganizationID: organizationID,
		CampaignID:     campaignID,
		TargetStatus:   entities.CampaignStatus(req.Status),
		ActorID:        userID,
	})
	if err != nil {
		return httptransport.ChangeStatusResponse{}, err
	}
	return httptransport.ChangeStatusResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) GetCampaignHandler(
	ctx context.Context,
	organizationID string,
	campaignID string,
) (httptransport.GetCampaignResponse, error) {
	campaign, err := h.GetCampaign.Execute(ctx, organizationID, campaignID)
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	return httptransport.GetCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) StatusHistoryHandler(
	ctx context.Context,
	organizationID string,
	campaignID string,
) (httptransport.StatusHistoryResponse, error) {
	items, err := h.ListStatusHistory.Execute(ctx, organizationID, campaignID)
	if err != nil {
		return httptransport.StatusHistoryResponse{}, err
	}
	result := make([]httptransport.StatusHistoryEntryDTO, 0, len(items))
	for _, entry := range items {
		result = append(result, httptransport.StatusHistoryEntryDTO{
			FromStatus: string(entry.FromStatus),
			ToStatus:   string(entry.ToStatus),
			ActorID:    entry.ActorID,
			OccurredAt: entry.OccurredAt.Format(time.RFC3339),
		})
	}
	return httptransport.StatusHistoryResponse{Items: result}, nil
}

func mapCampaign(item entities.Campaign) httptransport.CampaignDTO {
	return httptransport.CampaignDTO{
		CampaignID:       item.CampaignID,
		Name:             item.Name,
		Status:           string(item.Status),
		ActiveWorkflowID: item.ActiveWorkflowID,
		CreatedAt:        item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        item.UpdatedAt.Format(time.RFC3339),
	}
}
