package queries

import (
	"context"
	"log/slog"
	"strings"

	"pressroom/contexts/campaign-approval/campaign-service/domain/entities"
	"pressroom/contexts/campaign-approval/campaign-service/ports"
)

type GetCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc GetCampaignUseCase) Execute(ctx context.Context, organizationID string, campaignID string) (entities.Campaign, error) {
	return uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(organizationID), strings.TrimSpace(campaignID))
}

type ListStatusHistoryUseCase struct {
	History ports.StatusHistoryRepository
	Logger  *slog.Logger
}

func (uc ListStatusHistoryUseCase) Execute(ctx context.Context, organizationID string, campaignID string) ([]entities.StatusHistoryEntry, error) {
	return uc.History.ListStatusHistory(ctx, strings.TrimSpace(organizationID), strings.TrimSpace(campaignID))
}
