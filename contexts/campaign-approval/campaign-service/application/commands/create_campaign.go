package commands

import (
	"context"
	"log/slog"
	"strings"

	application "pressroom/contexts/campaign-approval/campaign-service/application"
	"pressroom/contexts/campaign-approval/campaign-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/campaign-service/domain/errors"
	"pressroom/contexts/campaign-approval/campaign-service/ports"
)

type CreateCampaignCommand struct {
	OrganizationID string
	Name           string
	ActorID        string
}

type CreateCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	History   ports.StatusHistoryRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	campaign := entities.Campaign{
		OrganizationID: strings.TrimSpace(cmd.OrganizationID),
		Name:           strings.TrimSpace(cmd.Name),
		Status:         entities.CampaignStatusDraft,
	}
	if !campaign.ValidateBasics() {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}

	campaignID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	now := uc.Clock.Now().UTC()
	campaign.CampaignID = campaignID
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	if err := uc.Campaigns.CreateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	entryID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	if err := uc.History.AppendStatusEntry(ctx, entities.StatusHistoryEntry{
		EntryID:        entryID,
		OrganizationID: campaign.OrganizationID,
		CampaignID:     campaign.CampaignID,
		ToStatus:       entities.CampaignStatusDraft,
		ActorID:        strings.TrimSpace(cmd.ActorID),
		OccurredAt:     now,
	}); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "campaign-approval/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
	)
	return campaign, nil
}
