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

type AttachWorkflowCommand struct {
	OrganizationID string
	CampaignID     string
	WorkflowID     string
}

// AttachWorkflowUseCase records the active approval workflow on a campaign in
// review. A campaign carries at most one active workflow at a time.
type AttachWorkflowUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc AttachWorkflowUseCase) Execute(ctx context.Context, cmd AttachWorkflowCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	workflowID := strings.TrimSpace(cmd.WorkflowID)
	if workflowID == "" {
		return domainerrors.ErrInvalidCampaignInput
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.OrganizationID), strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return err
	}
	if campaign.Status != entities.CampaignStatusInReview {
		return domainerrors.ErrInvalidStatusTransition
	}
	if campaign.ActiveWorkflowID != "" && campaign.ActiveWorkflowID != workflowID {
		return domainerrors.ErrWorkflowAttachConflict
	}

	campaign.ActiveWorkflowID = workflowID
	campaign.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign, entities.CampaignStatusInReview); err != nil {
		return err
	}

	logger.Info("workflow attached to campaign",
		"event", "campaign_workflow_attached",
		"module", "campaign-approval/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"workflow_id", workflowID,
	)
	return nil
}
