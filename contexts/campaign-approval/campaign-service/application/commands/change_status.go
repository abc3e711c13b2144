package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "pressroom/contexts/campaign-approval/campaign-service/application"
	"pressroom/contexts/campaign-approval/campaign-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/campaign-service/domain/errors"
	"pressroom/contexts/campaign-approval/campaign-service/ports"
	"pressroom/internal/shared/events"
)

type ChangeStatusCommand struct {
	OrganizationID string
	CampaignID     string
	TargetStatus   entities.CampaignStatus
	ActorID        string
}

type ChangeStatusUseCase struct {
	Campaigns ports.CampaignRepository
	History   ports.StatusHistoryRepository
	Validator ports.ContentValidator
	Approvals ports.ApprovalGate
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// Execute evaluates every guard before issuing any write. A guard failure
// leaves campaign, history and outbox untouched.
func (uc ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !entities.IsSupportedCampaignStatus(cmd.TargetStatus) {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.OrganizationID), strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Campaign{}, err
	}
	previous := campaign.Status
	if !entities.CanTransitionCampaign(previous, cmd.TargetStatus) {
		return entities.Campaign{}, domainerrors.ErrInvalidStatusTransition
	}

	if previous == entities.CampaignStatusDraft && cmd.TargetStatus == entities.CampaignStatusInReview {
		if err := uc.Validator.ValidateContent(ctx, campaign); err != nil {
			return entities.Campaign{}, errors.Join(domainerrors.ErrContentValidationFailed, err)
		}
	}
	if cmd.TargetStatus == entities.CampaignStatusApproved {
		completed, err := uc.Approvals.ApprovalCompleted(ctx, campaign.OrganizationID, campaign.CampaignID)
		if err != nil {
			return entities.Campaign{}, err
		}
		if !completed {
			return entities.Campaign{}, domainerrors.ErrApprovalPending
		}
	}

	now := uc.Clock.Now().UTC()
	campaign.Status = cmd.TargetStatus
	campaign.UpdatedAt = now
	if cmd.TargetStatus.IsEditable() || cmd.TargetStatus == entities.CampaignStatusArchived {
		campaign.ActiveWorkflowID = ""
	}
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign, previous); err != nil {
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
		FromStatus:     previous,
		ToStatus:       campaign.Status,
		ActorID:        strings.TrimSpace(cmd.ActorID),
		OccurredAt:     now,
	}); err != nil {
		return entities.Campaign{}, err
	}

	uc.appendOutboxEvent(ctx, logger, campaign, previous)

	logger.Info("campaign status changed",
		"event", "campaign_status_changed",
		"module", "campaign-approval/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"from_status", string(previous),
		"to_status", string(campaign.Status),
	)
	return campaign, nil
}

// appendOutboxEvent is fire-and-forget. Notification delivery must never
// abort a transition that already committed.
func (uc ChangeStatusUseCase) appendOutboxEvent(
	ctx context.Context,
	logger *slog.Logger,
	campaign entities.Campaign,
	previous entities.CampaignStatus,
) {
	if uc.Outbox == nil {
		return
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		eventID = campaign.CampaignID
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      "campaign.status_changed",
		SourceService:  "campaign-service",
		OccurredAtUTC:  campaign.UpdatedAt,
		CorrelationID:  campaign.CampaignID,
		OrganizationID: campaign.OrganizationID,
		EntityType:     "campaign",
		EntityID:       campaign.CampaignID,
		PayloadVersion: 1,
		Payload: map[string]string{
			"from_status": string(previous),
			"to_status":   string(campaign.Status),
		},
	}
	if err := uc.Outbox.AppendEvent(ctx, envelope); err != nil {
		logger.Warn("campaign status event dropped",
			"event", "campaign_outbox_append_failed",
			"module", "campaign-approval/campaign-service",
			"layer", "application",
			"campaign_id", campaign.CampaignID,
			"error", err.Error(),
		)
	}
}
