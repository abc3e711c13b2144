package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "pressroom/contexts/campaign-approval/share-gateway/application"
	"pressroom/contexts/campaign-approval/share-gateway/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/share-gateway/domain/errors"
	"pressroom/contexts/campaign-approval/share-gateway/ports"
)

type CreateLinkCommand struct {
	OrganizationID string
	CampaignID     string
	WorkflowID     string
	ExpiresAt      *time.Time
}

type CreateLinkUseCase struct {
	Links  ports.ShareLinkRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc CreateLinkUseCase) Execute(ctx context.Context, cmd CreateLinkCommand) (entities.ShareLink, error) {
	logger := application.ResolveLogger(uc.Logger)
	link := entities.ShareLink{
		OrganizationID: strings.TrimSpace(cmd.OrganizationID),
		CampaignID:     strings.TrimSpace(cmd.CampaignID),
		WorkflowID:     strings.TrimSpace(cmd.WorkflowID),
		ExpiresAt:      cmd.ExpiresAt,
	}
	if !link.ValidateBasics() {
		return entities.ShareLink{}, domainerrors.ErrInvalidShareInput
	}

	linkID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.ShareLink{}, err
	}
	link.LinkID = linkID
	link.Token = entities.NewToken()
	link.CreatedAt = uc.Clock.Now().UTC()

	if err := uc.Links.CreateLink(ctx, link); err != nil {
		return entities.ShareLink{}, err
	}

	logger.Info("share link created",
		"event", "share_link_created",
		"module", "campaign-approval/share-gateway",
		"layer", "application",
		"link_id", link.LinkID,
		"campaign_id", link.CampaignID,
	)
	return link, nil
}
