package commands

import (
	"context"
	"log/slog"
	"strings"

	application "pressroom/contexts/campaign-approval/share-gateway/application"
	"pressroom/contexts/campaign-approval/share-gateway/ports"
)

type RevokeLinkCommand struct {
	OrganizationID string
	LinkID         string
}

type RevokeLinkUseCase struct {
	Links  ports.ShareLinkRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc RevokeLinkUseCase) Execute(ctx context.Context, cmd RevokeLinkCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	organizationID := strings.TrimSpace(cmd.OrganizationID)
	linkID := strings.TrimSpace(cmd.LinkID)
	if err := uc.Links.RevokeLink(ctx, organizationID, linkID, uc.Clock.Now().UTC()); err != nil {
		return err
	}

	logger.Info("share link revoked",
		"event", "share_link_revoked",
		"module", "campaign-approval/share-gateway",
		"layer", "application",
		"link_id", linkID,
	)
	return nil
}
