package commands

import (
	"context"
	"log/slog"

	application "pressroom/contexts/campaign-approval/share-gateway/application"
	"pressroom/contexts/campaign-approval/share-gateway/ports"
)

type MarkViewedCommand struct {
	Token string
}

type MarkViewedResult struct {
	ViewState string
}

// MarkViewedUseCase records that the customer opened the link. Repeats are
// no-ops and a state later than viewed is never regressed.
type MarkViewedUseCase struct {
	Links     ports.ShareLinkRepository
	Approvals ports.ApprovalGateway
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc MarkViewedUseCase) Execute(ctx context.Context, cmd MarkViewedCommand) (MarkViewedResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	link, err := resolveUsableLink(ctx, uc.Links, uc.Clock, cmd.Token)
	if err != nil {
		return MarkViewedResult{}, err
	}

	// The unauthenticated viewer is identified by the link that admitted them.
	view, err := uc.Approvals.MarkViewed(ctx, link.OrganizationID, link.WorkflowID, link.LinkID)
	if err != nil {
		return MarkViewedResult{}, err
	}

	logger.Info("share link viewed",
		"event", "share_link_viewed",
		"module", "campaign-approval/share-gateway",
		"layer", "application",
		"link_id", link.LinkID,
	)
	return MarkViewedResult{ViewState: view.ViewState}, nil
}
