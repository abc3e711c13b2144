package commands

import (
	"context"
	"log/slog"
	"strings"

	application "pressroom/contexts/campaign-approval/share-gateway/application"
	"pressroom/contexts/campaign-approval/share-gateway/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/share-gateway/domain/errors"
	"pressroom/contexts/campaign-approval/share-gateway/ports"
)

const (
	OutcomeApproved         = "approved"
	OutcomeChangesRequested = "changes_requested"

	campaignStatusSent = "sent"
)

type DecideCommand struct {
	Token          string
	Outcome        string
	Comment        string
	InlineComments []ports.InlineComment
}

type DecideResult struct {
	Outcome   string
	Stage     string
	ViewState string
}

type DecideUseCase struct {
	Links     ports.ShareLinkRepository
	Campaigns ports.CampaignReader
	Approvals ports.ApprovalGateway
	Clock     ports.Clock
	Logger    *slog.Logger
}

// Execute validates the token and forwards the customer decision to the
// orchestrator. All guards run before anything is forwarded, so a refused
// decision mutates nothing.
func (uc DecideUseCase) Execute(ctx context.Context, cmd DecideCommand) (DecideResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	link, err := resolveUsableLink(ctx, uc.Links, uc.Clock, cmd.Token)
	if err != nil {
		return DecideResult{}, err
	}

	outcome := strings.TrimSpace(cmd.Outcome)
	if outcome != OutcomeApproved && outcome != OutcomeChangesRequested {
		return DecideResult{}, domainerrors.ErrInvalidShareInput
	}

	summary, err := uc.Campaigns.CampaignSummary(ctx, link.OrganizationID, link.CampaignID)
	if err != nil {
		return DecideResult{}, err
	}
	if summary.Status == campaignStatusSent {
		return DecideResult{}, domainerrors.ErrShareLinkGone
	}

	view, err := uc.Approvals.SubmitDecision(
		ctx,
		link.OrganizationID,
		link.WorkflowID,
		outcome,
		strings.TrimSpace(cmd.Comment),
		cmd.InlineComments,
	)
	if err != nil {
		return DecideResult{}, err
	}

	logger.Info("customer decision forwarded",
		"event", "share_decision_forwarded",
		"module", "campaign-approval/share-gateway",
		"layer", "application",
		"link_id", link.LinkID,
		"outcome", outcome,
	)
	return DecideResult{
		Outcome:   view.Outcome,
		Stage:     view.Stage,
		ViewState: view.ViewState,
	}, nil
}

// resolveUsableLink maps every unusable token to not-found or gone without
// distinguishing why.
func resolveUsableLink(
	ctx context.Context,
	links ports.ShareLinkRepository,
	clock ports.Clock,
	token string,
) (entities.ShareLink, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.ShareLink{}, domainerrors.ErrShareNotFound
	}
	link, err := links.GetLinkByToken(ctx, token)
	if err != nil {
		return entities.ShareLink{}, err
	}
	if !link.IsUsable(clock.Now()) {
		return entities.ShareLink{}, domainerrors.ErrShareLinkGone
	}
	return link, nil
}
