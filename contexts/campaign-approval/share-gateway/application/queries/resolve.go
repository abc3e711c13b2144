package queries

import (
	"context"
	"log/slog"
	"strings"

	"pressroom/contexts/campaign-approval/share-gateway/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/share-gateway/domain/errors"
	"pressroom/contexts/campaign-approval/share-gateway/ports"
)

type ResolveResult struct {
	Campaign  ports.CampaignSummary
	Version   ports.VersionSummary
	Stage     string
	Outcome   string
	ViewState string
}

// ResolveUseCase answers what the external party is allowed to see for a
// token. The result carries no internal identifiers.
type ResolveUseCase struct {
	Links     ports.ShareLinkRepository
	Campaigns ports.CampaignReader
	Versions  ports.VersionReader
	Approvals ports.ApprovalGateway
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc ResolveUseCase) Execute(ctx context.Context, token string) (ResolveResult, error) {
	link, err := uc.usableLink(ctx, token)
	if err != nil {
		return ResolveResult{}, err
	}

	summary, err := uc.Campaigns.CampaignSummary(ctx, link.OrganizationID, link.CampaignID)
	if err != nil {
		return ResolveResult{}, err
	}
	version, err := uc.Versions.CurrentVersion(ctx, link.OrganizationID, link.CampaignID)
	if err != nil {
		return ResolveResult{}, err
	}
	view, err := uc.Approvals.WorkflowState(ctx, link.OrganizationID, link.WorkflowID)
	if err != nil {
		return ResolveResult{}, err
	}

	return ResolveResult{
		Campaign:  summary,
		Version:   version,
		Stage:     view.Stage,
		Outcome:   view.Outcome,
		ViewState: view.ViewState,
	}, nil
}

func (uc ResolveUseCase) usableLink(ctx context.Context, token string) (entities.ShareLink, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.ShareLink{}, domainerrors.ErrShareNotFound
	}
	link, err := uc.Links.GetLinkByToken(ctx, token)
	if err != nil {
		return entities.ShareLink{}, err
	}
	if !link.IsUsable(uc.Clock.Now()) {
		return entities.ShareLink{}, domainerrors.ErrShareLinkGone
	}
	return link, nil
}
