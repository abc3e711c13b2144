package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pressroom/contexts/campaign-approval/share-gateway/application/commands"
	"pressroom/contexts/campaign-approval/share-gateway/application/queries"
	"pressroom/contexts/campaign-approval/share-gateway/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/share-gateway/domain/errors"
	"pressroom/contexts/campaign-approval/share-gateway/ports"
	httptransport "pressroom/contexts/campaign-approval/share-gateway/transport/http"
)

type Handler struct {
	CreateLink commands.CreateLinkUseCase
	RevokeLink commands.RevokeLinkUseCase
	MarkViewed commands.MarkViewedUseCase
	Decide     commands.DecideUseCase
	Resolve    queries.ResolveUseCase
	Logger     *slog.Logger
}

func (h Handler) ResolveHandler(ctx context.Context, token string) (httptransport.ResolveResponse, error) {
	result, err := h.Resolve.Execute(ctx, token)
	if err != nil {
		return httptransport.ResolveResponse{}, err
	}
	return httptransport.ResolveResponse{
		Campaign: httptransport.CampaignSummaryDTO{
			Name:   result.Campaign.Name,
			Status: result.Campaign.Status,
		},
		Version: httptransport.VersionSummaryDTO{
			Number:      result.Version.Number,
			Status:      result.Version.Status,
			DownloadRef: result.Version.DownloadRef,
			PageCount:   result.Version.PageCount,
			WordCount:   result.Version.WordCount,
		},
		Stage:     result.Stage,
		Outcome:   result.Outcome,
		ViewState: result.ViewState,
	}, nil
}

func (h Handler) MarkViewedHandler(ctx context.Context, token string) (httptransport.MarkViewedResponse, error) {
	result, err := h.MarkViewed.Execute(ctx, commands.MarkViewedCommand{Token: token})
	if err != nil {
		return httptransport.MarkViewedResponse{}, err
	}
	return httptransport.MarkViewedResponse{ViewState: result.ViewState}, nil
}

func (h Handler) DecideHandler(ctx context.Context, token string, req httptransport.DecideRequest) (httptransport.DecideResponse, error) {
	inline := make([]ports.InlineComment, 0, len(req.InlineComments))
	for _, comment := range req.InlineComments {
		inline = append(inline, ports.InlineComment{
			Page:  comment.Page,
			Quote: comment.Quote,
			Note:  comment.Note,
		})
	}
	result, err := h.Decide.Execute(ctx, commands.DecideCommand{
		Token:          token,
		Outcome:        req.Outcome,
		Comment:        req.Comment,
		InlineComments: inline,
	})
	if err != nil {
		return httptransport.DecideResponse{}, err
	}
	return httptransport.DecideResponse{Status: result.Outcome}, nil
}

func (h Handler) CreateLinkHandler(
	ctx context.Context,
	organizationID string,
	req httptransport.CreateLinkRequest,
) (httptransport.CreateLinkResponse, error) {
	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return httptransport.CreateLinkResponse{}, domainerrors.ErrInvalidShareInput
		}
		utc := parsed.UTC()
		expiresAt = &utc
	}
	link, err := h.CreateLink.Execute(ctx, commands.CreateLinkCommand{
		OrganizationID: organizationID,
		CampaignID:     req.CampaignID,
		WorkflowID:     req.WorkflowID,
		ExpiresAt:      expiresAt,
	})
	if err != nil {
		return httptransport.CreateLinkResponse{}, err
	}
	return httptransport.CreateLinkResponse{Link: mapLink(link)}, nil
}

func (h Handler) RevokeLinkHandler(ctx context.Context, organizationID string, linkID string) error {
	return h.RevokeLink.Execute(ctx, commands.RevokeLinkCommand{
		OrganizationID: organizationID,
		LinkID:         linkID,
	})
}

func mapLink(item entities.ShareLink) httptransport.ShareLinkDTO {
	dto := httptransport.ShareLinkDTO{
		LinkID:     item.LinkID,
		CampaignID: item.CampaignID,
		WorkflowID: item.WorkflowID,
		Token:      item.Token,
		CreatedAt:  item.CreatedAt.Format(time.RFC3339),
	}
	if item.ExpiresAt != nil {
		dto.ExpiresAt = item.ExpiresAt.UTC().Format(time.RFC3339)
	}
	if item.RevokedAt != nil {
		dto.RevokedAt = item.RevokedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
