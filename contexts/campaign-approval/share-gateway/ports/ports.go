package ports

import (
	"context"
	"time"

	"pressroom/contexts/campaign-approval/share-gateway/domain/entities"
)

type ShareLinkRepository interface {
	CreateLink(ctx context.Context, link entities.ShareLink) error

	// GetLinkByToken looks a link up by its public token. Token lookup is
	// the one unscoped read in the system; the stored link carries the
	// organization scope for every call it authorizes.
	GetLinkByToken(ctx context.Context, token string) (entities.ShareLink, error)

	GetLink(ctx context.Context, organizationID string, linkID string) (entities.ShareLink, error)

	RevokeLink(ctx context.Context, organizationID string, linkID string, revokedAt time.Time) error

	// RevokeExpiredLinks stamps every link past its expiry and returns how
	// many were closed.
	RevokeExpiredLinks(ctx context.Context, now time.Time, limit int) (int, error)
}

// CampaignSummary is the coarse campaign view shown to the external party.
type CampaignSummary struct {
	Name   string
	Status string
}

type CampaignReader interface {
	CampaignSummary(ctx context.Context, organizationID string, campaignID string) (CampaignSummary, error)
}

// VersionSummary describes the artifact version the customer reviews.
type VersionSummary struct {
	Number      int
	Status      string
	DownloadRef string
	PageCount   int
	WordCount   int
	CreatedAt   time.Time
}

type VersionReader interface {
	CurrentVersion(ctx context.Context, organizationID string, campaignID string) (VersionSummary, error)
}

type InlineComment struct {
	Page  int
	Quote string
	Note  string
}

// WorkflowView is the coarse workflow state exposed through the gateway.
type WorkflowView struct {
	Stage     string
	Outcome   string
	ViewState string
}

// ApprovalGateway forwards validated customer actions to the approval
// orchestrator. Implementations translate orchestrator errors into this
// context's domain errors so internal detail never crosses the boundary.
type ApprovalGateway interface {
	WorkflowState(ctx context.Context, organizationID string, workflowID string) (WorkflowView, error)
	MarkViewed(ctx context.Context, organizationID string, workflowID string, actorID string) (WorkflowView, error)
	SubmitDecision(
		ctx context.Context,
		organizationID string,
		workflowID string,
		outcome string,
		comment string,
		inlineComments []InlineComment,
	) (WorkflowView, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
