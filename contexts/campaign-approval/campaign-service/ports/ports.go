package ports

import (
	"context"
	"time"

	"pressroom/contexts/campaign-approval/campaign-service/domain/entities"
	"pressroom/internal/shared/events"
)

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign entities.Campaign) error

	GetCampaign(ctx context.Context, organizationID string, campaignID string) (entities.Campaign, error)

	// UpdateCampaign swaps the stored record only while its status still
	// matches expectedStatus. A mismatch means another caller transitioned
	// the campaign first and the write is refused without partial effects.
	UpdateCampaign(ctx context.Context, campaign entities.Campaign, expectedStatus entities.CampaignStatus) error
}

type StatusHistoryRepository interface {
	AppendStatusEntry(ctx context.Context, entry entities.StatusHistoryEntry) error
	ListStatusHistory(ctx context.Context, organizationID string, campaignID string) ([]entities.StatusHistoryEntry, error)
}

// ContentValidator is the external recipient/content validation collaborator
// consulted before a draft may enter review.
type ContentValidator interface {
	ValidateContent(ctx context.Context, campaign entities.Campaign) error
}

// ApprovalGate answers whether the campaign's approval workflow has completed
// with a positive outcome. The campaign machine never inspects workflow
// internals directly.
type ApprovalGate interface {
	ApprovalCompleted(ctx context.Context, organizationID string, campaignID string) (bool, error)
}

// OutboxWriter records a status-change event for asynchronous delivery.
// Append failures are logged by callers and never abort the transition.
type OutboxWriter interface {
	AppendEvent(ctx context.Context, envelope events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
