package ports

import (
	"context"
	"time"

	"pressroom/contexts/campaign-approval/version-service/domain/entities"
)

type VersionRepository interface {
	// CreateVersion persists the version with the next number for the
	// campaign. When the new version enters pending_customer, any version
	// still pending is marked rejected in the same atomic unit, so readers
	// never observe two pending versions.
	CreateVersion(ctx context.Context, version entities.Version) (entities.Version, error)

	GetVersion(ctx context.Context, organizationID string, versionID string) (entities.Version, error)

	// TransitionStatus applies a compare-and-set status move. It fails when
	// the stored status no longer matches from, or when the move would
	// produce a second pending_customer version for the campaign.
	TransitionStatus(ctx context.Context, organizationID string, versionID string, from entities.VersionStatus, to entities.VersionStatus) (entities.Version, error)

	ListVersionsByCampaign(ctx context.Context, organizationID string, campaignID string) ([]entities.Version, error)
}

// RenderResult is what the external PDF renderer hands back.
type RenderResult struct {
	DownloadRef string
	PageCount   int
	WordCount   int
}

// Renderer is the external rendering collaborator. Rendering happens before
// any version row is written; a failure prevents version creation entirely.
type Renderer interface {
	RenderVersion(ctx context.Context, organizationID string, campaignID string) (RenderResult, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
