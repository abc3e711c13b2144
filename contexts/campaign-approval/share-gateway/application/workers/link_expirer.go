package workers

import (
	"context"
	"log/slog"

	application "pressroom/contexts/campaign-approval/share-gateway/application"
	"pressroom/contexts/campaign-approval/share-gateway/ports"
)

// LinkExpirer closes share links past their expiry so stale tokens stop
// resolving without waiting for a request to trip the check.
type LinkExpirer struct {
	Links     ports.ShareLinkRepository
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (w LinkExpirer) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)
	limit := w.BatchSize
	if limit <= 0 {
		limit = 100
	}

	revoked, err := w.Links.RevokeExpiredLinks(ctx, w.Clock.Now().UTC(), limit)
	if err != nil {
		logger.Error("share link expiry sweep failed",
			"event", "share_link_expiry_failed",
			"module", "campaign-approval/share-gateway",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	if revoked > 0 {
		logger.Info("expired share links revoked",
			"event", "share_link_expiry_completed",
			"module", "campaign-approval/share-gateway",
			"layer", "worker",
			"revoked_count", revoked,
		)
	}
	return nil
}
