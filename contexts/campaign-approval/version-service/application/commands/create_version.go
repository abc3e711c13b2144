package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "pressroom/contexts/campaign-approval/version-service/application"
	"pressroom/contexts/campaign-approval/version-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/version-service/domain/errors"
	"pressroom/contexts/campaign-approval/version-service/ports"
)

type CreateVersionCommand struct {
	OrganizationID string
	CampaignID     string
	Status         entities.VersionStatus
}

// CreateVersionUseCase renders the campaign content and persists the next
// version. Rendering runs first and fails closed: no row exists for a
// version whose content could not be produced.
type CreateVersionUseCase struct {
	Versions ports.VersionRepository
	Renderer ports.Renderer
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc CreateVersionUseCase) Execute(ctx context.Context, cmd CreateVersionCommand) (entities.Version, error) {
	logger := application.ResolveLogger(uc.Logger)
	orgID := strings.TrimSpace(cmd.OrganizationID)
	campaignID := strings.TrimSpace(cmd.CampaignID)
	if orgID == "" || campaignID == "" {
		return entities.Version{}, domainerrors.ErrInvalidVersionInput
	}

	status := cmd.Status
	if status == "" {
		status = entities.VersionStatusDraft
	}
	if status != entities.VersionStatusDraft && status != entities.VersionStatusPendingCustomer {
		return entities.Version{}, domainerrors.ErrInvalidVersionInput
	}

	rendered, err := uc.Renderer.RenderVersion(ctx, orgID, campaignID)
	if err != nil {
		logger.Error("version rendering failed",
			"event", "version_render_failed",
			"module", "campaign-approval/version-service",
			"layer", "application",
			"campaign_id", campaignID,
			"error", err.Error(),
		)
		return entities.Version{}, errors.Join(domainerrors.ErrRenderFailed, err)
	}

	versionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Version{}, err
	}
	now := uc.Clock.Now().UTC()
	version, err := uc.Versions.CreateVersion(ctx, entities.Version{
		VersionID:      versionID,
		OrganizationID: orgID,
		CampaignID:     campaignID,
		Status:         status,
		DownloadRef:    rendered.DownloadRef,
		PageCount:      rendered.PageCount,
		WordCount:      rendered.WordCount,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return entities.Version{}, err
	}

	logger.Info("version created",
		"event", "version_created",
		"module", "campaign-approval/version-service",
		"layer", "application",
		"campaign_id", campaignID,
		"version_id", version.VersionID,
		"version_number", version.Number,
		"status", string(version.Status),
	)
	return version, nil
}
