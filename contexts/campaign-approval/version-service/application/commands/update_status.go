package commands

import (
	"context"
	"log/slog"
	"strings"

	application "pressroom/contexts/campaign-approval/version-service/application"
	"pressroom/contexts/campaign-approval/version-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/version-service/domain/errors"
	"pressroom/contexts/campaign-approval/version-service/ports"
)

type UpdateStatusCommand struct {
	OrganizationID string
	VersionID      string
	NewStatus      entities.VersionStatus
}

type UpdateStatusUseCase struct {
	Versions ports.VersionRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (uc UpdateStatusUseCase) Execute(ctx context.Context, cmd UpdateStatusCommand) (entities.Version, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !entities.IsSupportedVersionStatus(cmd.NewStatus) {
		return entities.Version{}, domainerrors.ErrInvalidVersionInput
	}

	version, err := uc.Versions.GetVersion(ctx, strings.TrimSpace(cmd.OrganizationID), strings.TrimSpace(cmd.VersionID))
	if err != nil {
		return entities.Version{}, err
	}
	if !entities.CanTransition(version.Status, cmd.NewStatus) {
		return entities.Version{}, domainerrors.ErrInvalidVersionTransition
	}

	updated, err := uc.Versions.TransitionStatus(ctx, version.OrganizationID, version.VersionID, version.Status, cmd.NewStatus)
	if err != nil {
		return entities.Version{}, err
	}

	logger.Info("version status changed",
		"event", "version_status_changed",
		"module", "campaign-approval/version-service",
		"layer", "application",
		"campaign_id", updated.CampaignID,
		"version_id", updated.VersionID,
		"from_status", string(version.Status),
		"to_status", string(updated.Status),
	)
	return updated, nil
}
