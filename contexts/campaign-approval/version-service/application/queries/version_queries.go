package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"pressroom/contexts/campaign-approval/version-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/version-service/domain/errors"
	"pressroom/contexts/campaign-approval/version-service/ports"
)

type ListVersionsUseCase struct {
	Versions ports.VersionRepository
	Logger   *slog.Logger
}

func (uc ListVersionsUseCase) Execute(ctx context.Context, organizationID string, campaignID string) ([]entities.Version, error) {
	items, err := uc.Versions.ListVersionsByCampaign(ctx, strings.TrimSpace(organizationID), strings.TrimSpace(campaignID))
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Number > items[j].Number
	})
	return items, nil
}

// GetCurrentVersionUseCase resolves the version the customer-facing surface
// exposes: the highest-numbered version that entered review (pending,
// approved or rejected), falling back to the highest draft.
type GetCurrentVersionUseCase struct {
	Versions ports.VersionRepository
	Logger   *slog.Logger
}

func (uc GetCurrentVersionUseCase) Execute(ctx context.Context, organizationID string, campaignID string) (entities.Version, error) {
	items, err := uc.Versions.ListVersionsByCampaign(ctx, strings.TrimSpace(organizationID), strings.TrimSpace(campaignID))
	if err != nil {
		return entities.Version{}, err
	}
	if len(items) == 0 {
		return entities.Version{}, domainerrors.ErrNoVersions
	}

	var current *entities.Version
	var draft *entities.Version
	for i := range items {
		item := items[i]
		if item.Status == entities.VersionStatusDraft {
			if draft == nil || item.Number > draft.Number {
				draft = &items[i]
			}
			continue
		}
		if current == nil || item.Number > current.Number {
			current = &items[i]
		}
	}
	if current != nil {
		return *current, nil
	}
	return *draft, nil
}
