package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"pressroom/contexts/campaign-approval/version-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/version-service/domain/errors"
	"pressroom/contexts/campaign-approval/version-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.Mutex

	versions map[string]entities.Version
}

func NewStore(seed []entities.Version) *Store {
	versions := make(map[string]entities.Version, len(seed))
	for _, item := range seed {
		versions[item.VersionID] = item
	}
	return &Store{versions: versions}
}

func (s *Store) CreateVersion(_ context.Context, version entities.Version) (entities.Version, error) {
	if strings.TrimSpace(version.OrganizationID) == "" {
		return entities.Version{}, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	maxNumber := 0
	for id, item := range s.versions {
		if item.OrganizationID != version.OrganizationID || item.CampaignID != version.CampaignID {
			continue
		}
		if item.Number > maxNumber {
			maxNumber = item.Number
		}
		if version.Status == entities.VersionStatusPendingCustomer &&
			item.Status == entities.VersionStatusPendingCustomer {
			item.Status = entities.VersionStatusRejected
			item.UpdatedAt = version.CreatedAt
			s.versions[id] = item
		}
	}
	version.Number = maxNumber + 1
	s.versions[version.VersionID] = version
	return version, nil
}

func (s *Store) GetVersion(_ context.Context, organizationID string, versionID string) (entities.Version, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Version{}, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.versions[strings.TrimSpace(versionID)]
	if !exists || item.OrganizationID != strings.TrimSpace(organizationID) {
		return entities.Version{}, domainerrors.ErrVersionNotFound
	}
	return item, nil
}

func (s *Store) TransitionStatus(
	_ context.Context,
	organizationID string,
	versionID string,
	from entities.VersionStatus,
	to entities.VersionStatus,
) (entities.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.versions[strings.TrimSpace(versionID)]
	if !exists || item.OrganizationID != strings.TrimSpace(organizationID) {
		return entities.Version{}, domainerrors.ErrVersionNotFound
	}
	if item.Status != from {
		return entities.Version{}, domainerrors.ErrInvalidVersionTransition
	}
	if to == entities.VersionStatusPendingCustomer {
		for _, other := range s.versions {
			if other.VersionID != item.VersionID &&
				other.OrganizationID == item.OrganizationID &&
				other.CampaignID == item.CampaignID &&
				other.Status == entities.VersionStatusPendingCustomer {
				return entities.Version{}, domainerrors.ErrPendingVersionExists
			}
		}
	}

	item.Status = to
	item.UpdatedAt = time.Now().UTC()
	s.versions[item.VersionID] = item
	return item, nil
}

func (s *Store) ListVersionsByCampaign(_ context.Context, organizationID string, campaignID string) ([]entities.Version, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entities.Version, 0)
	for _, item := range s.versions {
		if item.OrganizationID == strings.TrimSpace(organizationID) &&
			item.CampaignID == strings.TrimSpace(campaignID) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Number < items[j].Number
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// StaticRenderer stands in for the external PDF renderer in tests and
// partial wiring. It always succeeds with a deterministic-shaped reference.
type StaticRenderer struct {
	PageCount int
	WordCount int
}

func (r StaticRenderer) RenderVersion(_ context.Context, _ string, campaignID string) (ports.RenderResult, error) {
	pages := r.PageCount
	if pages <= 0 {
		pages = 1
	}
	words := r.WordCount
	if words <= 0 {
		words = 250
	}
	return ports.RenderResult{
		DownloadRef: fmt.Sprintf("renders/%s/%s.pdf", strings.TrimSpace(campaignID), uuid.NewString()),
		PageCount:   pages,
		WordCount:   words,
	}, nil
}

// FailingRenderer rejects every render request. Used to exercise the
// fail-closed path.
type FailingRenderer struct {
	Err error
}

func (r FailingRenderer) RenderVersion(_ context.Context, _ string, _ string) (ports.RenderResult, error) {
	if r.Err != nil {
		return ports.RenderResult{}, r.Err
	}
	return ports.RenderResult{}, fmt.Errorf("renderer unavailable")
}
