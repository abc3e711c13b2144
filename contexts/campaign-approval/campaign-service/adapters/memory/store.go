package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pressroom/contexts/campaign-approval/campaign-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/campaign-service/domain/errors"
	"pressroom/internal/shared/events"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	campaigns map[string]entities.Campaign
	history   []entities.StatusHistoryEntry
	outbox    []events.Envelope
}

func NewStore(seed []entities.Campaign) *Store {
	campaigns := make(map[string]entities.Campaign, len(seed))
	for _, item := range seed {
		campaigns[item.CampaignID] = item
	}
	return &Store{campaigns: campaigns}
}

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	if strings.TrimSpace(campaign.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; exists {
		return domainerrors.ErrInvalidCampaignInput
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) GetCampaign(_ context.Context, organizationID string, campaignID string) (entities.Campaign, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Campaign{}, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists || item.OrganizationID != strings.TrimSpace(organizationID) {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return item, nil
}

func (s *Store) UpdateCampaign(_ context.Context, campaign entities.Campaign, expectedStatus entities.CampaignStatus) error {
	if strings.TrimSpace(campaign.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.campaigns[campaign.CampaignID]
	if !exists || existing.OrganizationID != campaign.OrganizationID {
		return domainerrors.ErrCampaignNotFound
	}
	if existing.Status != expectedStatus {
		return domainerrors.ErrInvalidStatusTransition
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) AppendStatusEntry(_ context.Context, entry entities.StatusHistoryEntry) error {
	if strings.TrimSpace(entry.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, entry)
	return nil
}

func (s *Store) ListStatusHistory(_ context.Context, organizationID string, campaignID string) ([]entities.StatusHistoryEntry, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.StatusHistoryEntry, 0)
	for _, item := range s.history {
		if item.OrganizationID == strings.TrimSpace(organizationID) &&
			item.CampaignID == strings.TrimSpace(campaignID) {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OccurredAt.Before(items[j].OccurredAt)
	})
	return items, nil
}

func (s *Store) AppendEvent(_ context.Context, envelope events.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outbox = append(s.outbox, envelope)
	return nil
}

// PendingEvents exposes appended outbox envelopes for relays and tests.
func (s *Store) PendingEvents() []events.Envelope {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]events.Envelope(nil), s.outbox...)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// StaticValidator stands in for the external recipient/content validator.
type StaticValidator struct{}

func (StaticValidator) ValidateContent(_ context.Context, campaign entities.Campaign) error {
	if strings.TrimSpace(campaign.Name) == "" {
		return domainerrors.ErrInvalidCampaignInput
	}
	return nil
}

// OpenApprovalGate reports every campaign as approval-complete. It is the
// default gate for in-memory wiring when no orchestrator is attached.
type OpenApprovalGate struct{}

func (OpenApprovalGate) ApprovalCompleted(_ context.Context, _ string, _ string) (bool, error) {
	return true, nil
}
