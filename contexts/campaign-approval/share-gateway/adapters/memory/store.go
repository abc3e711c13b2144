package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pressroom/contexts/campaign-approval/share-gateway/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/share-gateway/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	links map[string]entities.ShareLink
}

func NewStore(seed []entities.ShareLink) *Store {
	links := make(map[string]entities.ShareLink, len(seed))
	for _, item := range seed {
		links[item.LinkID] = item
	}
	return &Store{links: links}
}

func (s *Store) CreateLink(_ context.Context, link entities.ShareLink) error {
	if strings.TrimSpace(link.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.links[link.LinkID]; exists {
		return domainerrors.ErrInvalidShareInput
	}
	for _, item := range s.links {
		if item.Token == link.Token {
			return domainerrors.ErrInvalidShareInput
		}
	}
	s.links[link.LinkID] = link
	return nil
}

func (s *Store) GetLinkByToken(_ context.Context, token string) (entities.ShareLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.links {
		if item.Token == strings.TrimSpace(token) {
			return item, nil
		}
	}
	return entities.ShareLink{}, domainerrors.ErrShareNotFound
}

func (s *Store) GetLink(_ context.Context, organizationID string, linkID string) (entities.ShareLink, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.ShareLink{}, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.links[strings.TrimSpace(linkID)]
	if !exists || item.OrganizationID != strings.TrimSpace(organizationID) {
		return entities.ShareLink{}, domainerrors.ErrShareNotFound
	}
	return item, nil
}

func (s *Store) RevokeLink(_ context.Context, organizationID string, linkID string, revokedAt time.Time) error {
	if strings.TrimSpace(organizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.links[strings.TrimSpace(linkID)]
	if !exists || item.OrganizationID != strings.TrimSpace(organizationID) {
		return domainerrors.ErrShareNotFound
	}
	if item.RevokedAt == nil {
		timestamp := revokedAt.UTC()
		item.RevokedAt = &timestamp
		s.links[item.LinkID] = item
	}
	return nil
}

func (s *Store) RevokeExpiredLinks(_ context.Context, now time.Time, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := make([]string, 0)
	for id, item := range s.links {
		if item.RevokedAt == nil && item.ExpiresAt != nil && now.UTC().After(item.ExpiresAt.UTC()) {
			expired = append(expired, id)
		}
	}
	sort.Strings(expired)
	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}

	timestamp := now.UTC()
	for _, id := range expired {
		item := s.links[id]
		item.RevokedAt = &timestamp
		s.links[id] = item
	}
	return len(expired), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
