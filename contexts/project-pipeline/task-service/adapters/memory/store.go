package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pressroom/contexts/project-pipeline/task-service/domain/entities"
	domainerrors "pressroom/contexts/project-pipeline/task-service/domain/errors"
	"pressroom/contexts/project-pipeline/task-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	tasks map[string]entities.Task
}

func NewStore(seed []entities.Task) *Store {
	tasks := make(map[string]entities.Task, len(seed))
	for _, item := range seed {
		tasks[item.TaskID] = item
	}
	return &Store{tasks: tasks}
}

func (s *Store) CreateTask(_ context.Context, task entities.Task) error {
	if strings.TrimSpace(task.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.TaskID]; exists {
		return domainerrors.ErrInvalidTaskInput
	}
	s.tasks[task.TaskID] = task
	return nil
}

func (s *Store) GetTask(_ context.Context, organizationID string, taskID string) (entities.Task, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Task{}, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.tasks[strings.TrimSpace(taskID)]
	if !exists || item.OrganizationID != strings.TrimSpace(organizationID) {
		return entities.Task{}, domainerrors.ErrTaskNotFound
	}
	return item, nil
}

func (s *Store) UpdateTask(_ context.Context, task entities.Task) error {
	if strings.TrimSpace(task.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.tasks[task.TaskID]
	if !exists || existing.OrganizationID != task.OrganizationID {
		return domainerrors.ErrTaskNotFound
	}
	s.tasks[task.TaskID] = task
	return nil
}

func (s *Store) ListTasksByProject(_ context.Context, organizationID string, projectID string) ([]entities.Task, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Task, 0)
	for _, item := range s.tasks {
		if item.OrganizationID == strings.TrimSpace(organizationID) &&
			item.ProjectID == strings.TrimSpace(projectID) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].TaskID < items[j].TaskID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListProjectRefs(_ context.Context, limit int) ([]ports.ProjectRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[ports.ProjectRef]bool)
	refs := make([]ports.ProjectRef, 0)
	for _, item := range s.tasks {
		ref := ports.ProjectRef{OrganizationID: item.OrganizationID, ProjectID: item.ProjectID}
		if seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].OrganizationID == refs[j].OrganizationID {
			return refs[i].ProjectID < refs[j].ProjectID
		}
		return refs[i].OrganizationID < refs[j].OrganizationID
	})
	if limit > 0 && len(refs) > limit {
		refs = refs[:limit]
	}
	return refs, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
