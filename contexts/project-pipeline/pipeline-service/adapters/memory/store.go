package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pressroom/contexts/project-pipeline/pipeline-service/domain/entities"
	domainerrors "pressroom/contexts/project-pipeline/pipeline-service/domain/errors"
	"pressroom/contexts/project-pipeline/pipeline-service/ports"

	"github.com/google/uuid"
)

type taskRecord struct {
	view           ports.TaskView
	organizationID string
	projectID      string
	createdAt      time.Time
}

type Store struct {
	mu sync.RWMutex

	projects  map[string]entities.Project
	history   []entities.StageHistoryEntry
	tasks     map[string]taskRecord
	templates map[string][]ports.TaskTemplate

	seq int
}

func NewStore(seed []entities.Project) *Store {
	projects := make(map[string]entities.Project, len(seed))
	for _, item := range seed {
		projects[item.ProjectID] = item
	}
	return &Store{
		projects:  projects,
		history:   make([]entities.StageHistoryEntry, 0),
		tasks:     make(map[string]taskRecord),
		templates: make(map[string][]ports.TaskTemplate),
	}
}

// SeedTask registers a task view the engine gates on.
func (s *Store) SeedTask(organizationID string, projectID string, view ports.TaskView) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.tasks[view.TaskID] = taskRecord{
		view:           view,
		organizationID: organizationID,
		projectID:      projectID,
		createdAt:      time.Now().UTC().Add(time.Duration(s.seq) * time.Nanosecond),
	}
}

// SeedStageTemplates registers auto-create templates for a project stage.
func (s *Store) SeedStageTemplates(projectID string, stage entities.Stage, items []ports.TaskTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.templates[projectID+"/"+string(stage)] = append([]ports.TaskTemplate(nil), items...)
}

func (s *Store) CreateProject(_ context.Context, project entities.Project) error {
	if strings.TrimSpace(project.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[project.ProjectID]; exists {
		return domainerrors.ErrInvalidProjectInput
	}
	s.projects[project.ProjectID] = project
	return nil
}

func (s *Store) GetProject(_ context.Context, organizationID string, projectID string) (entities.Project, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Project{}, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.projects[strings.TrimSpace(projectID)]
	if !exists || item.OrganizationID != strings.TrimSpace(organizationID) {
		return entities.Project{}, domainerrors.ErrProjectNotFound
	}
	return item, nil
}

func (s *Store) UpdateProject(_ context.Context, project entities.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.projects[project.ProjectID]
	if !exists || existing.OrganizationID != project.OrganizationID {
		return domainerrors.ErrProjectNotFound
	}
	// Preserve the claim state: transitions are managed only through
	// ClaimTransition/ClearTransition.
	project.CurrentTransition = existing.CurrentTransition
	s.projects[project.ProjectID] = project
	return nil
}

func (s *Store) ClaimTransition(
	_ context.Context,
	organizationID string,
	projectID string,
	transition entities.StageTransition,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, exists := s.projects[strings.TrimSpace(projectID)]
	if !exists || project.OrganizationID != strings.TrimSpace(organizationID) {
		return domainerrors.ErrProjectNotFound
	}
	if project.CurrentTransition != nil {
		return domainerrors.ErrTransitionInFlight
	}
	project.CurrentTransition = &transition
	s.projects[project.ProjectID] = project
	return nil
}

func (s *Store) ClearTransition(_ context.Context, organizationID string, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, exists := s.projects[strings.TrimSpace(projectID)]
	if !exists || project.OrganizationID != strings.TrimSpace(organizationID) {
		return domainerrors.ErrProjectNotFound
	}
	project.CurrentTransition = nil
	s.projects[project.ProjectID] = project
	return nil
}

func (s *Store) AppendStageEntry(_ context.Context, entry entities.StageHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, entry)
	return nil
}

func (s *Store) CompleteLatestStageEntry(
	_ context.Context,
	organizationID string,
	projectID string,
	completedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.history) - 1; i >= 0; i-- {
		entry := s.history[i]
		if entry.OrganizationID != strings.TrimSpace(organizationID) ||
			entry.ProjectID != strings.TrimSpace(projectID) {
			continue
		}
		if entry.CompletedAt == nil {
			at := completedAt.UTC()
			entry.CompletedAt = &at
			s.history[i] = entry
		}
		return nil
	}
	return nil
}

func (s *Store) ListStageHistory(_ context.Context, organizationID string, projectID string) ([]entities.StageHistoryEntry, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.StageHistoryEntry, 0)
	for _, entry := range s.history {
		if entry.OrganizationID == strings.TrimSpace(organizationID) &&
			entry.ProjectID == strings.TrimSpace(projectID) {
			items = append(items, entry)
		}
	}
	return items, nil
}

func (s *Store) ListProjectTasks(_ context.Context, organizationID string, projectID string) ([]ports.TaskView, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type dated struct {
		view ports.TaskView
		at   time.Time
	}
	items := make([]dated, 0)
	for _, record := range s.tasks {
		if record.organizationID == strings.TrimSpace(organizationID) &&
			record.projectID == strings.TrimSpace(projectID) {
			items = append(items, dated{view: record.view, at: record.createdAt})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].at.Before(items[j].at)
	})
	views := make([]ports.TaskView, 0, len(items))
	for _, item := range items {
		views = append(views, item.view)
	}
	return views, nil
}

func (s *Store) ListStageTemplates(
	_ context.Context,
	_ string,
	projectID string,
	stage entities.Stage,
) ([]ports.TaskTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]ports.TaskTemplate(nil), s.templates[strings.TrimSpace(projectID)+"/"+string(stage)]...), nil
}

func (s *Store) CompleteTask(_ context.Context, organizationID string, taskID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.tasks[strings.TrimSpace(taskID)]
	if !exists || record.organizationID != strings.TrimSpace(organizationID) {
		return domainerrors.ErrInvalidProjectInput
	}
	record.view.Status = "completed"
	s.tasks[record.view.TaskID] = record
	return nil
}

func (s *Store) CreateStageTask(_ context.Context, spec ports.StageTaskSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	taskID := uuid.NewString()
	s.tasks[taskID] = taskRecord{
		view: ports.TaskView{
			TaskID:                     taskID,
			Status:                     "pending",
			StageContext:               spec.StageContext,
			RequiredForStageCompletion: spec.RequiredForStageCompletion,
			BlocksStageTransition:      spec.BlocksStageTransition,
			AutoCompleteOnStageChange:  spec.AutoCompleteOnStageChange,
		},
		organizationID: spec.OrganizationID,
		projectID:      spec.ProjectID,
		createdAt:      time.Now().UTC().Add(time.Duration(s.seq) * time.Nanosecond),
	}
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
