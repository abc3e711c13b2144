package memory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"pressroom/contexts/campaign-approval/approval-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/approval-service/domain/errors"
	"pressroom/contexts/campaign-approval/approval-service/ports"
	"pressroom/internal/shared/events"
	"pressroom/internal/shared/outbox"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	workflows map[string]entities.Workflow
	decisions []entities.DecisionEvent
	outbox    []outbox.Message
}

func NewStore(seed []entities.Workflow) *Store {
	workflows := make(map[string]entities.Workflow, len(seed))
	for _, item := range seed {
		workflows[item.WorkflowID] = item
	}
	return &Store{workflows: workflows}
}

func (s *Store) CreateWorkflow(_ context.Context, workflow entities.Workflow) error {
	if strings.TrimSpace(workflow.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.workflows[workflow.WorkflowID]; exists {
		return domainerrors.ErrInvalidWorkflowInput
	}
	for _, item := range s.workflows {
		if item.OrganizationID == workflow.OrganizationID &&
			item.CampaignID == workflow.CampaignID &&
			!item.IsCompleted() {
			return domainerrors.ErrWorkflowAlreadyActive
		}
	}
	s.workflows[workflow.WorkflowID] = workflow
	return nil
}

func (s *Store) GetWorkflow(_ context.Context, organizationID string, workflowID string) (entities.Workflow, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Workflow{}, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.workflows[strings.TrimSpace(workflowID)]
	if !exists || item.OrganizationID != strings.TrimSpace(organizationID) {
		return entities.Workflow{}, domainerrors.ErrWorkflowNotFound
	}
	return entities.NormalizeWorkflow(cloneWorkflow(item)), nil
}

func (s *Store) GetActiveWorkflowByCampaign(_ context.Context, organizationID string, campaignID string) (entities.Workflow, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Workflow{}, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.workflows {
		if item.OrganizationID == strings.TrimSpace(organizationID) &&
			item.CampaignID == strings.TrimSpace(campaignID) &&
			!item.IsCompleted() {
			return entities.NormalizeWorkflow(cloneWorkflow(item)), nil
		}
	}
	return entities.Workflow{}, domainerrors.ErrWorkflowNotFound
}

func (s *Store) GetLatestWorkflowByCampaign(_ context.Context, organizationID string, campaignID string) (entities.Workflow, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Workflow{}, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest entities.Workflow
	found := false
	for _, item := range s.workflows {
		if item.OrganizationID != strings.TrimSpace(organizationID) ||
			item.CampaignID != strings.TrimSpace(campaignID) {
			continue
		}
		if !found || item.Cycle > latest.Cycle {
			latest = item
			found = true
		}
	}
	if !found {
		return entities.Workflow{}, domainerrors.ErrWorkflowNotFound
	}
	return entities.NormalizeWorkflow(cloneWorkflow(latest)), nil
}

func (s *Store) CountWorkflowCycles(_ context.Context, organizationID string, campaignID string) (int, error) {
	if strings.TrimSpace(organizationID) == "" {
		return 0, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.workflows {
		if item.OrganizationID == strings.TrimSpace(organizationID) &&
			item.CampaignID == strings.TrimSpace(campaignID) {
			count++
		}
	}
	return count, nil
}

func (s *Store) RecordApproverDecision(
	_ context.Context,
	organizationID string,
	workflowID string,
	actorID string,
	status entities.ApproverStatus,
	comment string,
	decidedAt time.Time,
) (entities.Workflow, bool, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Workflow{}, false, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.workflows[strings.TrimSpace(workflowID)]
	if !exists || item.OrganizationID != strings.TrimSpace(organizationID) {
		return entities.Workflow{}, false, domainerrors.ErrWorkflowNotFound
	}
	item = entities.NormalizeWorkflow(cloneWorkflow(item))

	index, ok := item.FindApprover(actorID)
	if !ok {
		return entities.Workflow{}, false, domainerrors.ErrApproverNotFound
	}
	if item.TeamApprovers[index].Status != entities.ApproverStatusPending {
		return item, false, nil
	}

	timestamp := decidedAt.UTC()
	item.TeamApprovers[index].Status = status
	item.TeamApprovers[index].Comment = strings.TrimSpace(comment)
	item.TeamApprovers[index].DecidedAt = &timestamp
	item.UpdatedAt = timestamp
	s.workflows[item.WorkflowID] = item
	return cloneWorkflow(item), true, nil
}

func (s *Store) UpdateWorkflow(_ context.Context, workflow entities.Workflow, expectedStage entities.WorkflowStage) error {
	if strings.TrimSpace(workflow.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.workflows[workflow.WorkflowID]
	if !exists || existing.OrganizationID != workflow.OrganizationID {
		return domainerrors.ErrWorkflowNotFound
	}
	if existing.CurrentStage != expectedStage {
		return domainerrors.ErrWorkflowCompleted
	}
	s.workflows[workflow.WorkflowID] = cloneWorkflow(workflow)
	return nil
}

func (s *Store) AdvanceViewState(
	_ context.Context,
	organizationID string,
	workflowID string,
	state entities.ViewState,
) (entities.Workflow, bool, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Workflow{}, false, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.workflows[strings.TrimSpace(workflowID)]
	if !exists || item.OrganizationID != strings.TrimSpace(organizationID) {
		return entities.Workflow{}, false, domainerrors.ErrWorkflowNotFound
	}
	item = entities.NormalizeWorkflow(cloneWorkflow(item))

	if entities.ViewStateRank(state) <= entities.ViewStateRank(item.ViewState) {
		return item, false, nil
	}
	item.ViewState = state
	s.workflows[item.WorkflowID] = item
	return cloneWorkflow(item), true, nil
}

func (s *Store) AppendDecision(_ context.Context, event entities.DecisionEvent) error {
	if strings.TrimSpace(event.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.decisions = append(s.decisions, event)
	return nil
}

func (s *Store) ListDecisions(_ context.Context, organizationID string, workflowID string) ([]entities.DecisionEvent, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domainerrors.ErrOrganizationScopeMissing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.DecisionEvent, 0)
	for _, item := range s.decisions {
		if item.OrganizationID == strings.TrimSpace(organizationID) &&
			item.WorkflowID == strings.TrimSpace(workflowID) {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope events.Envelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.outbox = append(s.outbox, outbox.Message{
		ID:        envelope.EventID,
		EventType: envelope.EventType,
		Payload:   payload,
		Status:    "pending",
	})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]outbox.Message, 0)
	for _, item := range s.outbox {
		if item.Status != "pending" {
			continue
		}
		items = append(items, item)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].ID == outboxID {
			s.outbox[i].Status = "published"
			return nil
		}
	}
	return domainerrors.ErrInvalidWorkflowInput
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneWorkflow(item entities.Workflow) entities.Workflow {
	item.TeamApprovers = append([]entities.TeamApprover(nil), item.TeamApprovers...)
	if item.CustomerContact != nil {
		contact := *item.CustomerContact
		item.CustomerContact = &contact
	}
	return item
}

// CountingVersionGate issues incrementing version numbers per campaign. It is
// the default gate for in-memory wiring when no version store is attached.
type CountingVersionGate struct {
	mu      sync.Mutex
	numbers map[string]int
}

func NewCountingVersionGate() *CountingVersionGate {
	return &CountingVersionGate{numbers: make(map[string]int)}
}

func (g *CountingVersionGate) CreatePendingVersion(_ context.Context, organizationID string, campaignID string) (ports.PendingVersion, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := organizationID + "/" + campaignID
	g.numbers[key]++
	return ports.PendingVersion{VersionID: uuid.NewString(), Number: g.numbers[key]}, nil
}

func (g *CountingVersionGate) ApproveVersion(_ context.Context, _ string, _ string) error {
	return nil
}

func (g *CountingVersionGate) RejectVersion(_ context.Context, _ string, _ string) error {
	return nil
}

// NullCampaignGate accepts every campaign transition request. It is the
// default gate for in-memory wiring when no campaign machine is attached.
type NullCampaignGate struct{}

func (NullCampaignGate) AttachWorkflow(_ context.Context, _ string, _ string, _ string) error {
	return nil
}

func (NullCampaignGate) MarkApproved(_ context.Context, _ string, _ string) error {
	return nil
}

func (NullCampaignGate) MarkChangesRequested(_ context.Context, _ string, _ string) error {
	return nil
}
