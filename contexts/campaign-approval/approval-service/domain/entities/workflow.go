package entities

import (
	"strings"
	"time"
)

type WorkflowStage string

const (
	WorkflowStageTeam      WorkflowStage = "team"
	WorkflowStageCustomer  WorkflowStage = "customer"
	WorkflowStageCompleted WorkflowStage = "completed"
)

type WorkflowOutcome string

const (
	WorkflowOutcomePending          WorkflowOutcome = "pending"
	WorkflowOutcomeApproved         WorkflowOutcome = "approved"
	WorkflowOutcomeRejected         WorkflowOutcome = "rejected"
	WorkflowOutcomeChangesRequested WorkflowOutcome = "changes_requested"
)

type ViewState string

const (
	ViewStatePending ViewState = "pending"
	ViewStateViewed  ViewState = "viewed"
	ViewStateDecided ViewState = "decided"
)

// viewStateRank orders view states so a later state never regresses to an
// earlier one.
var viewStateRank = map[ViewState]int{
	ViewStatePending: 0,
	ViewStateViewed:  1,
	ViewStateDecided: 2,
}

func ViewStateRank(state ViewState) int {
	return viewStateRank[state]
}

type ApproverStatus string

const (
	ApproverStatusPending  ApproverStatus = "pending"
	ApproverStatusApproved ApproverStatus = "approved"
	ApproverStatusRejected ApproverStatus = "rejected"
)

type TeamApprover struct {
	ActorID   string
	Status    ApproverStatus
	Comment   string
	DecidedAt *time.Time
}

type CustomerContact struct {
	ContactID string
	Name      string
	Email     string
}

// Workflow schema versions. Legacy records predate the view-state and inline
// comment fields and are upgraded once at read time.
const (
	SchemaVersionLegacy   = 1
	SchemaVersionEnhanced = 2
)

type Workflow struct {
	WorkflowID      string
	OrganizationID  string
	CampaignID      string
	Cycle           int
	RequireTeam     bool
	RequireCustomer bool
	CurrentStage    WorkflowStage
	Outcome         WorkflowOutcome
	ViewState       ViewState
	TeamApprovers   []TeamApprover
	CustomerContact *CustomerContact
	ActiveVersionID string
	SchemaVersion   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
}

func (w Workflow) IsCompleted() bool {
	return w.CurrentStage == WorkflowStageCompleted
}

func (w Workflow) FindApprover(actorID string) (int, bool) {
	actorID = strings.TrimSpace(actorID)
	for i, approver := range w.TeamApprovers {
		if approver.ActorID == actorID {
			return i, true
		}
	}
	return -1, false
}

func (w Workflow) AllTeamApproved() bool {
	if len(w.TeamApprovers) == 0 {
		return false
	}
	for _, approver := range w.TeamApprovers {
		if approver.Status != ApproverStatusApproved {
			return false
		}
	}
	return true
}

func (w Workflow) AnyTeamRejected() bool {
	for _, approver := range w.TeamApprovers {
		if approver.Status == ApproverStatusRejected {
			return true
		}
	}
	return false
}

// NormalizeWorkflow upgrades a legacy-shaped record to the enhanced schema.
// Stores call it on every read so the rest of the system only ever sees one
// shape.
func NormalizeWorkflow(w Workflow) Workflow {
	if w.SchemaVersion >= SchemaVersionEnhanced {
		return w
	}
	if w.ViewState == "" {
		if w.IsCompleted() {
			w.ViewState = ViewStateDecided
		} else {
			w.ViewState = ViewStatePending
		}
	}
	for i := range w.TeamApprovers {
		if w.TeamApprovers[i].Status == "" {
			w.TeamApprovers[i].Status = ApproverStatusPending
		}
	}
	if w.Outcome == "" {
		w.Outcome = WorkflowOutcomePending
	}
	w.SchemaVersion = SchemaVersionEnhanced
	return w
}

type ActorRole string

const (
	ActorRoleTeam     ActorRole = "team"
	ActorRoleCustomer ActorRole = "customer"
)

type DecisionAction string

const (
	DecisionActionViewed           DecisionAction = "viewed"
	DecisionActionApproved         DecisionAction = "approved"
	DecisionActionRejected         DecisionAction = "rejected"
	DecisionActionChangesRequested DecisionAction = "changes_requested"
)

type InlineComment struct {
	Page  int
	Quote string
	Note  string
}

// DecisionEvent is an immutable log entry. Entries are only ever appended.
type DecisionEvent struct {
	EventID        string
	OrganizationID string
	WorkflowID     string
	CampaignID     string
	ActorID        string
	ActorRole      ActorRole
	Action         DecisionAction
	Comment        string
	InlineComments []InlineComment
	OccurredAt     time.Time
}
