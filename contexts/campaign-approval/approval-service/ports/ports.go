package ports

import (
	"context"
	"time"

	"pressroom/contexts/campaign-approval/approval-service/domain/entities"
	"pressroom/internal/shared/events"
	"pressroom/internal/shared/outbox"
)

type WorkflowRepository interface {
	// CreateWorkflow persists a new cycle. It fails when another workflow
	// for the same campaign is still active, so at most one cycle runs at a
	// time.
	CreateWorkflow(ctx context.Context, workflow entities.Workflow) error

	GetWorkflow(ctx context.Context, organizationID string, workflowID string) (entities.Workflow, error)

	GetActiveWorkflowByCampaign(ctx context.Context, organizationID string, campaignID string) (entities.Workflow, error)

	// GetLatestWorkflowByCampaign returns the highest-cycle workflow for the
	// campaign regardless of stage.
	GetLatestWorkflowByCampaign(ctx context.Context, organizationID string, campaignID string) (entities.Workflow, error)

	CountWorkflowCycles(ctx context.Context, organizationID string, campaignID string) (int, error)

	// RecordApproverDecision is a compare-and-set keyed on (workflow,
	// approver). It writes only while the approver is still pending and
	// always returns the freshly stored workflow, so callers evaluate
	// aggregate conditions against persisted truth rather than a cached
	// view. changed is false when the approver had already decided.
	RecordApproverDecision(
		ctx context.Context,
		organizationID string,
		workflowID string,
		actorID string,
		status entities.ApproverStatus,
		comment string,
		decidedAt time.Time,
	) (workflow entities.Workflow, changed bool, err error)

	// UpdateWorkflow swaps the stored record only while its stage still
	// matches expectedStage. Concurrent completions lose the swap and are
	// refused.
	UpdateWorkflow(ctx context.Context, workflow entities.Workflow, expectedStage entities.WorkflowStage) error

	// AdvanceViewState moves the view state forward only. Repeated or
	// out-of-order calls are no-ops reported through changed.
	AdvanceViewState(ctx context.Context, organizationID string, workflowID string, state entities.ViewState) (workflow entities.Workflow, changed bool, err error)
}

type DecisionLog interface {
	AppendDecision(ctx context.Context, event entities.DecisionEvent) error
	ListDecisions(ctx context.Context, organizationID string, workflowID string) ([]entities.DecisionEvent, error)
}

// PendingVersion identifies the artifact version opened for customer review.
type PendingVersion struct {
	VersionID string
	Number    int
}

// VersionGate drives the versioned artifact store without this service
// knowing its internals.
type VersionGate interface {
	CreatePendingVersion(ctx context.Context, organizationID string, campaignID string) (PendingVersion, error)
	ApproveVersion(ctx context.Context, organizationID string, versionID string) error
	RejectVersion(ctx context.Context, organizationID string, versionID string) error
}

// CampaignGate requests campaign status transitions on behalf of a completed
// or advancing workflow.
type CampaignGate interface {
	AttachWorkflow(ctx context.Context, organizationID string, campaignID string, workflowID string) error
	MarkApproved(ctx context.Context, organizationID string, campaignID string) error
	MarkChangesRequested(ctx context.Context, organizationID string, campaignID string) error
}

type OutboxRepository interface {
	AppendOutbox(ctx context.Context, envelope events.Envelope) error
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
