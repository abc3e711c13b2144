package commands

import (
	"context"
	"log/slog"

	"pressroom/contexts/campaign-approval/approval-service/domain/entities"
	"pressroom/contexts/campaign-approval/approval-service/ports"
	"pressroom/internal/shared/events"
)

// appendWorkflowEvent writes a notification envelope to the outbox. Delivery
// is fire-and-forget; append failures are logged and never abort the decision
// that triggered them.
func appendWorkflowEvent(
	ctx context.Context,
	outboxRepo ports.OutboxRepository,
	idGen ports.IDGenerator,
	logger *slog.Logger,
	workflow entities.Workflow,
	eventType string,
	payload map[string]string,
) {
	if outboxRepo == nil {
		return
	}
	eventID, err := idGen.NewID(ctx)
	if err != nil {
		eventID = workflow.WorkflowID
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  "approval-service",
		OccurredAtUTC:  workflow.UpdatedAt,
		CorrelationID:  workflow.CampaignID,
		OrganizationID: workflow.OrganizationID,
		EntityType:     "approval_workflow",
		EntityID:       workflow.WorkflowID,
		PayloadVersion: 1,
		Payload:        payload,
	}
	if err := outboxRepo.AppendOutbox(ctx, envelope); err != nil {
		logger.Warn("workflow event dropped",
			"event", "approval_outbox_append_failed",
			"module", "campaign-approval/approval-service",
			"layer", "application",
			"workflow_id", workflow.WorkflowID,
			"event_type", eventType,
			"error", err.Error(),
		)
	}
}
