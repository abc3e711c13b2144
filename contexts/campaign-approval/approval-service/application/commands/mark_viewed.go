package commands

import (
	"context"
	"log/slog"
	"strings"

	application "pressroom/contexts/campaign-approval/approval-service/application"
	"pressroom/contexts/campaign-approval/approval-service/domain/entities"
	"pressroom/contexts/campaign-approval/approval-service/ports"
)

type MarkViewedCommand struct {
	OrganizationID string
	WorkflowID     string
	ActorID        string
}

// MarkViewedUseCase records that the customer opened the review. The first
// call moves the view state forward and logs a viewed event; repeats and
// calls arriving after a decision change nothing.
type MarkViewedUseCase struct {
	Workflows ports.WorkflowRepository
	Decisions ports.DecisionLog
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc MarkViewedUseCase) Execute(ctx context.Context, cmd MarkViewedCommand) (entities.Workflow, error) {
	logger := application.ResolveLogger(uc.Logger)
	workflow, changed, err := uc.Workflows.AdvanceViewState(
		ctx,
		strings.TrimSpace(cmd.OrganizationID),
		strings.TrimSpace(cmd.WorkflowID),
		entities.ViewStateViewed,
	)
	if err != nil {
		return entities.Workflow{}, err
	}
	if !changed {
		return workflow, nil
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Workflow{}, err
	}
	if err := uc.Decisions.AppendDecision(ctx, entities.DecisionEvent{
		EventID:        eventID,
		OrganizationID: workflow.OrganizationID,
		WorkflowID:     workflow.WorkflowID,
		CampaignID:     workflow.CampaignID,
		ActorID:        strings.TrimSpace(cmd.ActorID),
		ActorRole:      entities.ActorRoleCustomer,
		Action:         entities.DecisionActionViewed,
		OccurredAt:     uc.Clock.Now().UTC(),
	}); err != nil {
		return entities.Workflow{}, err
	}

	logger.Info("workflow viewed",
		"event", "approval_workflow_viewed",
		"module", "campaign-approval/approval-service",
		"layer", "application",
		"workflow_id", workflow.WorkflowID,
	)
	return workflow, nil
}
