package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"pressroom/contexts/campaign-approval/approval-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/approval-service/domain/errors"
	"pressroom/contexts/campaign-approval/approval-service/ports"
)

type GetWorkflowUseCase struct {
	Workflows ports.WorkflowRepository
	Logger    *slog.Logger
}

func (uc GetWorkflowUseCase) Execute(ctx context.Context, organizationID string, workflowID string) (entities.Workflow, error) {
	return uc.Workflows.GetWorkflow(ctx, strings.TrimSpace(organizationID), strings.TrimSpace(workflowID))
}

type GetHistoryUseCase struct {
	Workflows ports.WorkflowRepository
	Decisions ports.DecisionLog
	Logger    *slog.Logger
}

// Execute returns the append-only decision log in insertion order.
func (uc GetHistoryUseCase) Execute(ctx context.Context, organizationID string, workflowID string) ([]entities.DecisionEvent, error) {
	organizationID = strings.TrimSpace(organizationID)
	workflowID = strings.TrimSpace(workflowID)
	if _, err := uc.Workflows.GetWorkflow(ctx, organizationID, workflowID); err != nil {
		return nil, err
	}
	return uc.Decisions.ListDecisions(ctx, organizationID, workflowID)
}

type ApprovalStatusUseCase struct {
	Workflows ports.WorkflowRepository
	Logger    *slog.Logger
}

// Completed reports whether the campaign's latest workflow cycle finished
// with a positive outcome. It backs the campaign machine's approved guard.
func (uc ApprovalStatusUseCase) Completed(ctx context.Context, organizationID string, campaignID string) (bool, error) {
	workflow, err := uc.Workflows.GetLatestWorkflowByCampaign(ctx, strings.TrimSpace(organizationID), strings.TrimSpace(campaignID))
	if err != nil {
		if errors.Is(err, domainerrors.ErrWorkflowNotFound) {
			return false, nil
		}
		return false, err
	}
	return workflow.IsCompleted() && workflow.Outcome == entities.WorkflowOutcomeApproved, nil
}
