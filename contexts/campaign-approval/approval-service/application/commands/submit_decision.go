package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "pressroom/contexts/campaign-approval/approval-service/application"
	"pressroom/contexts/campaign-approval/approval-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/approval-service/domain/errors"
	"pressroom/contexts/campaign-approval/approval-service/ports"
)

type SubmitDecisionCommand struct {
	OrganizationID string
	WorkflowID     string
	ActorID        string
	ActorRole      entities.ActorRole
	Outcome        entities.DecisionAction
	Comment        string
	InlineComments []entities.InlineComment
}

type SubmitDecisionResult struct {
	Workflow entities.Workflow
	// Applied is false when the call was an idempotent no-op, such as an
	// approver re-submitting a decision already recorded.
	Applied bool
}

type SubmitDecisionUseCase struct {
	Workflows ports.WorkflowRepository
	Decisions ports.DecisionLog
	Versions  ports.VersionGate
	Campaigns ports.CampaignGate
	Outbox    ports.OutboxRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc SubmitDecisionUseCase) Execute(ctx context.Context, cmd SubmitDecisionCommand) (SubmitDecisionResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	workflow, err := uc.Workflows.GetWorkflow(ctx, strings.TrimSpace(cmd.OrganizationID), strings.TrimSpace(cmd.WorkflowID))
	if err != nil {
		return SubmitDecisionResult{}, err
	}
	if workflow.IsCompleted() {
		return SubmitDecisionResult{}, domainerrors.ErrWorkflowCompleted
	}

	switch cmd.ActorRole {
	case entities.ActorRoleTeam:
		return uc.applyTeamDecision(ctx, logger, workflow, cmd)
	case entities.ActorRoleCustomer:
		return uc.applyCustomerDecision(ctx, logger, workflow, cmd)
	default:
		return SubmitDecisionResult{}, domainerrors.ErrInvalidWorkflowInput
	}
}

func (uc SubmitDecisionUseCase) applyTeamDecision(
	ctx context.Context,
	logger *slog.Logger,
	workflow entities.Workflow,
	cmd SubmitDecisionCommand,
) (SubmitDecisionResult, error) {
	if workflow.CurrentStage != entities.WorkflowStageTeam {
		return SubmitDecisionResult{}, domainerrors.ErrInvalidDecisionStage
	}

	var status entities.ApproverStatus
	switch cmd.Outcome {
	case entities.DecisionActionApproved:
		status = entities.ApproverStatusApproved
	case entities.DecisionActionRejected:
		status = entities.ApproverStatusRejected
	default:
		return SubmitDecisionResult{}, domainerrors.ErrInvalidWorkflowInput
	}

	now := uc.Clock.Now().UTC()
	fresh, changed, err := uc.Workflows.RecordApproverDecision(
		ctx,
		workflow.OrganizationID,
		workflow.WorkflowID,
		strings.TrimSpace(cmd.ActorID),
		status,
		strings.TrimSpace(cmd.Comment),
		now,
	)
	if err != nil {
		return SubmitDecisionResult{}, err
	}
	if !changed {
		// Duplicate submission. Return persisted state untouched with no new
		// log entry.
		return SubmitDecisionResult{Workflow: fresh}, nil
	}

	if err := uc.appendDecision(ctx, fresh, cmd, now); err != nil {
		return SubmitDecisionResult{}, err
	}

	// Aggregate conditions are evaluated against the freshly stored record,
	// never against the copy read before the write.
	switch {
	case fresh.AnyTeamRejected():
		fresh, err = uc.completeWorkflow(ctx, logger, fresh, entities.WorkflowStageTeam, entities.WorkflowOutcomeRejected, now)
		if err != nil {
			return SubmitDecisionResult{}, err
		}
		if err := uc.Campaigns.MarkChangesRequested(ctx, fresh.OrganizationID, fresh.CampaignID); err != nil {
			return SubmitDecisionResult{}, err
		}
	case fresh.AllTeamApproved() && fresh.RequireCustomer:
		// The stage swap runs before the version store is touched. A lost
		// compare-and-set refuses the advance without superseding the
		// campaign's pending version.
		fresh.CurrentStage = entities.WorkflowStageCustomer
		fresh.UpdatedAt = now
		if err := uc.Workflows.UpdateWorkflow(ctx, fresh, entities.WorkflowStageTeam); err != nil {
			return SubmitDecisionResult{}, err
		}
		pending, err := uc.Versions.CreatePendingVersion(ctx, fresh.OrganizationID, fresh.CampaignID)
		if err != nil {
			return SubmitDecisionResult{}, err
		}
		fresh.ActiveVersionID = pending.VersionID
		if err := uc.Workflows.UpdateWorkflow(ctx, fresh, entities.WorkflowStageCustomer); err != nil {
			return SubmitDecisionResult{}, err
		}
		appendWorkflowEvent(ctx, uc.Outbox, uc.IDGen, logger, fresh, "approval.stage_advanced", map[string]string{
			"campaign_id": fresh.CampaignID,
			"stage":       string(fresh.CurrentStage),
			"version_id":  fresh.ActiveVersionID,
		})
	case fresh.AllTeamApproved():
		fresh, err = uc.completeWorkflow(ctx, logger, fresh, entities.WorkflowStageTeam, entities.WorkflowOutcomeApproved, now)
		if err != nil {
			return SubmitDecisionResult{}, err
		}
		if err := uc.Campaigns.MarkApproved(ctx, fresh.OrganizationID, fresh.CampaignID); err != nil {
			return SubmitDecisionResult{}, err
		}
	}

	logger.Info("team decision recorded",
		"event", "approval_team_decision",
		"module", "campaign-approval/approval-service",
		"layer", "application",
		"workflow_id", fresh.WorkflowID,
		"actor_id", strings.TrimSpace(cmd.ActorID),
		"outcome", string(cmd.Outcome),
		"stage", string(fresh.CurrentStage),
	)
	return SubmitDecisionResult{Workflow: fresh, Applied: true}, nil
}

func (uc SubmitDecisionUseCase) applyCustomerDecision(
	ctx context.Context,
	logger *slog.Logger,
	workflow entities.Workflow,
	cmd SubmitDecisionCommand,
) (SubmitDecisionResult, error) {
	if workflow.CurrentStage != entities.WorkflowStageCustomer {
		return SubmitDecisionResult{}, domainerrors.ErrInvalidDecisionStage
	}

	comment := strings.TrimSpace(cmd.Comment)
	var outcome entities.WorkflowOutcome
	switch cmd.Outcome {
	case entities.DecisionActionApproved:
		outcome = entities.WorkflowOutcomeApproved
	case entities.DecisionActionChangesRequested:
		if comment == "" {
			return SubmitDecisionResult{}, domainerrors.ErrCommentRequired
		}
		outcome = entities.WorkflowOutcomeChangesRequested
	default:
		return SubmitDecisionResult{}, domainerrors.ErrInvalidWorkflowInput
	}

	now := uc.Clock.Now().UTC()

	// The stage swap is the exclusivity point. A concurrent duplicate decide
	// loses the compare-and-set and is refused instead of reapplied.
	workflow.CurrentStage = entities.WorkflowStageCompleted
	workflow.Outcome = outcome
	workflow.ViewState = entities.ViewStateDecided
	workflow.UpdatedAt = now
	workflow.CompletedAt = &now
	if err := uc.Workflows.UpdateWorkflow(ctx, workflow, entities.WorkflowStageCustomer); err != nil {
		return SubmitDecisionResult{}, err
	}

	if workflow.ActiveVersionID != "" {
		if outcome == entities.WorkflowOutcomeApproved {
			if err := uc.Versions.ApproveVersion(ctx, workflow.OrganizationID, workflow.ActiveVersionID); err != nil {
				return SubmitDecisionResult{}, err
			}
		} else {
			if err := uc.Versions.RejectVersion(ctx, workflow.OrganizationID, workflow.ActiveVersionID); err != nil {
				return SubmitDecisionResult{}, err
			}
		}
	}

	if outcome == entities.WorkflowOutcomeApproved {
		if err := uc.Campaigns.MarkApproved(ctx, workflow.OrganizationID, workflow.CampaignID); err != nil {
			return SubmitDecisionResult{}, err
		}
	} else {
		if err := uc.Campaigns.MarkChangesRequested(ctx, workflow.OrganizationID, workflow.CampaignID); err != nil {
			return SubmitDecisionResult{}, err
		}
	}

	if err := uc.appendDecision(ctx, workflow, cmd, now); err != nil {
		return SubmitDecisionResult{}, err
	}
	appendWorkflowEvent(ctx, uc.Outbox, uc.IDGen, logger, workflow, "approval.workflow_completed", map[string]string{
		"campaign_id": workflow.CampaignID,
		"outcome":     string(outcome),
	})

	logger.Info("customer decision recorded",
		"event", "approval_customer_decision",
		"module", "campaign-approval/approval-service",
		"layer", "application",
		"workflow_id", workflow.WorkflowID,
		"outcome", string(outcome),
	)
	return SubmitDecisionResult{Workflow: workflow, Applied: true}, nil
}

func (uc SubmitDecisionUseCase) completeWorkflow(
	ctx context.Context,
	logger *slog.Logger,
	workflow entities.Workflow,
	expectedStage entities.WorkflowStage,
	outcome entities.WorkflowOutcome,
	now time.Time,
) (entities.Workflow, error) {
	workflow.CurrentStage = entities.WorkflowStageCompleted
	workflow.Outcome = outcome
	workflow.UpdatedAt = now
	workflow.CompletedAt = &now
	if err := uc.Workflows.UpdateWorkflow(ctx, workflow, expectedStage); err != nil {
		return entities.Workflow{}, err
	}
	appendWorkflowEvent(ctx, uc.Outbox, uc.IDGen, logger, workflow, "approval.workflow_completed", map[string]string{
		"campaign_id": workflow.CampaignID,
		"outcome":     string(outcome),
	})
	return workflow, nil
}

func (uc SubmitDecisionUseCase) appendDecision(
	ctx context.Context,
	workflow entities.Workflow,
	cmd SubmitDecisionCommand,
	now time.Time,
) error {
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	return uc.Decisions.AppendDecision(ctx, entities.DecisionEvent{
		EventID:        eventID,
		OrganizationID: workflow.OrganizationID,
		WorkflowID:     workflow.WorkflowID,
		CampaignID:     workflow.CampaignID,
		ActorID:        strings.TrimSpace(cmd.ActorID),
		ActorRole:      cmd.ActorRole,
		Action:         cmd.Outcome,
		Comment:        strings.TrimSpace(cmd.Comment),
		InlineComments: append([]entities.InlineComment(nil), cmd.InlineComments...),
		OccurredAt:     now,
	})
}
