package commands

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	application "pressroom/contexts/campaign-approval/approval-service/application"
	"pressroom/contexts/campaign-approval/approval-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/approval-service/domain/errors"
	"pressroom/contexts/campaign-approval/approval-service/ports"
)

type StartWorkflowCommand struct {
	OrganizationID  string
	CampaignID      string
	RequireTeam     bool
	RequireCustomer bool
	ApproverIDs     []string
	CustomerContact *entities.CustomerContact
	ActorID         string
}

type StartWorkflowUseCase struct {
	Workflows ports.WorkflowRepository
	Versions  ports.VersionGate
	Campaigns ports.CampaignGate
	Outbox    ports.OutboxRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// Execute opens a new approval cycle for the campaign. When no team stage is
// required the workflow starts directly at the customer stage with a fresh
// pending version.
func (uc StartWorkflowUseCase) Execute(ctx context.Context, cmd StartWorkflowCommand) (entities.Workflow, error) {
	logger := application.ResolveLogger(uc.Logger)
	organizationID := strings.TrimSpace(cmd.OrganizationID)
	campaignID := strings.TrimSpace(cmd.CampaignID)
	if organizationID == "" || campaignID == "" {
		return entities.Workflow{}, domainerrors.ErrInvalidWorkflowInput
	}
	if !cmd.RequireTeam && !cmd.RequireCustomer {
		return entities.Workflow{}, domainerrors.ErrInvalidWorkflowConfig
	}

	approvers := make([]entities.TeamApprover, 0, len(cmd.ApproverIDs))
	seen := make(map[string]bool, len(cmd.ApproverIDs))
	for _, actorID := range cmd.ApproverIDs {
		actorID = strings.TrimSpace(actorID)
		if actorID == "" || seen[actorID] {
			continue
		}
		seen[actorID] = true
		approvers = append(approvers, entities.TeamApprover{
			ActorID: actorID,
			Status:  entities.ApproverStatusPending,
		})
	}
	if cmd.RequireTeam && len(approvers) == 0 {
		return entities.Workflow{}, domainerrors.ErrInvalidWorkflowConfig
	}
	if cmd.RequireCustomer && cmd.CustomerContact == nil {
		return entities.Workflow{}, domainerrors.ErrInvalidWorkflowConfig
	}
	if !cmd.RequireTeam {
		approvers = nil
	}

	cycles, err := uc.Workflows.CountWorkflowCycles(ctx, organizationID, campaignID)
	if err != nil {
		return entities.Workflow{}, err
	}
	workflowID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Workflow{}, err
	}

	now := uc.Clock.Now().UTC()
	workflow := entities.Workflow{
		WorkflowID:      workflowID,
		OrganizationID:  organizationID,
		CampaignID:      campaignID,
		Cycle:           cycles + 1,
		RequireTeam:     cmd.RequireTeam,
		RequireCustomer: cmd.RequireCustomer,
		CurrentStage:    entities.WorkflowStageTeam,
		Outcome:         entities.WorkflowOutcomePending,
		ViewState:       entities.ViewStatePending,
		TeamApprovers:   approvers,
		CustomerContact: cmd.CustomerContact,
		SchemaVersion:   entities.SchemaVersionEnhanced,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if !cmd.RequireTeam {
		workflow.CurrentStage = entities.WorkflowStageCustomer
	}

	// CreateWorkflow carries the one-active-cycle guard, so it must run
	// before the version store is touched. A refused duplicate start then
	// leaves the live cycle's pending version alone.
	if err := uc.Workflows.CreateWorkflow(ctx, workflow); err != nil {
		return entities.Workflow{}, err
	}
	if !cmd.RequireTeam {
		pending, err := uc.Versions.CreatePendingVersion(ctx, organizationID, campaignID)
		if err != nil {
			return entities.Workflow{}, err
		}
		workflow.ActiveVersionID = pending.VersionID
		if err := uc.Workflows.UpdateWorkflow(ctx, workflow, entities.WorkflowStageCustomer); err != nil {
			return entities.Workflow{}, err
		}
	}
	if err := uc.Campaigns.AttachWorkflow(ctx, organizationID, campaignID, workflow.WorkflowID); err != nil {
		return entities.Workflow{}, err
	}

	appendWorkflowEvent(ctx, uc.Outbox, uc.IDGen, logger, workflow, "approval.workflow_started", map[string]string{
		"campaign_id": campaignID,
		"stage":       string(workflow.CurrentStage),
		"cycle":       strconv.Itoa(workflow.Cycle),
	})

	logger.Info("approval workflow started",
		"event", "approval_workflow_started",
		"module", "campaign-approval/approval-service",
		"layer", "application",
		"workflow_id", workflow.WorkflowID,
		"campaign_id", campaignID,
		"cycle", workflow.Cycle,
		"stage", string(workflow.CurrentStage),
	)
	return workflow, nil
}
