package bootstrap

import (
	"context"
	"errors"
	"time"

	approvalservice "pressroom/contexts/campaign-approval/approval-service"
	approvalcommands "pressroom/contexts/campaign-approval/approval-service/application/commands"
	approvalqueries "pressroom/contexts/campaign-approval/approval-service/application/queries"
	approvalentities "pressroom/contexts/campaign-approval/approval-service/domain/entities"
	approvalerrors "pressroom/contexts/campaign-approval/approval-service/domain/errors"
	approvalports "pressroom/contexts/campaign-approval/approval-service/ports"
	campaignservice "pressroom/contexts/campaign-approval/campaign-service"
	campaigncommands "pressroom/contexts/campaign-approval/campaign-service/application/commands"
	campaignentities "pressroom/contexts/campaign-approval/campaign-service/domain/entities"
	shareports "pressroom/contexts/campaign-approval/share-gateway/ports"
	versionservice "pressroom/contexts/campaign-approval/version-service"
	versioncommands "pressroom/contexts/campaign-approval/version-service/application/commands"
	versionentities "pressroom/contexts/campaign-approval/version-service/domain/entities"
	pipelineports "pressroom/contexts/project-pipeline/pipeline-service/ports"
	taskentities "pressroom/contexts/project-pipeline/task-service/domain/entities"
	taskports "pressroom/contexts/project-pipeline/task-service/ports"

	shareerrors "pressroom/contexts/campaign-approval/share-gateway/domain/errors"
)

// The gate adapters below are the only code that sees two contexts at once.
// Each one narrows a module's surface to the port its consumer declares.

// workflowActor identifies the orchestrator on campaign status history
// entries it writes on the workflow's behalf.
const workflowActor = "approval-workflow"

// ApprovalStatusGate answers the campaign service's question "did the latest
// approval cycle complete positively". It wraps the status query rather than
// the approval module because the campaign module is wired before the
// orchestrator exists.
type ApprovalStatusGate struct {
	Status approvalqueries.ApprovalStatusUseCase
}

func (g ApprovalStatusGate) ApprovalCompleted(ctx context.Context, organizationID string, campaignID string) (bool, error) {
	return g.Status.Completed(ctx, organizationID, campaignID)
}

// VersionModuleGate lets the approval orchestrator open and settle artifact
// versions without importing the version service.
type VersionModuleGate struct {
	Versions versionservice.Module
}

func (g VersionModuleGate) CreatePendingVersion(
	ctx context.Context,
	organizationID string,
	campaignID string,
) (approvalports.PendingVersion, error) {
	version, err := g.Versions.CreateVersion.Execute(ctx, versioncommands.CreateVersionCommand{
		OrganizationID: organizationID,
		CampaignID:     campaignID,
		Status:         versionentities.VersionStatusPendingCustomer,
	})
	if err != nil {
		return approvalports.PendingVersion{}, err
	}
	return approvalports.PendingVersion{
		VersionID: version.VersionID,
		Number:    version.Number,
	}, nil
}

func (g VersionModuleGate) ApproveVersion(ctx context.Context, organizationID string, versionID string) error {
	_, err := g.Versions.UpdateStatus.Execute(ctx, versioncommands.UpdateStatusCommand{
		OrganizationID: organizationID,
		VersionID:      versionID,
		NewStatus:      versionentities.VersionStatusApproved,
	})
	return err
}

func (g VersionModuleGate) RejectVersion(ctx context.Context, organizationID string, versionID string) error {
	_, err := g.Versions.UpdateStatus.Execute(ctx, versioncommands.UpdateStatusCommand{
		OrganizationID: organizationID,
		VersionID:      versionID,
		NewStatus:      versionentities.VersionStatusRejected,
	})
	return err
}

// CampaignModuleGate applies workflow-driven campaign transitions.
type CampaignModuleGate struct {
	Campaigns campaignservice.Module
}

func (g CampaignModuleGate) AttachWorkflow(ctx context.Context, organizationID string, campaignID string, workflowID string) error {
	return g.Campaigns.AttachWorkflow.Execute(ctx, campaigncommands.AttachWorkflowCommand{
		OrganizationID: organizationID,
		CampaignID:     campaignID,
		WorkflowID:     workflowID,
	})
}

func (g CampaignModuleGate) MarkApproved(ctx context.Context, organizationID string, campaignID string) error {
	_, err := g.Campaigns.ChangeStatus.Execute(ctx, campaigncommands.ChangeStatusCommand{
		OrganizationID: organizationID,
		CampaignID:     campaignID,
		TargetStatus:   campaignentities.CampaignStatusApproved,
		ActorID:        workflowActor,
	})
	return err
}

func (g CampaignModuleGate) MarkChangesRequested(ctx context.Context, organizationID string, campaignID string) error {
	_, err := g.Campaigns.ChangeStatus.Execute(ctx, campaigncommands.ChangeStatusCommand{
		OrganizationID: organizationID,
		CampaignID:     campaignID,
		TargetStatus:   campaignentities.CampaignStatusChangesRequested,
		ActorID:        workflowActor,
	})
	return err
}

// CampaignSummaryReader narrows a campaign to the name and status shown on
// the public share page.
type CampaignSummaryReader struct {
	Campaigns campaignservice.Module
}

func (r CampaignSummaryReader) CampaignSummary(ctx context.Context, organizationID string, campaignID string) (shareports.CampaignSummary, error) {
	campaign, err := r.Campaigns.GetCampaign.Execute(ctx, organizationID, campaignID)
	if err != nil {
		return shareports.CampaignSummary{}, err
	}
	return shareports.CampaignSummary{
		Name:   campaign.Name,
		Status: string(campaign.Status),
	}, nil
}

// VersionSummaryReader exposes the campaign's current version to the share
// page without internal identifiers.
type VersionSummaryReader struct {
	Versions versionservice.Module
}

func (r VersionSummaryReader) CurrentVersion(ctx context.Context, organizationID string, campaignID string) (shareports.VersionSummary, error) {
	version, err := r.Versions.GetCurrentVersion.Execute(ctx, organizationID, campaignID)
	if err != nil {
		return shareports.VersionSummary{}, err
	}
	return shareports.VersionSummary{
		Number:      version.Number,
		Status:      string(version.Status),
		DownloadRef: version.DownloadRef,
		PageCount:   version.PageCount,
		WordCount:   version.WordCount,
		CreatedAt:   version.CreatedAt,
	}, nil
}

// ApprovalGatewayAdapter forwards share-gateway actions to the approval
// orchestrator and translates its errors into the gateway's vocabulary.
type ApprovalGatewayAdapter struct {
	Approvals approvalservice.Module
}

func (a ApprovalGatewayAdapter) WorkflowState(ctx context.Context, organizationID string, workflowID string) (shareports.WorkflowView, error) {
	workflow, err := a.Approvals.GetWorkflow.Execute(ctx, organizationID, workflowID)
	if err != nil {
		return shareports.WorkflowView{}, translateApprovalError(err)
	}
	return workflowView(workflow), nil
}

func (a ApprovalGatewayAdapter) MarkViewed(ctx context.Context, organizationID string, workflowID string, actorID string) (shareports.WorkflowView, error) {
	workflow, err := a.Approvals.MarkViewed.Execute(ctx, approvalcommands.MarkViewedCommand{
		OrganizationID: organizationID,
		WorkflowID:     workflowID,
		ActorID:        actorID,
	})
	if err != nil {
		return shareports.WorkflowView{}, translateApprovalError(err)
	}
	return workflowView(workflow), nil
}

func (a ApprovalGatewayAdapter) SubmitDecision(
	ctx context.Context,
	organizationID string,
	workflowID string,
	outcome string,
	comment string,
	inlineComments []shareports.InlineComment,
) (shareports.WorkflowView, error) {
	inline := make([]approvalentities.InlineComment, 0, len(inlineComments))
	for _, item := range inlineComments {
		inline = append(inline, approvalentities.InlineComment{
			Page:  item.Page,
			Quote: item.Quote,
			Note:  item.Note,
		})
	}

	actorID := "customer"
	if workflow, lookupErr := a.Approvals.GetWorkflow.Execute(ctx, organizationID, workflowID); lookupErr == nil && workflow.CustomerContact != nil {
		actorID = workflow.CustomerContact.ContactID
	}

	result, err := a.Approvals.SubmitDecision.Execute(ctx, approvalcommands.SubmitDecisionCommand{
		OrganizationID: organizationID,
		WorkflowID:     workflowID,
		ActorID:        actorID,
		ActorRole:      approvalentities.ActorRoleCustomer,
		Outcome:        approvalentities.DecisionAction(outcome),
		Comment:        comment,
		InlineComments: inline,
	})
	if err != nil {
		return shareports.WorkflowView{}, translateApprovalError(err)
	}
	return workflowView(result.Workflow), nil
}

func workflowView(workflow approvalentities.Workflow) shareports.WorkflowView {
	return shareports.WorkflowView{
		Stage:     string(workflow.CurrentStage),
		Outcome:   string(workflow.Outcome),
		ViewState: string(workflow.ViewState),
	}
}

func translateApprovalError(err error) error {
	switch {
	case errors.Is(err, approvalerrors.ErrWorkflowNotFound):
		return shareerrors.ErrShareNotFound
	case errors.Is(err, approvalerrors.ErrWorkflowCompleted),
		errors.Is(err, approvalerrors.ErrInvalidDecisionStage):
		return shareerrors.ErrDecisionConflict
	case errors.Is(err, approvalerrors.ErrCommentRequired):
		return shareerrors.ErrCommentMissing
	case errors.Is(err, approvalerrors.ErrInvalidWorkflowInput):
		return shareerrors.ErrInvalidShareInput
	default:
		return err
	}
}

// TaskEngineBridge gives the stage engine its task projection. Reads map the
// task write model onto gating views; writes go straight to the repository
// because stage-driven completion and templated creation bypass user-facing
// dependency checks.
type TaskEngineBridge struct {
	Tasks taskports.TaskRepository
	Clock taskports.Clock
	IDGen taskports.IDGenerator
}

func (b TaskEngineBridge) ListProjectTasks(ctx context.Context, organizationID string, projectID string) ([]pipelineports.TaskView, error) {
	tasks, err := b.Tasks.ListTasksByProject(ctx, organizationID, projectID)
	if err != nil {
		return nil, err
	}
	views := make([]pipelineports.TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, pipelineports.TaskView{
			TaskID:                     task.TaskID,
			Status:                     string(task.Status),
			StageContext:               task.StageContext,
			RequiredForStageCompletion: task.RequiredForStageCompletion,
			BlocksStageTransition:      task.BlocksStageTransition,
			DependsOnStageCompletion:   task.DependsOnStageCompletion,
			AutoCompleteOnStageChange:  task.AutoCompleteOnStageChange,
		})
	}
	return views, nil
}

func (b TaskEngineBridge) CompleteTask(ctx context.Context, organizationID string, taskID string, completedAt time.Time) error {
	task, err := b.Tasks.GetTask(ctx, organizationID, taskID)
	if err != nil {
		return err
	}
	if !task.IsOpen() {
		return nil
	}
	task.Status = taskentities.TaskStatusCompleted
	stamped := completedAt.UTC()
	task.CompletedAt = &stamped
	task.UpdatedAt = stamped
	return b.Tasks.UpdateTask(ctx, task)
}

func (b TaskEngineBridge) CreateStageTask(ctx context.Context, spec pipelineports.StageTaskSpec) error {
	taskID, err := b.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	now := b.Clock.Now().UTC()
	task := taskentities.Task{
		TaskID:                     taskID,
		OrganizationID:             spec.OrganizationID,
		ProjectID:                  spec.ProjectID,
		Title:                      spec.Title,
		Status:                     taskentities.TaskStatusPending,
		RequiredForStageCompletion: spec.RequiredForStageCompletion,
		BlocksStageTransition:      spec.BlocksStageTransition,
		StageContext:               spec.StageContext,
		AutoCreated:                true,
		AutoCompleteOnStageChange:  spec.AutoCompleteOnStageChange,
		DueAt:                      spec.DueAt,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
	if spec.DeadlineRules != nil {
		task.DeadlineRules = &taskentities.DeadlineRules{
			DaysAfterStageEntry: spec.DeadlineRules.DaysAfterStageEntry,
			CascadeDelay:        spec.DeadlineRules.CascadeDelay,
		}
	}
	return b.Tasks.CreateTask(ctx, task)
}
