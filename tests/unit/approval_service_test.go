package unit

import (
	"context"
	"errors"
	"testing"

	approvalservice "pressroom/contexts/campaign-approval/approval-service"
	domainerrors "pressroom/contexts/campaign-approval/approval-service/domain/errors"
	httptransport "pressroom/contexts/campaign-approval/approval-service/transport/http"
)

func startTeamAndCustomerWorkflow(t *testing.T, module approvalservice.Module, approvers []string) httptransport.WorkflowDTO {
	t.Helper()
	resp, err := module.Handler.StartWorkflowHandler(
		context.Background(), "org-1", "user-1",
		httptransport.StartWorkflowRequest{
			CampaignID:      "campaign-1",
			RequireTeam:     true,
			RequireCustomer: true,
			ApproverIDs:     approvers,
			CustomerContact: &httptransport.CustomerContactDTO{
				ContactID: "contact-1",
				Name:      "Dana Customer",
				Email:     "dana@example.com",
			},
		},
	)
	if err != nil {
		t.Fatalf("start workflow should succeed: %v", err)
	}
	return resp.Workflow
}

func TestWorkflowRequiresAtLeastOneStage(t *testing.T) {
	module := approvalservice.NewInMemoryModule(nil, nil, nil, nil, nil)

	_, err := module.Handler.StartWorkflowHandler(
		context.Background(), "org-1", "user-1",
		httptransport.StartWorkflowRequest{CampaignID: "campaign-1"},
	)
	if !errors.Is(err, domainerrors.ErrInvalidWorkflowConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

func TestAllTeamApprovalsAdvanceToCustomerStage(t *testing.T) {
	module := approvalservice.NewInMemoryModule(nil, nil, nil, nil, nil)
	workflow := startTeamAndCustomerWorkflow(t, module, []string{"approver-a", "approver-b"})

	first, err := module.Handler.SubmitDecisionHandler(
		context.Background(), "org-1", workflow.WorkflowID,
		httptransport.SubmitDecisionRequest{ActorID: "approver-a", ActorRole: "team", Outcome: "approved"},
	)
	if err != nil {
		t.Fatalf("first approval should succeed: %v", err)
	}
	if first.Workflow.CurrentStage != "team" {
		t.Fatalf("stage must hold at team until everyone approves, got %s", first.Workflow.CurrentStage)
	}

	second, err := module.Handler.SubmitDecisionHandler(
		context.Background(), "org-1", workflow.WorkflowID,
		httptransport.SubmitDecisionRequest{ActorID: "approver-b", ActorRole: "team", Outcome: "approved"},
	)
	if err != nil {
		t.Fatalf("second approval should succeed: %v", err)
	}
	if second.Workflow.CurrentStage != "customer" {
		t.Fatalf("expected customer stage, got %s", second.Workflow.CurrentStage)
	}
	if second.Workflow.ActiveVersionID == "" {
		t.Fatalf("advancing to customer must open a pending version")
	}
}

func TestSingleTeamRejectionCompletesWorkflow(t *testing.T) {
	module := approvalservice.NewInMemoryModule(nil, nil, nil, nil, nil)
	workflow := startTeamAndCustomerWorkflow(t, module, []string{"approver-a", "approver-b"})

	resp, err := module.Handler.SubmitDecisionHandler(
		context.Background(), "org-1", workflow.WorkflowID,
		httptransport.SubmitDecisionRequest{ActorID: "approver-b", ActorRole: "team", Outcome: "rejected", Comment: "off brand"},
	)
	if err != nil {
		t.Fatalf("rejection should succeed: %v", err)
	}
	if resp.Workflow.CurrentStage != "completed" || resp.Workflow.Outcome != "rejected" {
		t.Fatalf("expected completed/rejected, got %s/%s", resp.Workflow.CurrentStage, resp.Workflow.Outcome)
	}
	if resp.Workflow.ActiveVersionID != "" {
		t.Fatalf("team rejection must not open a version")
	}

	_, err = module.Handler.SubmitDecisionHandler(
		context.Background(), "org-1", workflow.WorkflowID,
		httptransport.SubmitDecisionRequest{ActorID: "approver-a", ActorRole: "team", Outcome: "approved"},
	)
	if !errors.Is(err, domainerrors.ErrWorkflowCompleted) {
		t.Fatalf("completed workflow must refuse decisions, got %v", err)
	}
}

func TestDuplicateApproverDecisionIsIdempotent(t *testing.T) {
	module := approvalservice.NewInMemoryModule(nil, nil, nil, nil, nil)
	workflow := startTeamAndCustomerWorkflow(t, module, []string{"approver-a", "approver-b"})

	if _, err := module.Handler.SubmitDecisionHandler(
		context.Background(), "org-1", workflow.WorkflowID,
		httptransport.SubmitDecisionRequest{ActorID: "approver-a", ActorRole: "team", Outcome: "approved"},
	); err != nil {
		t.Fatalf("first submission should succeed: %v", err)
	}

	replay, err := module.Handler.SubmitDecisionHandler(
		context.Background(), "org-1", workflow.WorkflowID,
		httptransport.SubmitDecisionRequest{ActorID: "approver-a", ActorRole: "team", Outcome: "approved"},
	)
	if err != nil {
		t.Fatalf("duplicate submission should be a no-op: %v", err)
	}
	if replay.Applied {
		t.Fatalf("duplicate submission must not report applied")
	}

	history, err := module.Handler.HistoryHandler(context.Background(), "org-1", workflow.WorkflowID)
	if err != nil {
		t.Fatalf("history lookup failed: %v", err)
	}
	if len(history.Items) != 1 {
		t.Fatalf("expected one decision event, got %d", len(history.Items))
	}
}

func TestCustomerChangesRequestedRequiresComment(t *testing.T) {
	module := approvalservice.NewInMemoryModule(nil, nil, nil, nil, nil)
	resp, err := module.Handler.StartWorkflowHandler(
		context.Background(), "org-1", "user-1",
		httptransport.StartWorkflowRequest{
			CampaignID:      "campaign-1",
			RequireCustomer: true,
			CustomerContact: &httptransport.CustomerContactDTO{ContactID: "contact-1", Name: "Dana", Email: "dana@example.com"},
		},
	)
	if err != nil {
		t.Fatalf("customer-only workflow should start: %v", err)
	}
	if resp.Workflow.CurrentStage != "customer" {
		t.Fatalf("workflow without team stage starts at customer, got %s", resp.Workflow.CurrentStage)
	}

	_, err = module.Handler.SubmitDecisionHandler(
		context.Background(), "org-1", resp.Workflow.WorkflowID,
		httptransport.SubmitDecisionRequest{ActorID: "contact-1", ActorRole: "customer", Outcome: "changes_requested"},
	)
	if !errors.Is(err, domainerrors.ErrCommentRequired) {
		t.Fatalf("expected comment required, got %v", err)
	}

	decided, err := module.Handler.SubmitDecisionHandler(
		context.Background(), "org-1", resp.Workflow.WorkflowID,
		httptransport.SubmitDecisionRequest{
			ActorID:   "contact-1",
			ActorRole: "customer",
			Outcome:   "changes_requested",
			Comment:   "fix the typo on page two",
			InlineComments: []httptransport.InlineCommentDTO{
				{Page: 2, Quote: "teh launch", Note: "typo"},
			},
		},
	)
	if err != nil {
		t.Fatalf("commented changes request should succeed: %v", err)
	}
	if decided.Workflow.Outcome != "changes_requested" || decided.Workflow.CurrentStage != "completed" {
		t.Fatalf("expected completed/changes_requested, got %s/%s", decided.Workflow.CurrentStage, decided.Workflow.Outcome)
	}
}

func TestTeamDecisionRefusedAtCustomerStage(t *testing.T) {
	module := approvalservice.NewInMemoryModule(nil, nil, nil, nil, nil)
	workflow := startTeamAndCustomerWorkflow(t, module, []string{"approver-a"})

	if _, err := module.Handler.SubmitDecisionHandler(
		context.Background(), "org-1", workflow.WorkflowID,
		httptransport.SubmitDecisionRequest{ActorID: "approver-a", ActorRole: "team", Outcome: "approved"},
	); err != nil {
		t.Fatalf("team approval should succeed: %v", err)
	}

	_, err := module.Handler.SubmitDecisionHandler(
		context.Background(), "org-1", workflow.WorkflowID,
		httptransport.SubmitDecisionRequest{ActorID: "approver-a", ActorRole: "team", Outcome: "approved"},
	)
	if !errors.Is(err, domainerrors.ErrInvalidDecisionStage) {
		t.Fatalf("expected stage mismatch, got %v", err)
	}
}

func TestSecondCycleIncrementsCycleNumber(t *testing.T) {
	module := approvalservice.NewInMemoryModule(nil, nil, nil, nil, nil)
	first := startTeamAndCustomerWorkflow(t, module, []string{"approver-a"})
	if first.Cycle != 1 {
		t.Fatalf("expected cycle 1, got %d", first.Cycle)
	}

	if _, err := module.Handler.SubmitDecisionHandler(
		context.Background(), "org-1", first.WorkflowID,
		httptransport.SubmitDecisionRequest{ActorID: "approver-a", ActorRole: "team", Outcome: "rejected", Comment: "redo"},
	); err != nil {
		t.Fatalf("rejection should succeed: %v", err)
	}

	second := startTeamAndCustomerWorkflow(t, module, []string{"approver-a"})
	if second.Cycle != 2 {
		t.Fatalf("expected cycle 2, got %d", second.Cycle)
	}
}
