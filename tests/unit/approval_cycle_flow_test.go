package unit

import (
	"context"
	"errors"
	"testing"

	approvalservice "pressroom/contexts/campaign-approval/approval-service"
	approvalmemory "pressroom/contexts/campaign-approval/approval-service/adapters/memory"
	approvalqueries "pressroom/contexts/campaign-approval/approval-service/application/queries"
	approvalerrors "pressroom/contexts/campaign-approval/approval-service/domain/errors"
	approvaltransport "pressroom/contexts/campaign-approval/approval-service/transport/http"
	campaignservice "pressroom/contexts/campaign-approval/campaign-service"
	campaigntransport "pressroom/contexts/campaign-approval/campaign-service/transport/http"
	sharegateway "pressroom/contexts/campaign-approval/share-gateway"
	sharetransport "pressroom/contexts/campaign-approval/share-gateway/transport/http"
	versionservice "pressroom/contexts/campaign-approval/version-service"
	"pressroom/internal/app/bootstrap"
)

type approvalCycleFixture struct {
	campaigns campaignservice.Module
	versions  versionservice.Module
	approvals approvalservice.Module
	share     sharegateway.Module
}

// newApprovalCycleFixture assembles the campaign, version, approval, and
// share modules over memory stores with the same gate wiring the composition
// root uses against postgres.
func newApprovalCycleFixture() approvalCycleFixture {
	approvalStore := approvalmemory.NewStore(nil)
	statusGate := bootstrap.ApprovalStatusGate{
		Status: approvalqueries.ApprovalStatusUseCase{Workflows: approvalStore},
	}
	campaignModule := campaignservice.NewInMemoryModule(nil, statusGate, nil)
	versionModule := versionservice.NewInMemoryModule(nil, nil, nil)
	approvalModule := approvalservice.NewModule(approvalservice.Dependencies{
		Workflows:   approvalStore,
		Decisions:   approvalStore,
		Versions:    bootstrap.VersionModuleGate{Versions: versionModule},
		Campaigns:   bootstrap.CampaignModuleGate{Campaigns: campaignModule},
		Outbox:      approvalStore,
		Clock:       approvalStore,
		IDGenerator: approvalStore,
	})
	shareModule := sharegateway.NewInMemoryModule(
		nil,
		bootstrap.CampaignSummaryReader{Campaigns: campaignModule},
		bootstrap.VersionSummaryReader{Versions: versionModule},
		bootstrap.ApprovalGatewayAdapter{Approvals: approvalModule},
		nil,
	)
	return approvalCycleFixture{
		campaigns: campaignModule,
		versions:  versionModule,
		approvals: approvalModule,
		share:     shareModule,
	}
}

func (f approvalCycleFixture) startWorkflow(t *testing.T, campaignID string) approvaltransport.WorkflowDTO {
	t.Helper()
	resp, err := f.approvals.Handler.StartWorkflowHandler(
		context.Background(), "org-1", "user-1",
		approvaltransport.StartWorkflowRequest{
			CampaignID:      campaignID,
			RequireTeam:     true,
			RequireCustomer: true,
			ApproverIDs:     []string{"approver-a"},
			CustomerContact: &approvaltransport.CustomerContactDTO{
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

func TestFullApprovalCycleThroughShareLink(t *testing.T) {
	ctx := context.Background()
	fixture := newApprovalCycleFixture()

	created, err := fixture.campaigns.Handler.CreateCampaignHandler(
		ctx, "org-1", "user-1",
		campaigntransport.CreateCampaignRequest{Name: "Autumn product launch"},
	)
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	campaignID := created.Campaign.CampaignID

	if _, err := fixture.campaigns.Handler.ChangeStatusHandler(
		ctx, "org-1", "user-1", campaignID,
		campaigntransport.ChangeStatusRequest{Status: "in_review"},
	); err != nil {
		t.Fatalf("move campaign to review: %v", err)
	}

	workflow := fixture.startWorkflow(t, campaignID)

	fetched, err := fixture.campaigns.Handler.GetCampaignHandler(ctx, "org-1", campaignID)
	if err != nil {
		t.Fatalf("fetch campaign: %v", err)
	}
	if fetched.Campaign.ActiveWorkflowID != workflow.WorkflowID {
		t.Fatalf("starting a workflow must attach it to the campaign, got %q", fetched.Campaign.ActiveWorkflowID)
	}

	approved, err := fixture.approvals.Handler.SubmitDecisionHandler(
		ctx, "org-1", workflow.WorkflowID,
		approvaltransport.SubmitDecisionRequest{ActorID: "approver-a", ActorRole: "team", Outcome: "approved"},
	)
	if err != nil {
		t.Fatalf("team approval: %v", err)
	}
	if approved.Workflow.CurrentStage != "customer" {
		t.Fatalf("expected customer stage after full team approval, got %s", approved.Workflow.CurrentStage)
	}

	current, err := fixture.versions.Handler.GetCurrentVersionHandler(ctx, "org-1", campaignID)
	if err != nil {
		t.Fatalf("fetch current version: %v", err)
	}
	if current.Version.Number != 1 || current.Version.Status != "pending_customer" {
		t.Fatalf("expected pending version 1, got number %d status %s", current.Version.Number, current.Version.Status)
	}

	link, err := fixture.share.Handler.CreateLinkHandler(
		ctx, "org-1",
		sharetransport.CreateLinkRequest{CampaignID: campaignID, WorkflowID: workflow.WorkflowID},
	)
	if err != nil {
		t.Fatalf("create share link: %v", err)
	}

	resolved, err := fixture.share.Handler.ResolveHandler(ctx, link.Link.Token)
	if err != nil {
		t.Fatalf("resolve share token: %v", err)
	}
	if resolved.Campaign.Status != "in_review" || resolved.Version.Number != 1 {
		t.Fatalf("unexpected share page projection: %+v", resolved)
	}

	viewed, err := fixture.share.Handler.MarkViewedHandler(ctx, link.Link.Token)
	if err != nil {
		t.Fatalf("mark viewed: %v", err)
	}
	if viewed.ViewState != "viewed" {
		t.Fatalf("expected viewed state, got %s", viewed.ViewState)
	}

	decided, err := fixture.share.Handler.DecideHandler(
		ctx, link.Link.Token,
		sharetransport.DecideRequest{Outcome: "changes_requested", Comment: "fix the second headline"},
	)
	if err != nil {
		t.Fatalf("customer decision: %v", err)
	}
	if decided.Status != "changes_requested" {
		t.Fatalf("expected changes_requested outcome, got %s", decided.Status)
	}

	afterDecision, err := fixture.campaigns.Handler.GetCampaignHandler(ctx, "org-1", campaignID)
	if err != nil {
		t.Fatalf("fetch campaign after decision: %v", err)
	}
	if afterDecision.Campaign.Status != "changes_requested" {
		t.Fatalf("campaign must return to an editable state, got %s", afterDecision.Campaign.Status)
	}

	rejectedVersion, err := fixture.versions.Handler.GetCurrentVersionHandler(ctx, "org-1", campaignID)
	if err != nil {
		t.Fatalf("fetch version after decision: %v", err)
	}
	if rejectedVersion.Version.Status != "rejected" {
		t.Fatalf("customer changes request must reject the version, got %s", rejectedVersion.Version.Status)
	}

	if _, err := fixture.campaigns.Handler.ChangeStatusHandler(
		ctx, "org-1", "user-1", campaignID,
		campaigntransport.ChangeStatusRequest{Status: "in_review"},
	); err != nil {
		t.Fatalf("second review round: %v", err)
	}

	second := fixture.startWorkflow(t, campaignID)
	if second.Cycle != 2 {
		t.Fatalf("expected workflow cycle 2, got %d", second.Cycle)
	}

	if _, err := fixture.approvals.Handler.SubmitDecisionHandler(
		ctx, "org-1", second.WorkflowID,
		approvaltransport.SubmitDecisionRequest{ActorID: "approver-a", ActorRole: "team", Outcome: "approved"},
	); err != nil {
		t.Fatalf("second cycle approval: %v", err)
	}

	secondVersion, err := fixture.versions.Handler.GetCurrentVersionHandler(ctx, "org-1", campaignID)
	if err != nil {
		t.Fatalf("fetch second version: %v", err)
	}
	if secondVersion.Version.Number != 2 || secondVersion.Version.Status != "pending_customer" {
		t.Fatalf("second cycle must open version 2, got number %d status %s", secondVersion.Version.Number, secondVersion.Version.Status)
	}
}

func TestRefusedDuplicateStartLeavesLiveCycleIntact(t *testing.T) {
	ctx := context.Background()
	versionModule := versionservice.NewInMemoryModule(nil, nil, nil)
	approvalStore := approvalmemory.NewStore(nil)
	approvalModule := approvalservice.NewModule(approvalservice.Dependencies{
		Workflows:   approvalStore,
		Decisions:   approvalStore,
		Versions:    bootstrap.VersionModuleGate{Versions: versionModule},
		Campaigns:   approvalmemory.NullCampaignGate{},
		Outbox:      approvalStore,
		Clock:       approvalStore,
		IDGenerator: approvalStore,
	})

	startCustomerOnly := func() (approvaltransport.StartWorkflowResponse, error) {
		return approvalModule.Handler.StartWorkflowHandler(
			ctx, "org-1", "user-1",
			approvaltransport.StartWorkflowRequest{
				CampaignID:      "campaign-1",
				RequireCustomer: true,
				CustomerContact: &approvaltransport.CustomerContactDTO{
					ContactID: "contact-1",
					Name:      "Dana Customer",
					Email:     "dana@example.com",
				},
			},
		)
	}

	first, err := startCustomerOnly()
	if err != nil {
		t.Fatalf("first start should succeed: %v", err)
	}
	if first.Workflow.CurrentStage != "customer" || first.Workflow.ActiveVersionID == "" {
		t.Fatalf("customer-only workflow must open at customer stage with a version, got %+v", first.Workflow)
	}

	if _, err := startCustomerOnly(); !errors.Is(err, approvalerrors.ErrWorkflowAlreadyActive) {
		t.Fatalf("duplicate start must be refused, got %v", err)
	}

	versions, err := versionModule.Store.ListVersionsByCampaign(ctx, "org-1", "campaign-1")
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if len(versions) != 1 {
		t.Fatalf("refused start must not touch the version store, got %d versions", len(versions))
	}
	if string(versions[0].Status) != "pending_customer" {
		t.Fatalf("live cycle's version must stay pending, got %s", versions[0].Status)
	}

	decided, err := approvalModule.Handler.SubmitDecisionHandler(
		ctx, "org-1", first.Workflow.WorkflowID,
		approvaltransport.SubmitDecisionRequest{ActorID: "contact-1", ActorRole: "customer", Outcome: "approved"},
	)
	if err != nil {
		t.Fatalf("customer approval on the live cycle should succeed: %v", err)
	}
	if decided.Workflow.Outcome != "approved" {
		t.Fatalf("expected approved outcome, got %s", decided.Workflow.Outcome)
	}
}
