package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	sharegateway "pressroom/contexts/campaign-approval/share-gateway"
	"pressroom/contexts/campaign-approval/share-gateway/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/share-gateway/domain/errors"
	"pressroom/contexts/campaign-approval/share-gateway/ports"
	httptransport "pressroom/contexts/campaign-approval/share-gateway/transport/http"
)

type fakeCampaignReader struct {
	status string
}

func (r fakeCampaignReader) CampaignSummary(_ context.Context, _ string, _ string) (ports.CampaignSummary, error) {
	status := r.status
	if status == "" {
		status = "in_review"
	}
	return ports.CampaignSummary{Name: "Spring Launch", Status: status}, nil
}

type fakeVersionReader struct{}

func (fakeVersionReader) CurrentVersion(_ context.Context, _ string, _ string) (ports.VersionSummary, error) {
	return ports.VersionSummary{
		Number:      2,
		Status:      "pending_customer",
		DownloadRef: "renders/campaign-1/v2.pdf",
		PageCount:   4,
		WordCount:   900,
		CreatedAt:   time.Now().UTC().Add(-time.Hour),
	}, nil
}

type fakeApprovalGateway struct {
	viewedCalls   int
	decisionCalls int
	decisionErr   error
}

func (g *fakeApprovalGateway) WorkflowState(_ context.Context, _ string, _ string) (ports.WorkflowView, error) {
	return ports.WorkflowView{Stage: "customer", Outcome: "pending", ViewState: "pending"}, nil
}

func (g *fakeApprovalGateway) MarkViewed(_ context.Context, _ string, _ string, _ string) (ports.WorkflowView, error) {
	g.viewedCalls++
	return ports.WorkflowView{Stage: "customer", Outcome: "pending", ViewState: "viewed"}, nil
}

func (g *fakeApprovalGateway) SubmitDecision(
	_ context.Context, _ string, _ string, outcome string, _ string, _ []ports.InlineComment,
) (ports.WorkflowView, error) {
	g.decisionCalls++
	if g.decisionErr != nil {
		return ports.WorkflowView{}, g.decisionErr
	}
	return ports.WorkflowView{Stage: "completed", Outcome: outcome, ViewState: "decided"}, nil
}

func newShareModule(seed []entities.ShareLink, campaignStatus string, gateway *fakeApprovalGateway) sharegateway.Module {
	return sharegateway.NewInMemoryModule(seed, fakeCampaignReader{status: campaignStatus}, fakeVersionReader{}, gateway, nil)
}

func seedShareLink(token string, expiresAt *time.Time, revokedAt *time.Time) entities.ShareLink {
	return entities.ShareLink{
		LinkID:         "link-1",
		OrganizationID: "org-1",
		CampaignID:     "campaign-1",
		WorkflowID:     "workflow-1",
		Token:          token,
		CreatedAt:      time.Now().UTC().Add(-time.Hour),
		ExpiresAt:      expiresAt,
		RevokedAt:      revokedAt,
	}
}

func TestResolveUnknownToken(t *testing.T) {
	module := newShareModule(nil, "", &fakeApprovalGateway{})

	_, err := module.Handler.ResolveHandler(context.Background(), "no-such-token")
	if !errors.Is(err, domainerrors.ErrShareNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResolveExposesOnlySummaries(t *testing.T) {
	module := newShareModule([]entities.ShareLink{seedShareLink("tok-1", nil, nil)}, "", &fakeApprovalGateway{})

	resp, err := module.Handler.ResolveHandler(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("resolve should succeed: %v", err)
	}
	if resp.Campaign.Name != "Spring Launch" || resp.Version.Number != 2 {
		t.Fatalf("unexpected summary payload: %+v", resp)
	}
	if resp.Stage != "customer" || resp.ViewState != "pending" {
		t.Fatalf("unexpected workflow view: %+v", resp)
	}
}

func TestExpiredTokenIsGone(t *testing.T) {
	expired := time.Now().UTC().Add(-time.Minute)
	module := newShareModule([]entities.ShareLink{seedShareLink("tok-1", &expired, nil)}, "", &fakeApprovalGateway{})

	_, err := module.Handler.ResolveHandler(context.Background(), "tok-1")
	if !errors.Is(err, domainerrors.ErrShareLinkGone) {
		t.Fatalf("expected gone for expired token, got %v", err)
	}
}

func TestRevokedLinkStopsResolving(t *testing.T) {
	module := newShareModule([]entities.ShareLink{seedShareLink("tok-1", nil, nil)}, "", &fakeApprovalGateway{})

	if err := module.Handler.RevokeLinkHandler(context.Background(), "org-1", "link-1"); err != nil {
		t.Fatalf("revoke should succeed: %v", err)
	}
	_, err := module.Handler.ResolveHandler(context.Background(), "tok-1")
	if !errors.Is(err, domainerrors.ErrShareLinkGone) {
		t.Fatalf("expected gone after revoke, got %v", err)
	}

	// Revoking again is a no-op.
	if err := module.Handler.RevokeLinkHandler(context.Background(), "org-1", "link-1"); err != nil {
		t.Fatalf("second revoke should be idempotent: %v", err)
	}
}

func TestDecideRefusedOnceCampaignSent(t *testing.T) {
	gateway := &fakeApprovalGateway{}
	module := newShareModule([]entities.ShareLink{seedShareLink("tok-1", nil, nil)}, "sent", gateway)

	_, err := module.Handler.DecideHandler(
		context.Background(), "tok-1",
		httptransport.DecideRequest{Outcome: "approved"},
	)
	if !errors.Is(err, domainerrors.ErrShareLinkGone) {
		t.Fatalf("expected gone once campaign is sent, got %v", err)
	}
	if gateway.decisionCalls != 0 {
		t.Fatalf("refused decision must not reach the orchestrator")
	}
}

func TestDecideRejectsUnknownOutcome(t *testing.T) {
	gateway := &fakeApprovalGateway{}
	module := newShareModule([]entities.ShareLink{seedShareLink("tok-1", nil, nil)}, "", gateway)

	_, err := module.Handler.DecideHandler(
		context.Background(), "tok-1",
		httptransport.DecideRequest{Outcome: "maybe"},
	)
	if !errors.Is(err, domainerrors.ErrInvalidShareInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if gateway.decisionCalls != 0 {
		t.Fatalf("invalid outcome must not reach the orchestrator")
	}
}

func TestDecideForwardsOrchestratorRefusal(t *testing.T) {
	gateway := &fakeApprovalGateway{decisionErr: domainerrors.ErrCommentMissing}
	module := newShareModule([]entities.ShareLink{seedShareLink("tok-1", nil, nil)}, "", gateway)

	_, err := module.Handler.DecideHandler(
		context.Background(), "tok-1",
		httptransport.DecideRequest{Outcome: "changes_requested"},
	)
	if !errors.Is(err, domainerrors.ErrCommentMissing) {
		t.Fatalf("expected comment missing, got %v", err)
	}
}

func TestMarkViewedForwardsToOrchestrator(t *testing.T) {
	gateway := &fakeApprovalGateway{}
	module := newShareModule([]entities.ShareLink{seedShareLink("tok-1", nil, nil)}, "", gateway)

	resp, err := module.Handler.MarkViewedHandler(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("mark viewed should succeed: %v", err)
	}
	if resp.ViewState != "viewed" {
		t.Fatalf("expected viewed state, got %s", resp.ViewState)
	}
	if gateway.viewedCalls != 1 {
		t.Fatalf("expected one forwarded call, got %d", gateway.viewedCalls)
	}
}

func TestLinkExpirerSweepsExpiredLinks(t *testing.T) {
	expired := time.Now().UTC().Add(-time.Minute)
	live := time.Now().UTC().Add(time.Hour)
	module := newShareModule([]entities.ShareLink{
		seedShareLink("tok-expired", &expired, nil),
		{
			LinkID:         "link-2",
			OrganizationID: "org-1",
			CampaignID:     "campaign-1",
			WorkflowID:     "workflow-1",
			Token:          "tok-live",
			CreatedAt:      time.Now().UTC().Add(-time.Hour),
			ExpiresAt:      &live,
		},
	}, "", &fakeApprovalGateway{})

	if err := module.LinkExpirer.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep should succeed: %v", err)
	}

	swept, err := module.Store.GetLink(context.Background(), "org-1", "link-1")
	if err != nil {
		t.Fatalf("fetch swept link: %v", err)
	}
	if swept.RevokedAt == nil {
		t.Fatalf("expired link must be revoked by the sweep")
	}

	kept, err := module.Store.GetLink(context.Background(), "org-1", "link-2")
	if err != nil {
		t.Fatalf("fetch live link: %v", err)
	}
	if kept.RevokedAt != nil {
		t.Fatalf("live link must survive the sweep")
	}
}
