package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	approvalmemory "pressroom/contexts/campaign-approval/approval-service/adapters/memory"
	approvalqueries "pressroom/contexts/campaign-approval/approval-service/application/queries"
	campaignservice "pressroom/contexts/campaign-approval/campaign-service"
	"pressroom/contexts/campaign-approval/campaign-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/campaign-service/domain/errors"
	httptransport "pressroom/contexts/campaign-approval/campaign-service/transport/http"
	"pressroom/internal/app/bootstrap"
)

func seedCampaign(status entities.CampaignStatus) entities.Campaign {
	now := time.Now().UTC().Add(-time.Hour)
	return entities.Campaign{
		CampaignID:     "campaign-1",
		OrganizationID: "org-1",
		Name:           "Spring Launch",
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestCampaignHappyPathTransitions(t *testing.T) {
	module := campaignservice.NewInMemoryModule([]entities.Campaign{seedCampaign(entities.CampaignStatusDraft)}, nil, nil)

	for _, target := range []string{"in_review", "approved", "scheduled", "sending", "sent", "archived"} {
		resp, err := module.Handler.ChangeStatusHandler(
			context.Background(), "org-1", "user-1", "campaign-1",
			httptransport.ChangeStatusRequest{Status: target},
		)
		if err != nil {
			t.Fatalf("transition to %s should succeed: %v", target, err)
		}
		if resp.Campaign.Status != target {
			t.Fatalf("expected status %s, got %s", target, resp.Campaign.Status)
		}
	}
}

func TestCampaignIllegalTransitionRefused(t *testing.T) {
	module := campaignservice.NewInMemoryModule([]entities.Campaign{seedCampaign(entities.CampaignStatusDraft)}, nil, nil)

	_, err := module.Handler.ChangeStatusHandler(
		context.Background(), "org-1", "user-1", "campaign-1",
		httptransport.ChangeStatusRequest{Status: "sent"},
	)
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	history, err := module.Handler.StatusHistoryHandler(context.Background(), "org-1", "campaign-1")
	if err != nil {
		t.Fatalf("history lookup failed: %v", err)
	}
	if len(history.Items) != 0 {
		t.Fatalf("refused transition must not write history, got %d entries", len(history.Items))
	}
}

func TestCampaignApprovedRequiresCompletedWorkflow(t *testing.T) {
	gate := bootstrap.ApprovalStatusGate{
		Status: approvalqueries.ApprovalStatusUseCase{Workflows: approvalmemory.NewStore(nil)},
	}
	module := campaignservice.NewInMemoryModule([]entities.Campaign{seedCampaign(entities.CampaignStatusInReview)}, gate, nil)

	_, err := module.Handler.ChangeStatusHandler(
		context.Background(), "org-1", "user-1", "campaign-1",
		httptransport.ChangeStatusRequest{Status: "approved"},
	)
	if !errors.Is(err, domainerrors.ErrApprovalPending) {
		t.Fatalf("expected approval pending, got %v", err)
	}
}

func TestCampaignUnknownOrganizationScope(t *testing.T) {
	module := campaignservice.NewInMemoryModule([]entities.Campaign{seedCampaign(entities.CampaignStatusDraft)}, nil, nil)

	_, err := module.Handler.GetCampaignHandler(context.Background(), "org-other", "campaign-1")
	if !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected not found across organizations, got %v", err)
	}
}

func TestCampaignStatusHistoryOrder(t *testing.T) {
	module := campaignservice.NewInMemoryModule([]entities.Campaign{seedCampaign(entities.CampaignStatusDraft)}, nil, nil)

	for _, target := range []string{"in_review", "changes_requested", "in_review"} {
		if _, err := module.Handler.ChangeStatusHandler(
			context.Background(), "org-1", "user-1", "campaign-1",
			httptransport.ChangeStatusRequest{Status: target},
		); err != nil {
			t.Fatalf("transition to %s should succeed: %v", target, err)
		}
	}

	history, err := module.Handler.StatusHistoryHandler(context.Background(), "org-1", "campaign-1")
	if err != nil {
		t.Fatalf("history lookup failed: %v", err)
	}
	if len(history.Items) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(history.Items))
	}
	expected := []string{"in_review", "changes_requested", "in_review"}
	for i, entry := range history.Items {
		if entry.ToStatus != expected[i] {
			t.Fatalf("entry %d: expected to_status %s, got %s", i, expected[i], entry.ToStatus)
		}
	}
}

func TestCampaignCreateThenFetch(t *testing.T) {
	module := campaignservice.NewInMemoryModule(nil, nil, nil)

	created, err := module.Handler.CreateCampaignHandler(
		context.Background(), "org-1", "user-1",
		httptransport.CreateCampaignRequest{Name: "Holiday Push"},
	)
	if err != nil {
		t.Fatalf("create should succeed: %v", err)
	}
	if created.Campaign.Status != string(entities.CampaignStatusDraft) {
		t.Fatalf("new campaigns start in draft, got %s", created.Campaign.Status)
	}

	fetched, err := module.Handler.GetCampaignHandler(context.Background(), "org-1", created.Campaign.CampaignID)
	if err != nil {
		t.Fatalf("fetch should succeed: %v", err)
	}
	if fetched.Campaign.Name != "Holiday Push" {
		t.Fatalf("expected name round-trip, got %s", fetched.Campaign.Name)
	}
}
