package unit

import (
	"context"
	"errors"
	"testing"

	versionservice "pressroom/contexts/campaign-approval/version-service"
	"pressroom/contexts/campaign-approval/version-service/adapters/memory"
	domainerrors "pressroom/contexts/campaign-approval/version-service/domain/errors"
	httptransport "pressroom/contexts/campaign-approval/version-service/transport/http"
)

func TestVersionNumbersAreMonotonic(t *testing.T) {
	module := versionservice.NewInMemoryModule(nil, nil, nil)

	for expected := 1; expected <= 3; expected++ {
		resp, err := module.Handler.CreateVersionHandler(
			context.Background(), "org-1", "campaign-1",
			httptransport.CreateVersionRequest{Status: "draft"},
		)
		if err != nil {
			t.Fatalf("create version %d should succeed: %v", expected, err)
		}
		if resp.Version.Number != expected {
			t.Fatalf("expected number %d, got %d", expected, resp.Version.Number)
		}
	}
}

func TestNewPendingVersionSupersedesPreviousPending(t *testing.T) {
	module := versionservice.NewInMemoryModule(nil, nil, nil)

	first, err := module.Handler.CreateVersionHandler(
		context.Background(), "org-1", "campaign-1",
		httptransport.CreateVersionRequest{Status: "pending_customer"},
	)
	if err != nil {
		t.Fatalf("first pending version should succeed: %v", err)
	}

	second, err := module.Handler.CreateVersionHandler(
		context.Background(), "org-1", "campaign-1",
		httptransport.CreateVersionRequest{Status: "pending_customer"},
	)
	if err != nil {
		t.Fatalf("second pending version should succeed: %v", err)
	}
	if second.Version.Status != "pending_customer" {
		t.Fatalf("new version must be the pending one, got %s", second.Version.Status)
	}

	superseded, err := module.Store.GetVersion(context.Background(), "org-1", first.Version.VersionID)
	if err != nil {
		t.Fatalf("fetch superseded version: %v", err)
	}
	if string(superseded.Status) != "rejected" {
		t.Fatalf("superseded pending version must be rejected, got %s", superseded.Status)
	}
}

func TestPromotingSecondVersionToPendingRefused(t *testing.T) {
	module := versionservice.NewInMemoryModule(nil, nil, nil)

	if _, err := module.Handler.CreateVersionHandler(
		context.Background(), "org-1", "campaign-1",
		httptransport.CreateVersionRequest{Status: "pending_customer"},
	); err != nil {
		t.Fatalf("pending version should succeed: %v", err)
	}

	draft, err := module.Handler.CreateVersionHandler(
		context.Background(), "org-1", "campaign-1",
		httptransport.CreateVersionRequest{Status: "draft"},
	)
	if err != nil {
		t.Fatalf("draft version should succeed: %v", err)
	}

	_, err = module.Handler.UpdateStatusHandler(
		context.Background(), "org-1", draft.Version.VersionID,
		httptransport.UpdateStatusRequest{Status: "pending_customer"},
	)
	if !errors.Is(err, domainerrors.ErrPendingVersionExists) {
		t.Fatalf("expected pending conflict, got %v", err)
	}
}

func TestVersionTransitionTable(t *testing.T) {
	module := versionservice.NewInMemoryModule(nil, nil, nil)

	created, err := module.Handler.CreateVersionHandler(
		context.Background(), "org-1", "campaign-1",
		httptransport.CreateVersionRequest{Status: "draft"},
	)
	if err != nil {
		t.Fatalf("create should succeed: %v", err)
	}

	_, err = module.Handler.UpdateStatusHandler(
		context.Background(), "org-1", created.Version.VersionID,
		httptransport.UpdateStatusRequest{Status: "approved"},
	)
	if !errors.Is(err, domainerrors.ErrInvalidVersionTransition) {
		t.Fatalf("draft cannot settle directly, got %v", err)
	}

	promoted, err := module.Handler.UpdateStatusHandler(
		context.Background(), "org-1", created.Version.VersionID,
		httptransport.UpdateStatusRequest{Status: "pending_customer"},
	)
	if err != nil {
		t.Fatalf("promotion should succeed: %v", err)
	}

	settled, err := module.Handler.UpdateStatusHandler(
		context.Background(), "org-1", promoted.Version.VersionID,
		httptransport.UpdateStatusRequest{Status: "approved"},
	)
	if err != nil {
		t.Fatalf("approval should succeed: %v", err)
	}

	_, err = module.Handler.UpdateStatusHandler(
		context.Background(), "org-1", settled.Version.VersionID,
		httptransport.UpdateStatusRequest{Status: "rejected"},
	)
	if !errors.Is(err, domainerrors.ErrInvalidVersionTransition) {
		t.Fatalf("settled versions are immutable, got %v", err)
	}
}

func TestRenderFailureCreatesNoVersion(t *testing.T) {
	module := versionservice.NewInMemoryModule(nil, memory.FailingRenderer{}, nil)

	_, err := module.Handler.CreateVersionHandler(
		context.Background(), "org-1", "campaign-1",
		httptransport.CreateVersionRequest{Status: "draft"},
	)
	if !errors.Is(err, domainerrors.ErrRenderFailed) {
		t.Fatalf("expected render failure, got %v", err)
	}

	list, err := module.Handler.ListVersionsHandler(context.Background(), "org-1", "campaign-1")
	if err != nil {
		t.Fatalf("list should succeed: %v", err)
	}
	if len(list.Items) != 0 {
		t.Fatalf("failed render must not persist a version, got %d", len(list.Items))
	}
}

func TestCurrentVersionIsHighestNumber(t *testing.T) {
	module := versionservice.NewInMemoryModule(nil, nil, nil)

	for i := 0; i < 2; i++ {
		if _, err := module.Handler.CreateVersionHandler(
			context.Background(), "org-1", "campaign-1",
			httptransport.CreateVersionRequest{Status: "draft"},
		); err != nil {
			t.Fatalf("create should succeed: %v", err)
		}
	}

	current, err := module.Handler.GetCurrentVersionHandler(context.Background(), "org-1", "campaign-1")
	if err != nil {
		t.Fatalf("current lookup should succeed: %v", err)
	}
	if current.Version.Number != 2 {
		t.Fatalf("expected current number 2, got %d", current.Version.Number)
	}
}
