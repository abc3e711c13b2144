package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	pipelineservice "pressroom/contexts/project-pipeline/pipeline-service"
	pipelinememory "pressroom/contexts/project-pipeline/pipeline-service/adapters/memory"
	"pressroom/contexts/project-pipeline/pipeline-service/domain/entities"
	domainerrors "pressroom/contexts/project-pipeline/pipeline-service/domain/errors"
	"pressroom/contexts/project-pipeline/pipeline-service/ports"
	httptransport "pressroom/contexts/project-pipeline/pipeline-service/transport/http"
)

func seedProject(stage entities.Stage) entities.Project {
	now := time.Now().UTC().Add(-time.Hour)
	return entities.Project{
		ProjectID:      "project-1",
		OrganizationID: "org-1",
		Name:           "Q3 Product PR",
		CurrentStage:   stage,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestStageMoveBlockedByRequiredTask(t *testing.T) {
	module := pipelineservice.NewInMemoryModule([]entities.Project{seedProject(entities.StageCreation)}, nil)
	module.Store.SeedTask("org-1", "project-1", ports.TaskView{
		TaskID:                     "task-draft-copy",
		Status:                     "pending",
		StageContext:               "creation",
		RequiredForStageCompletion: true,
	})

	_, err := module.Handler.StageMoveHandler(
		context.Background(), "org-1", "user-1", "project-1",
		httptransport.StageMoveRequest{TargetStage: "internal_approval"},
	)
	if !errors.Is(err, domainerrors.ErrStageMoveBlocked) {
		t.Fatalf("expected blocked move, got %v", err)
	}
	var blocked *domainerrors.BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected blocked error detail, got %T", err)
	}
	if len(blocked.TaskIDs) != 1 || blocked.TaskIDs[0] != "task-draft-copy" {
		t.Fatalf("expected blocking task id, got %v", blocked.TaskIDs)
	}

	project, err := module.Handler.GetProjectHandler(context.Background(), "org-1", "project-1")
	if err != nil {
		t.Fatalf("project lookup failed: %v", err)
	}
	if project.Project.CurrentStage != "creation" {
		t.Fatalf("blocked move must leave the stage unchanged, got %s", project.Project.CurrentStage)
	}
}

func TestBlockingTaskStopsAnyForwardMove(t *testing.T) {
	module := pipelineservice.NewInMemoryModule([]entities.Project{seedProject(entities.StageCreation)}, nil)
	module.Store.SeedTask("org-1", "project-1", ports.TaskView{
		TaskID:                "task-legal-hold",
		Status:                "in_progress",
		StageContext:          "ideas_planning",
		BlocksStageTransition: true,
	})

	_, err := module.Handler.StageMoveHandler(
		context.Background(), "org-1", "user-1", "project-1",
		httptransport.StageMoveRequest{TargetStage: "internal_approval"},
	)
	if !errors.Is(err, domainerrors.ErrStageMoveBlocked) {
		t.Fatalf("expected blocked move, got %v", err)
	}
}

func TestRevertSkipsTaskGating(t *testing.T) {
	module := pipelineservice.NewInMemoryModule([]entities.Project{seedProject(entities.StageInternalApproval)}, nil)
	module.Store.SeedTask("org-1", "project-1", ports.TaskView{
		TaskID:                "task-legal-hold",
		Status:                "pending",
		BlocksStageTransition: true,
	})

	resp, err := module.Handler.StageMoveHandler(
		context.Background(), "org-1", "user-1", "project-1",
		httptransport.StageMoveRequest{TargetStage: "creation", TriggeredBy: "revert"},
	)
	if err != nil {
		t.Fatalf("revert should bypass gating: %v", err)
	}
	if resp.Project.CurrentStage != "creation" {
		t.Fatalf("expected creation after revert, got %s", resp.Project.CurrentStage)
	}
}

func TestBackwardMoveWithoutRevertTriggerRefused(t *testing.T) {
	module := pipelineservice.NewInMemoryModule([]entities.Project{seedProject(entities.StageInternalApproval)}, nil)

	_, err := module.Handler.StageMoveHandler(
		context.Background(), "org-1", "user-1", "project-1",
		httptransport.StageMoveRequest{TargetStage: "creation"},
	)
	if !errors.Is(err, domainerrors.ErrInvalidStageMove) {
		t.Fatalf("expected invalid move, got %v", err)
	}
}

func TestStageMoveAutoCompletesDepartedStageTasks(t *testing.T) {
	module := pipelineservice.NewInMemoryModule([]entities.Project{seedProject(entities.StageCreation)}, nil)
	module.Store.SeedTask("org-1", "project-1", ports.TaskView{
		TaskID:                    "task-scratch-notes",
		Status:                    "pending",
		StageContext:              "creation",
		AutoCompleteOnStageChange: true,
	})

	resp, err := module.Handler.StageMoveHandler(
		context.Background(), "org-1", "user-1", "project-1",
		httptransport.StageMoveRequest{TargetStage: "internal_approval"},
	)
	if err != nil {
		t.Fatalf("move should succeed: %v", err)
	}
	if len(resp.AutoCompletedIDs) != 1 || resp.AutoCompletedIDs[0] != "task-scratch-notes" {
		t.Fatalf("expected auto-completed task, got %v", resp.AutoCompletedIDs)
	}
}

func TestStageEntryInstantiatesTemplates(t *testing.T) {
	module := pipelineservice.NewInMemoryModule([]entities.Project{seedProject(entities.StageCreation)}, nil)
	module.Store.SeedStageTemplates("project-1", entities.StageInternalApproval, []ports.TaskTemplate{
		{Title: "Collect sign-offs", RequiredForStageCompletion: true},
		{Title: "Prepare summary deck", DeadlineRules: &ports.DeadlineRule{DaysAfterStageEntry: 3}},
	})

	resp, err := module.Handler.StageMoveHandler(
		context.Background(), "org-1", "user-1", "project-1",
		httptransport.StageMoveRequest{TargetStage: "internal_approval"},
	)
	if err != nil {
		t.Fatalf("move should succeed: %v", err)
	}
	if resp.AutoCreatedCount != 2 {
		t.Fatalf("expected 2 instantiated tasks, got %d", resp.AutoCreatedCount)
	}
}

func TestConcurrentTransitionRefused(t *testing.T) {
	module := pipelineservice.NewInMemoryModule([]entities.Project{seedProject(entities.StageCreation)}, nil)
	if err := module.Store.ClaimTransition(context.Background(), "org-1", "project-1", entities.StageTransition{
		TargetStage: entities.StageInternalApproval,
		TriggeredBy: entities.TriggerManual,
		StartedAt:   time.Now().UTC(),
	}); err != nil {
		t.Fatalf("claim should succeed: %v", err)
	}

	_, err := module.Handler.StageMoveHandler(
		context.Background(), "org-1", "user-1", "project-1",
		httptransport.StageMoveRequest{TargetStage: "internal_approval"},
	)
	if !errors.Is(err, domainerrors.ErrTransitionInFlight) {
		t.Fatalf("expected in-flight conflict, got %v", err)
	}
}

func TestStageHistoryRecordsOccupancy(t *testing.T) {
	module := pipelineservice.NewInMemoryModule([]entities.Project{seedProject(entities.StageCreation)}, nil)

	if _, err := module.Handler.StageMoveHandler(
		context.Background(), "org-1", "user-1", "project-1",
		httptransport.StageMoveRequest{TargetStage: "internal_approval"},
	); err != nil {
		t.Fatalf("move should succeed: %v", err)
	}

	history, err := module.Handler.StageHistoryHandler(context.Background(), "org-1", "project-1")
	if err != nil {
		t.Fatalf("history lookup failed: %v", err)
	}
	if len(history.Items) != 1 {
		t.Fatalf("expected one history entry, got %d", len(history.Items))
	}
	if history.Items[0].Stage != "internal_approval" || history.Items[0].TriggeredBy != "manual" {
		t.Fatalf("unexpected history entry: %+v", history.Items[0])
	}
}

type failingStageHistory struct {
	ports.StageHistoryRepository
	err error
}

func (f failingStageHistory) ListStageHistory(context.Context, string, string) ([]entities.StageHistoryEntry, error) {
	return nil, f.err
}

func TestStageMoveSurfacesHistoryReadFailure(t *testing.T) {
	store := pipelinememory.NewStore([]entities.Project{seedProject(entities.StageCreation)})
	store.SeedTask("org-1", "project-1", ports.TaskView{
		TaskID:                   "task-media-plan",
		Status:                   "pending",
		StageContext:             "internal_approval",
		DependsOnStageCompletion: []string{"creation"},
	})
	historyErr := errors.New("stage history unavailable")
	module := pipelineservice.NewModule(pipelineservice.Dependencies{
		Projects:    store,
		History:     failingStageHistory{StageHistoryRepository: store, err: historyErr},
		Tasks:       store,
		TaskWriter:  store,
		Templates:   store,
		Clock:       store,
		IDGenerator: store,
	})

	_, err := module.Handler.StageMoveHandler(
		context.Background(), "org-1", "user-1", "project-1",
		httptransport.StageMoveRequest{TargetStage: "internal_approval"},
	)
	if !errors.Is(err, historyErr) {
		t.Fatalf("history read failure must surface, got %v", err)
	}
	if errors.Is(err, domainerrors.ErrStageMoveBlocked) {
		t.Fatalf("store failure must not masquerade as a blocked move: %v", err)
	}

	project, err := store.GetProject(context.Background(), "org-1", "project-1")
	if err != nil {
		t.Fatalf("fetch project: %v", err)
	}
	if project.CurrentStage != entities.StageCreation {
		t.Fatalf("failed move must leave the stage unchanged, got %s", project.CurrentStage)
	}
}
