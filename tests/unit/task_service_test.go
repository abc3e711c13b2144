package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	taskservice "pressroom/contexts/project-pipeline/task-service"
	"pressroom/contexts/project-pipeline/task-service/domain/entities"
	domainerrors "pressroom/contexts/project-pipeline/task-service/domain/errors"
	httptransport "pressroom/contexts/project-pipeline/task-service/transport/http"
)

func createTask(t *testing.T, module taskservice.Module, title string, deps []string) httptransport.TaskDTO {
	t.Helper()
	resp, err := module.Handler.CreateTaskHandler(
		context.Background(), "org-1", "project-1",
		httptransport.CreateTaskRequest{Title: title, DependsOnTaskIDs: deps},
	)
	if err != nil {
		t.Fatalf("create %s should succeed: %v", title, err)
	}
	return resp.Task
}

func TestDependencyCycleRejectedWithEdgesUnchanged(t *testing.T) {
	module := taskservice.NewInMemoryModule(nil, nil)
	taskA := createTask(t, module, "Draft release", nil)
	taskB := createTask(t, module, "Review release", []string{taskA.TaskID})
	taskC := createTask(t, module, "Publish release", []string{taskB.TaskID})

	_, err := module.Handler.EditDependenciesHandler(
		context.Background(), "org-1", taskA.TaskID,
		httptransport.EditDependenciesRequest{DependsOnTaskIDs: []string{taskC.TaskID}},
	)
	if !errors.Is(err, domainerrors.ErrDependencyCycle) {
		t.Fatalf("expected cycle rejection, got %v", err)
	}

	stored, err := module.Store.GetTask(context.Background(), "org-1", taskA.TaskID)
	if err != nil {
		t.Fatalf("fetch task: %v", err)
	}
	if len(stored.DependsOnTaskIDs) != 0 {
		t.Fatalf("rejected edit must leave edges untouched, got %v", stored.DependsOnTaskIDs)
	}
}

func TestCreateTaskRefusesUnknownDependency(t *testing.T) {
	module := taskservice.NewInMemoryModule(nil, nil)

	_, err := module.Handler.CreateTaskHandler(
		context.Background(), "org-1", "project-1",
		httptransport.CreateTaskRequest{Title: "Orphan", DependsOnTaskIDs: []string{"ghost-task"}},
	)
	if !errors.Is(err, domainerrors.ErrUnknownDependency) {
		t.Fatalf("expected unknown dependency, got %v", err)
	}
}

func TestCompleteTaskBlockedByOpenDependencies(t *testing.T) {
	module := taskservice.NewInMemoryModule(nil, nil)
	taskA := createTask(t, module, "Draft release", nil)
	taskB := createTask(t, module, "Review release", []string{taskA.TaskID})

	_, err := module.Handler.CompleteTaskHandler(context.Background(), "org-1", taskB.TaskID)
	if !errors.Is(err, domainerrors.ErrDependenciesIncomplete) {
		t.Fatalf("expected incomplete dependencies, got %v", err)
	}

	if _, err := module.Handler.CompleteTaskHandler(context.Background(), "org-1", taskA.TaskID); err != nil {
		t.Fatalf("completing the dependency should succeed: %v", err)
	}
	done, err := module.Handler.CompleteTaskHandler(context.Background(), "org-1", taskB.TaskID)
	if err != nil {
		t.Fatalf("completing after dependency should succeed: %v", err)
	}
	if done.Task.Status != "completed" || done.Task.CompletedAt == "" {
		t.Fatalf("expected completed task with timestamp, got %+v", done.Task)
	}
}

func TestCompletedTaskRefusesSecondCompletion(t *testing.T) {
	module := taskservice.NewInMemoryModule(nil, nil)
	task := createTask(t, module, "Draft release", nil)

	if _, err := module.Handler.CompleteTaskHandler(context.Background(), "org-1", task.TaskID); err != nil {
		t.Fatalf("first completion should succeed: %v", err)
	}
	_, err := module.Handler.CompleteTaskHandler(context.Background(), "org-1", task.TaskID)
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestRescheduleCascadesToOptedInDependents(t *testing.T) {
	base := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	dueB := base.Add(5 * 24 * time.Hour)
	dueC := base.Add(8 * 24 * time.Hour)
	seed := []entities.Task{
		{
			TaskID: "task-a", OrganizationID: "org-1", ProjectID: "project-1",
			Title: "Draft release", Status: entities.TaskStatusPending,
			DueAt: &base, CreatedAt: base.Add(-time.Hour), UpdatedAt: base.Add(-time.Hour),
		},
		{
			TaskID: "task-b", OrganizationID: "org-1", ProjectID: "project-1",
			Title: "Review release", Status: entities.TaskStatusPending,
			DependsOnTaskIDs: []string{"task-a"},
			DeadlineRules:    &entities.DeadlineRules{DaysAfterStageEntry: 5, CascadeDelay: true},
			DueAt:            &dueB, CreatedAt: base.Add(-time.Hour), UpdatedAt: base.Add(-time.Hour),
		},
		{
			TaskID: "task-c", OrganizationID: "org-1", ProjectID: "project-1",
			Title: "Publish release", Status: entities.TaskStatusPending,
			DependsOnTaskIDs: []string{"task-b"},
			DueAt:            &dueC, CreatedAt: base.Add(-time.Hour), UpdatedAt: base.Add(-time.Hour),
		},
	}
	module := taskservice.NewInMemoryModule(seed, nil)

	resp, err := module.Handler.RescheduleTaskHandler(
		context.Background(), "org-1", "task-a",
		httptransport.RescheduleTaskRequest{DueAt: base.Add(48 * time.Hour).Format(time.RFC3339)},
	)
	if err != nil {
		t.Fatalf("reschedule should succeed: %v", err)
	}
	if len(resp.CascadedTaskIDs) != 1 || resp.CascadedTaskIDs[0] != "task-b" {
		t.Fatalf("only cascade-enabled dependents shift, got %v", resp.CascadedTaskIDs)
	}

	shifted, err := module.Store.GetTask(context.Background(), "org-1", "task-b")
	if err != nil {
		t.Fatalf("fetch shifted task: %v", err)
	}
	if shifted.DueAt == nil || !shifted.DueAt.Equal(dueB.Add(48*time.Hour)) {
		t.Fatalf("expected due date shifted by 48h, got %v", shifted.DueAt)
	}

	untouched, err := module.Store.GetTask(context.Background(), "org-1", "task-c")
	if err != nil {
		t.Fatalf("fetch untouched task: %v", err)
	}
	if untouched.DueAt == nil || !untouched.DueAt.Equal(dueC) {
		t.Fatalf("non-cascade dependent must keep its due date, got %v", untouched.DueAt)
	}
}

func TestEarlierRescheduleDoesNotCascade(t *testing.T) {
	base := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	dueB := base.Add(5 * 24 * time.Hour)
	seed := []entities.Task{
		{
			TaskID: "task-a", OrganizationID: "org-1", ProjectID: "project-1",
			Title: "Draft release", Status: entities.TaskStatusPending,
			DueAt: &base, CreatedAt: base.Add(-time.Hour), UpdatedAt: base.Add(-time.Hour),
		},
		{
			TaskID: "task-b", OrganizationID: "org-1", ProjectID: "project-1",
			Title: "Review release", Status: entities.TaskStatusPending,
			DependsOnTaskIDs: []string{"task-a"},
			DeadlineRules:    &entities.DeadlineRules{CascadeDelay: true},
			DueAt:            &dueB, CreatedAt: base.Add(-time.Hour), UpdatedAt: base.Add(-time.Hour),
		},
	}
	module := taskservice.NewInMemoryModule(seed, nil)

	resp, err := module.Handler.RescheduleTaskHandler(
		context.Background(), "org-1", "task-a",
		httptransport.RescheduleTaskRequest{DueAt: base.Add(-24 * time.Hour).Format(time.RFC3339)},
	)
	if err != nil {
		t.Fatalf("reschedule should succeed: %v", err)
	}
	if len(resp.CascadedTaskIDs) != 0 {
		t.Fatalf("moving earlier must not cascade, got %v", resp.CascadedTaskIDs)
	}
}

func TestGraphAuditorLeavesTasksUntouched(t *testing.T) {
	base := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	seed := []entities.Task{
		{
			TaskID: "task-a", OrganizationID: "org-1", ProjectID: "project-1",
			Title: "Draft release", Status: entities.TaskStatusPending,
			DependsOnTaskIDs: []string{"task-b"},
			CreatedAt:        base, UpdatedAt: base,
		},
		{
			TaskID: "task-b", OrganizationID: "org-1", ProjectID: "project-1",
			Title: "Review release", Status: entities.TaskStatusPending,
			DependsOnTaskIDs: []string{"task-a"},
			CreatedAt:        base, UpdatedAt: base,
		},
	}
	module := taskservice.NewInMemoryModule(seed, nil)

	if err := module.GraphAuditor.RunOnce(context.Background()); err != nil {
		t.Fatalf("audit sweep should succeed: %v", err)
	}

	task, err := module.Store.GetTask(context.Background(), "org-1", "task-a")
	if err != nil {
		t.Fatalf("fetch task: %v", err)
	}
	if len(task.DependsOnTaskIDs) != 1 || task.DependsOnTaskIDs[0] != "task-b" {
		t.Fatalf("audit must not mutate edges, got %v", task.DependsOnTaskIDs)
	}
}
