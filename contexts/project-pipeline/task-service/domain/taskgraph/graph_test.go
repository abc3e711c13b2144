package taskgraph

import (
	"testing"
	"time"

	"pressroom/contexts/project-pipeline/task-service/domain/entities"
)

func graphTask(id string, deps ...string) entities.Task {
	return entities.Task{TaskID: id, DependsOnTaskIDs: deps}
}

func TestFindCyclesReportsClosedLoop(t *testing.T) {
	tasks := []entities.Task{
		graphTask("task-a", "task-c"),
		graphTask("task-b", "task-a"),
		graphTask("task-c", "task-b"),
	}

	cycles := FindCycles(tasks)
	if len(cycles) != 1 {
		t.Fatalf("expected one cycle, got %v", cycles)
	}
	if len(cycles[0]) != 3 {
		t.Fatalf("cycle should cover all three tasks, got %v", cycles[0])
	}

	again := FindCycles(tasks)
	if len(again) != 1 || len(again[0]) != len(cycles[0]) {
		t.Fatalf("repeated runs must report the same cycle, got %v then %v", cycles, again)
	}
	for i := range cycles[0] {
		if again[0][i] != cycles[0][i] {
			t.Fatalf("cycle order should be deterministic, got %v then %v", cycles[0], again[0])
		}
	}
}

func TestFindCyclesEmptyOnAcyclicGraph(t *testing.T) {
	tasks := []entities.Task{
		graphTask("task-a"),
		graphTask("task-b", "task-a"),
		graphTask("task-c", "task-a", "task-b"),
	}
	if cycles := FindCycles(tasks); len(cycles) != 0 {
		t.Fatalf("acyclic graph should report no cycles, got %v", cycles)
	}
}

func TestCanCompleteIgnoresUnknownDependencies(t *testing.T) {
	done := entities.Task{TaskID: "task-a", Status: entities.TaskStatusCompleted}
	task := graphTask("task-b", "task-a", "ghost-task")

	byID := map[string]entities.Task{"task-a": done}
	if !CanComplete(task, byID) {
		t.Fatal("unknown dependency IDs must not block completion")
	}

	byID["task-a"] = entities.Task{TaskID: "task-a", Status: entities.TaskStatusPending}
	if CanComplete(task, byID) {
		t.Fatal("open dependency must block completion")
	}
}

func TestCascadeShiftPropagatesThroughOptedInChain(t *testing.T) {
	base := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	dueB := base.Add(3 * 24 * time.Hour)
	dueC := base.Add(6 * 24 * time.Hour)
	tasks := []entities.Task{
		{TaskID: "task-a", DueAt: &base},
		{
			TaskID:           "task-b",
			DependsOnTaskIDs: []string{"task-a"},
			DeadlineRules:    &entities.DeadlineRules{CascadeDelay: true},
			DueAt:            &dueB,
		},
		{
			TaskID:           "task-c",
			DependsOnTaskIDs: []string{"task-b"},
			DeadlineRules:    &entities.DeadlineRules{CascadeDelay: true},
			DueAt:            &dueC,
		},
	}

	shifts := CascadeShift(tasks, "task-a", 48*time.Hour)
	if len(shifts) != 2 {
		t.Fatalf("expected both dependents shifted, got %v", shifts)
	}
	if shifts[0].TaskID != "task-b" || !shifts[0].NewDueAt.Equal(dueB.Add(48*time.Hour)) {
		t.Fatalf("unexpected first shift %+v", shifts[0])
	}
	if shifts[1].TaskID != "task-c" || !shifts[1].NewDueAt.Equal(dueC.Add(48*time.Hour)) {
		t.Fatalf("unexpected second shift %+v", shifts[1])
	}
}

func TestCascadeShiftStopsAtNonOptedDependent(t *testing.T) {
	base := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	dueB := base.Add(3 * 24 * time.Hour)
	dueC := base.Add(6 * 24 * time.Hour)
	tasks := []entities.Task{
		{TaskID: "task-a", DueAt: &base},
		{
			TaskID:           "task-b",
			DependsOnTaskIDs: []string{"task-a"},
			DueAt:            &dueB,
		},
		{
			TaskID:           "task-c",
			DependsOnTaskIDs: []string{"task-b"},
			DeadlineRules:    &entities.DeadlineRules{CascadeDelay: true},
			DueAt:            &dueC,
		},
	}

	if shifts := CascadeShift(tasks, "task-a", 48*time.Hour); len(shifts) != 0 {
		t.Fatalf("dependent without cascade must absorb the delay, got %v", shifts)
	}
}

func TestCascadeShiftNilForNonPositiveDelta(t *testing.T) {
	base := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	tasks := []entities.Task{
		{
			TaskID:           "task-b",
			DependsOnTaskIDs: []string{"task-a"},
			DeadlineRules:    &entities.DeadlineRules{CascadeDelay: true},
			DueAt:            &base,
		},
	}
	if shifts := CascadeShift(tasks, "task-a", -24*time.Hour); shifts != nil {
		t.Fatalf("earlier predecessor must not cascade, got %v", shifts)
	}
	if shifts := CascadeShift(tasks, "task-a", 0); shifts != nil {
		t.Fatalf("zero delta must not cascade, got %v", shifts)
	}
}
