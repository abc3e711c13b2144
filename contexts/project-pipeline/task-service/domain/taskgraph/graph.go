package taskgraph

import (
	"sort"
	"time"

	"pressroom/contexts/project-pipeline/task-service/domain/entities"
)

// CanComplete reports whether every dependency of the task is completed.
// Edges pointing at unknown task IDs are ignored rather than treated as
// blocking, so stale references cannot deadlock a project.
func CanComplete(task entities.Task, byID map[string]entities.Task) bool {
	for _, depID := range task.DependsOnTaskIDs {
		dep, exists := byID[depID]
		if !exists {
			continue
		}
		if dep.Status != entities.TaskStatusCompleted {
			return false
		}
	}
	return true
}

// FindCycles returns every dependency cycle in the task set as an ordered
// list of task IDs. The traversal order is deterministic so repeated runs
// over the same data report identical cycles.
func FindCycles(tasks []entities.Task) [][]string {
	byID := make(map[string]entities.Task, len(tasks))
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		byID[task.TaskID] = task
		ids = append(ids, task.TaskID)
	}
	sort.Strings(ids)

	const (
		colorWhite = 0
		colorGray  = 1
		colorBlack = 2
	)
	colors := make(map[string]int, len(tasks))
	var stack []string
	var cycles [][]string

	var visit func(id string)
	visit = func(id string) {
		colors[id] = colorGray
		stack = append(stack, id)

		task := byID[id]
		deps := append([]string(nil), task.DependsOnTaskIDs...)
		sort.Strings(deps)
		for _, depID := range deps {
			if _, exists := byID[depID]; !exists {
				continue
			}
			switch colors[depID] {
			case colorWhite:
				visit(depID)
			case colorGray:
				// depID is on the stack: the slice from its position closes the cycle.
				for i, onStack := range stack {
					if onStack == depID {
						cycle := append([]string(nil), stack[i:]...)
						cycles = append(cycles, cycle)
						break
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		colors[id] = colorBlack
	}

	for _, id := range ids {
		if colors[id] == colorWhite {
			visit(id)
		}
	}
	return cycles
}

// DueDateShift is one cascade adjustment computed by CascadeShift.
type DueDateShift struct {
	TaskID   string
	NewDueAt time.Time
}

// CascadeShift propagates a predecessor delay to dependents that opted into
// cascade via deadline rules. Propagation is transitive: a shifted dependent
// delays its own cascade-enabled dependents by the same delta.
func CascadeShift(tasks []entities.Task, predecessorID string, delta time.Duration) []DueDateShift {
	if delta <= 0 {
		return nil
	}

	dependents := make(map[string][]string, len(tasks))
	byID := make(map[string]entities.Task, len(tasks))
	for _, task := range tasks {
		byID[task.TaskID] = task
		for _, depID := range task.DependsOnTaskIDs {
			dependents[depID] = append(dependents[depID], task.TaskID)
		}
	}
	for depID := range dependents {
		sort.Strings(dependents[depID])
	}

	visited := map[string]bool{predecessorID: true}
	frontier := []string{predecessorID}
	var shifts []DueDateShift

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		for _, nextID := range dependents[current] {
			if visited[nextID] {
				continue
			}
			visited[nextID] = true
			next := byID[nextID]
			if next.DeadlineRules == nil || !next.DeadlineRules.CascadeDelay || next.DueAt == nil {
				continue
			}
			shifts = append(shifts, DueDateShift{
				TaskID:   nextID,
				NewDueAt: next.DueAt.UTC().Add(delta),
			})
			frontier = append(frontier, nextID)
		}
	}
	return shifts
}
