package workers

import (
	"context"
	"log/slog"
	"strings"

	application "pressroom/contexts/project-pipeline/task-service/application"
	"pressroom/contexts/project-pipeline/task-service/domain/taskgraph"
	"pressroom/contexts/project-pipeline/task-service/ports"
)

// GraphAuditor sweeps persisted task graphs for cycles that predate
// write-time enforcement. The sweep only reports; it never mutates edges.
type GraphAuditor struct {
	Tasks     ports.TaskRepository
	Projects  ports.GraphAuditRepository
	BatchSize int
	Logger    *slog.Logger
}

func (a GraphAuditor) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(a.Logger)
	limit := a.BatchSize
	if limit <= 0 {
		limit = 100
	}

	refs, err := a.Projects.ListProjectRefs(ctx, limit)
	if err != nil {
		logger.Error("graph audit project listing failed",
			"event", "task_graph_audit_list_failed",
			"module", "project-pipeline/task-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	for _, ref := range refs {
		tasks, err := a.Tasks.ListTasksByProject(ctx, ref.OrganizationID, ref.ProjectID)
		if err != nil {
			logger.Error("graph audit task listing failed",
				"event", "task_graph_audit_tasks_failed",
				"module", "project-pipeline/task-service",
				"layer", "worker",
				"project_id", ref.ProjectID,
				"error", err.Error(),
			)
			return err
		}
		for _, cycle := range taskgraph.FindCycles(tasks) {
			logger.Warn("legacy dependency cycle detected",
				"event", "task_graph_cycle_detected",
				"module", "project-pipeline/task-service",
				"layer", "worker",
				"project_id", ref.ProjectID,
				"cycle", strings.Join(cycle, "->"),
			)
		}
	}
	return nil
}
