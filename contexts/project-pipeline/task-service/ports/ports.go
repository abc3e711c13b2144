package ports

import (
	"context"
	"time"

	"pressroom/contexts/project-pipeline/task-service/domain/entities"
)

type TaskRepository interface {
	CreateTask(ctx context.Context, task entities.Task) error
	GetTask(ctx context.Context, organizationID string, taskID string) (entities.Task, error)
	UpdateTask(ctx context.Context, task entities.Task) error
	ListTasksByProject(ctx context.Context, organizationID string, projectID string) ([]entities.Task, error)
}

// ProjectRef identifies one project for audit sweeps.
type ProjectRef struct {
	OrganizationID string
	ProjectID      string
}

type GraphAuditRepository interface {
	ListProjectRefs(ctx context.Context, limit int) ([]ProjectRef, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
