package ports

import (
	"context"
	"time"

	"pressroom/contexts/project-pipeline/pipeline-service/domain/entities"
)

type ProjectRepository interface {
	CreateProject(ctx context.Context, project entities.Project) error
	GetProject(ctx context.Context, organizationID string, projectID string) (entities.Project, error)
	UpdateProject(ctx context.Context, project entities.Project) error

	// ClaimTransition installs the in-flight transition marker with
	// compare-and-set semantics: it fails when another transition is
	// already claimed for the project.
	ClaimTransition(ctx context.Context, organizationID string, projectID string, transition entities.StageTransition) error
	ClearTransition(ctx context.Context, organizationID string, projectID string) error
}

type StageHistoryRepository interface {
	AppendStageEntry(ctx context.Context, entry entities.StageHistoryEntry) error
	CompleteLatestStageEntry(ctx context.Context, organizationID string, projectID string, completedAt time.Time) error
	ListStageHistory(ctx context.Context, organizationID string, projectID string) ([]entities.StageHistoryEntry, error)
}

// TaskView is the read model of project tasks this engine gates on. It is a
// projection of the task-service write model; the engine only reads it.
type TaskView struct {
	TaskID                     string
	Status                     string
	StageContext               string
	RequiredForStageCompletion bool
	BlocksStageTransition      bool
	DependsOnStageCompletion   []string
	AutoCompleteOnStageChange  bool
}

func (t TaskView) IsOpen() bool {
	return t.Status != "completed" && t.Status != "cancelled"
}

type TaskReader interface {
	// ListProjectTasks returns a single consistent snapshot of the
	// project task set; each stage move evaluates exactly one snapshot.
	ListProjectTasks(ctx context.Context, organizationID string, projectID string) ([]TaskView, error)
}

// DeadlineRule mirrors the task deadline rules copied onto auto-created
// stage tasks.
type DeadlineRule struct {
	DaysAfterStageEntry int
	CascadeDelay        bool
}

// TaskTemplate is the blueprint for tasks instantiated on stage entry.
type TaskTemplate struct {
	Title                      string
	RequiredForStageCompletion bool
	BlocksStageTransition      bool
	AutoCompleteOnStageChange  bool
	DeadlineRules              *DeadlineRule
}

type TemplateReader interface {
	ListStageTemplates(ctx context.Context, organizationID string, projectID string, stage entities.Stage) ([]TaskTemplate, error)
}

// StageTaskSpec instructs the task writer to materialize one templated task.
type StageTaskSpec struct {
	OrganizationID             string
	ProjectID                  string
	Title                      string
	StageContext               string
	RequiredForStageCompletion bool
	BlocksStageTransition      bool
	AutoCompleteOnStageChange  bool
	DeadlineRules              *DeadlineRule
	DueAt                      *time.Time
}

type TaskWriter interface {
	CompleteTask(ctx context.Context, organizationID string, taskID string, completedAt time.Time) error
	CreateStageTask(ctx context.Context, spec StageTaskSpec) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
