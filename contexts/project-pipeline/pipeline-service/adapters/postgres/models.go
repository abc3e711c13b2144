package postgresadapter

import (
	"strings"
	"time"

	"pressroom/contexts/project-pipeline/pipeline-service/domain/entities"

	"github.com/google/uuid"
)

type projectModel struct {
	ProjectID           string     `gorm:"column:project_id;primaryKey"`
	OrganizationID      string     `gorm:"column:organization_id"`
	Name                string     `gorm:"column:name"`
	CurrentStage        string     `gorm:"column:current_stage"`
	TransitionTarget    *string    `gorm:"column:transition_target"`
	TransitionTrigger   *string    `gorm:"column:transition_trigger"`
	TransitionStartedAt *time.Time `gorm:"column:transition_started_at"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (projectModel) TableName() string {
	return "pipeline_projects"
}

func projectModelFromEntity(project entities.Project) projectModel {
	row := projectModel{
		ProjectID:      strings.TrimSpace(project.ProjectID),
		OrganizationID: strings.TrimSpace(project.OrganizationID),
		Name:           strings.TrimSpace(project.Name),
		CurrentStage:   string(project.CurrentStage),
		CreatedAt:      project.CreatedAt.UTC(),
		UpdatedAt:      project.UpdatedAt.UTC(),
	}
	if project.CurrentTransition != nil {
		target := string(project.CurrentTransition.TargetStage)
		trigger := string(project.CurrentTransition.TriggeredBy)
		startedAt := project.CurrentTransition.StartedAt.UTC()
		row.TransitionTarget = &target
		row.TransitionTrigger = &trigger
		row.TransitionStartedAt = &startedAt
	}
	return row
}

func (m projectModel) toEntity() entities.Project {
	project := entities.Project{
		ProjectID:      m.ProjectID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		CurrentStage:   entities.Stage(m.CurrentStage),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
	if m.TransitionTarget != nil {
		transition := entities.StageTransition{
			TargetStage: entities.Stage(*m.TransitionTarget),
		}
		if m.TransitionTrigger != nil {
			transition.TriggeredBy = entities.TriggerType(*m.TransitionTrigger)
		}
		if m.TransitionStartedAt != nil {
			transition.StartedAt = m.TransitionStartedAt.UTC()
		}
		project.CurrentTransition = &transition
	}
	return project
}

type stageHistoryModel struct {
	EntryID        string     `gorm:"column:entry_id;primaryKey"`
	OrganizationID string     `gorm:"column:organization_id"`
	ProjectID      string     `gorm:"column:project_id"`
	Stage          string     `gorm:"column:stage"`
	EnteredAt      time.Time  `gorm:"column:entered_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at"`
	TriggeredBy    string     `gorm:"column:triggered_by"`
}

func (stageHistoryModel) TableName() string {
	return "pipeline_stage_history"
}

// taskViewModel projects the task write model into the columns the stage
// engine gates on. In database mode both contexts read and write the same
// table.
type taskViewModel struct {
	TaskID                     string     `gorm:"column:task_id;primaryKey"`
	OrganizationID             string     `gorm:"column:organization_id"`
	ProjectID                  string     `gorm:"column:project_id"`
	Title                      string     `gorm:"column:title"`
	Status                     string     `gorm:"column:status"`
	StageContext               string     `gorm:"column:stage_context"`
	RequiredForStageCompletion bool       `gorm:"column:required_for_stage_completion"`
	BlocksStageTransition      bool       `gorm:"column:blocks_stage_transition"`
	DependsOnStageCompletion   string     `gorm:"column:depends_on_stage_completion"`
	AutoCompleteOnStageChange  bool       `gorm:"column:auto_complete_on_stage_change"`
	AutoCreated                bool       `gorm:"column:auto_created"`
	DueAt                      *time.Time `gorm:"column:due_at"`
	CreatedAt                  time.Time  `gorm:"column:created_at"`
	UpdatedAt                  time.Time  `gorm:"column:updated_at"`
}

func (taskViewModel) TableName() string {
	return "project_tasks"
}

type stageTemplateModel struct {
	TemplateID                 string `gorm:"column:template_id;primaryKey"`
	OrganizationID             string `gorm:"column:organization_id"`
	ProjectID                  string `gorm:"column:project_id"`
	Stage                      string `gorm:"column:stage"`
	Title                      string `gorm:"column:title"`
	RequiredForStageCompletion bool   `gorm:"column:required_for_stage_completion"`
	BlocksStageTransition      bool   `gorm:"column:blocks_stage_transition"`
	AutoCompleteOnStageChange  bool   `gorm:"column:auto_complete_on_stage_change"`
	DeadlineDays               *int   `gorm:"column:deadline_days"`
	CascadeDelay               bool   `gorm:"column:cascade_delay"`
}

func (stageTemplateModel) TableName() string {
	return "pipeline_stage_templates"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	normalized := value.UTC()
	return &normalized
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func newTaskID() string {
	return uuid.NewString()
}
