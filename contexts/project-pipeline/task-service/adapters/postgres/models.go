package postgresadapter

import (
	"strings"
	"time"

	"pressroom/contexts/project-pipeline/task-service/domain/entities"
)

// taskModel is the write model for project_tasks. The stage engine reads a
// projection of the same table, so the shared column names must not drift.
type taskModel struct {
	TaskID                     string     `gorm:"column:task_id;primaryKey"`
	OrganizationID             string     `gorm:"column:organization_id"`
	ProjectID                  string     `gorm:"column:project_id"`
	Title                      string     `gorm:"column:title"`
	Status                     string     `gorm:"column:status"`
	StageContext               string     `gorm:"column:stage_context"`
	DependsOnTaskIDs           string     `gorm:"column:depends_on_task_ids"`
	DependsOnStageCompletion   string     `gorm:"column:depends_on_stage_completion"`
	RequiredForStageCompletion bool       `gorm:"column:required_for_stage_completion"`
	BlocksStageTransition      bool       `gorm:"column:blocks_stage_transition"`
	AutoCompleteOnStageChange  bool       `gorm:"column:auto_complete_on_stage_change"`
	AutoCreated                bool       `gorm:"column:auto_created"`
	DeadlineDaysAfterStage     *int       `gorm:"column:deadline_days_after_stage_entry"`
	DeadlineCascadeDelay       bool       `gorm:"column:deadline_cascade_delay"`
	DueAt                      *time.Time `gorm:"column:due_at"`
	CreatedAt                  time.Time  `gorm:"column:created_at"`
	UpdatedAt                  time.Time  `gorm:"column:updated_at"`
	CompletedAt                *time.Time `gorm:"column:completed_at"`
}

func (taskModel) TableName() string {
	return "project_tasks"
}

func taskModelFromEntity(task entities.Task) taskModel {
	row := taskModel{
		TaskID:                     task.TaskID,
		OrganizationID:             task.OrganizationID,
		ProjectID:                  task.ProjectID,
		Title:                      task.Title,
		Status:                     string(task.Status),
		StageContext:               task.StageContext,
		DependsOnTaskIDs:           joinList(task.DependsOnTaskIDs),
		DependsOnStageCompletion:   joinList(task.DependsOnStageCompletion),
		RequiredForStageCompletion: task.RequiredForStageCompletion,
		BlocksStageTransition:      task.BlocksStageTransition,
		AutoCompleteOnStageChange:  task.AutoCompleteOnStageChange,
		AutoCreated:                task.AutoCreated,
		DueAt:                      normalizeOptionalTime(task.DueAt),
		CreatedAt:                  task.CreatedAt.UTC(),
		UpdatedAt:                  task.UpdatedAt.UTC(),
		CompletedAt:                normalizeOptionalTime(task.CompletedAt),
	}
	if task.DeadlineRules != nil {
		days := task.DeadlineRules.DaysAfterStageEntry
		row.DeadlineDaysAfterStage = &days
		row.DeadlineCascadeDelay = task.DeadlineRules.CascadeDelay
	}
	return row
}

func (m taskModel) toEntity() entities.Task {
	task := entities.Task{
		TaskID:                     m.TaskID,
		OrganizationID:             m.OrganizationID,
		ProjectID:                  m.ProjectID,
		Title:                      m.Title,
		Status:                     entities.TaskStatus(m.Status),
		StageContext:               m.StageContext,
		DependsOnTaskIDs:           splitList(m.DependsOnTaskIDs),
		DependsOnStageCompletion:   splitList(m.DependsOnStageCompletion),
		RequiredForStageCompletion: m.RequiredForStageCompletion,
		BlocksStageTransition:      m.BlocksStageTransition,
		AutoCompleteOnStageChange:  m.AutoCompleteOnStageChange,
		AutoCreated:                m.AutoCreated,
		DueAt:                      normalizeOptionalTime(m.DueAt),
		CreatedAt:                  m.CreatedAt.UTC(),
		UpdatedAt:                  m.UpdatedAt.UTC(),
		CompletedAt:                normalizeOptionalTime(m.CompletedAt),
	}
	if m.DeadlineDaysAfterStage != nil {
		task.DeadlineRules = &entities.DeadlineRules{
			DaysAfterStageEntry: *m.DeadlineDaysAfterStage,
			CascadeDelay:        m.DeadlineCascadeDelay,
		}
	}
	return task
}

func taskUpdatesFromEntity(task entities.Task) map[string]any {
	updates := map[string]any{
		"title":                           task.Title,
		"status":                          string(task.Status),
		"stage_context":                   task.StageContext,
		"depends_on_task_ids":             joinList(task.DependsOnTaskIDs),
		"depends_on_stage_completion":     joinList(task.DependsOnStageCompletion),
		"required_for_stage_completion":   task.RequiredForStageCompletion,
		"blocks_stage_transition":         task.BlocksStageTransition,
		"auto_complete_on_stage_change":   task.AutoCompleteOnStageChange,
		"deadline_days_after_stage_entry": nil,
		"deadline_cascade_delay":          false,
		"due_at":                          normalizeOptionalTime(task.DueAt),
		"updated_at":                      task.UpdatedAt.UTC(),
		"completed_at":                    normalizeOptionalTime(task.CompletedAt),
	}
	if task.DeadlineRules != nil {
		updates["deadline_days_after_stage_entry"] = task.DeadlineRules.DaysAfterStageEntry
		updates["deadline_cascade_delay"] = task.DeadlineRules.CascadeDelay
	}
	return updates
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	normalized := value.UTC()
	return &normalized
}

func joinList(values []string) string {
	trimmed := make([]string, 0, len(values))
	for _, item := range values {
		if strings.TrimSpace(item) == "" {
			continue
		}
		trimmed = append(trimmed, strings.TrimSpace(item))
	}
	return strings.Join(trimmed, ",")
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		items = append(items, strings.TrimSpace(part))
	}
	return items
}
