package entities

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// DeadlineRules describes how a task due date is derived and propagated.
// DaysAfterStageEntry seeds the due date when a task is auto-created on
// stage entry; CascadeDelay opts the task into predecessor delay shifts.
type DeadlineRules struct {
	DaysAfterStageEntry int
	CascadeDelay        bool
}

type Task struct {
	TaskID                     string
	OrganizationID             string
	ProjectID                  string
	Title                      string
	Status                     TaskStatus
	DependsOnTaskIDs           []string
	DependsOnStageCompletion   []string
	RequiredForStageCompletion bool
	BlocksStageTransition      bool
	StageContext               string
	DeadlineRules              *DeadlineRules
	DueAt                      *time.Time
	AutoCreated                bool
	AutoCompleteOnStageChange  bool
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
	CompletedAt                *time.Time
}

// IsOpen reports whether the task still counts against gating rules.
func (t Task) IsOpen() bool {
	return t.Status != TaskStatusCompleted && t.Status != TaskStatusCancelled
}

func (t Task) ValidateBasics() bool {
	return strings.TrimSpace(t.OrganizationID) != "" &&
		strings.TrimSpace(t.ProjectID) != "" &&
		strings.TrimSpace(t.Title) != ""
}

func IsSupportedTaskStatus(value TaskStatus) bool {
	switch value {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}
