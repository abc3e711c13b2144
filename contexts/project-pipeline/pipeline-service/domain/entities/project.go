package entities

import (
	"strings"
	"time"
)

type Stage string

const (
	StageIdeasPlanning    Stage = "ideas_planning"
	StageCreation         Stage = "creation"
	StageInternalApproval Stage = "internal_approval"
	StageCustomerApproval Stage = "customer_approval"
	StageDistribution     Stage = "distribution"
	StageMonitoring       Stage = "monitoring"
	StageCompleted        Stage = "completed"
)

var stageOrder = []Stage{
	StageIdeasPlanning,
	StageCreation,
	StageInternalApproval,
	StageCustomerApproval,
	StageDistribution,
	StageMonitoring,
	StageCompleted,
}

// StageIndex returns the position of the stage in pipeline order, -1 for
// unknown values.
func StageIndex(stage Stage) int {
	for i, item := range stageOrder {
		if item == stage {
			return i
		}
	}
	return -1
}

func IsSupportedStage(stage Stage) bool {
	return StageIndex(stage) >= 0
}

type TriggerType string

const (
	TriggerManual TriggerType = "manual"
	TriggerAuto   TriggerType = "auto"
	TriggerRevert TriggerType = "revert"
)

func IsSupportedTrigger(value TriggerType) bool {
	switch value {
	case TriggerManual, TriggerAuto, TriggerRevert:
		return true
	default:
		return false
	}
}

// StageTransition marks an in-flight stage move; at most one exists per
// project at any time.
type StageTransition struct {
	TargetStage Stage
	TriggeredBy TriggerType
	StartedAt   time.Time
}

type Project struct {
	ProjectID         string
	OrganizationID    string
	Name              string
	CurrentStage      Stage
	CurrentTransition *StageTransition
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (p Project) ValidateBasics() bool {
	return strings.TrimSpace(p.OrganizationID) != "" &&
		strings.TrimSpace(p.Name) != ""
}

// StageHistoryEntry is an append-only record of one stage occupancy.
type StageHistoryEntry struct {
	EntryID        string
	OrganizationID string
	ProjectID      string
	Stage          Stage
	EnteredAt      time.Time
	CompletedAt    *time.Time
	TriggeredBy    TriggerType
}
