package entities

import (
	"strings"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusDraft            CampaignStatus = "draft"
	CampaignStatusInReview         CampaignStatus = "in_review"
	CampaignStatusChangesRequested CampaignStatus = "changes_requested"
	CampaignStatusApproved         CampaignStatus = "approved"
	CampaignStatusScheduled        CampaignStatus = "scheduled"
	CampaignStatusSending          CampaignStatus = "sending"
	CampaignStatusSent             CampaignStatus = "sent"
	CampaignStatusArchived         CampaignStatus = "archived"
)

func IsSupportedCampaignStatus(status CampaignStatus) bool {
	switch status {
	case CampaignStatusDraft,
		CampaignStatusInReview,
		CampaignStatusChangesRequested,
		CampaignStatusApproved,
		CampaignStatusScheduled,
		CampaignStatusSending,
		CampaignStatusSent,
		CampaignStatusArchived:
		return true
	default:
		return false
	}
}

// campaignTransitions is the closed transition table. A pair absent from the
// table is an illegal move regardless of who requests it.
var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignStatusDraft:            {CampaignStatusInReview, CampaignStatusArchived},
	CampaignStatusInReview:         {CampaignStatusChangesRequested, CampaignStatusApproved},
	CampaignStatusChangesRequested: {CampaignStatusInReview, CampaignStatusArchived},
	CampaignStatusApproved:         {CampaignStatusChangesRequested, CampaignStatusScheduled, CampaignStatusSending, CampaignStatusArchived},
	CampaignStatusScheduled:        {CampaignStatusSending},
	CampaignStatusSending:          {CampaignStatusSent},
	CampaignStatusSent:             {CampaignStatusArchived},
	CampaignStatusArchived:         {},
}

func CanTransitionCampaign(from CampaignStatus, to CampaignStatus) bool {
	for _, allowed := range campaignTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsEditable reports whether campaign content may still change, which is also
// the set of states a closed approval cycle returns the campaign to.
func (s CampaignStatus) IsEditable() bool {
	return s == CampaignStatusDraft || s == CampaignStatusChangesRequested
}

type Campaign struct {
	CampaignID       string
	OrganizationID   string
	Name             string
	Status           CampaignStatus
	ActiveWorkflowID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (c Campaign) ValidateBasics() bool {
	return strings.TrimSpace(c.OrganizationID) != "" &&
		strings.TrimSpace(c.Name) != ""
}

type StatusHistoryEntry struct {
	EntryID        string
	OrganizationID string
	CampaignID     string
	FromStatus     CampaignStatus
	ToStatus       CampaignStatus
	ActorID        string
	OccurredAt     time.Time
}
