package entities

import "time"

type VersionStatus string

const (
	VersionStatusDraft           VersionStatus = "draft"
	VersionStatusPendingCustomer VersionStatus = "pending_customer"
	VersionStatusApproved        VersionStatus = "approved"
	VersionStatusRejected        VersionStatus = "rejected"
)

// CanTransition is the closed status transition table. Everything not listed
// here is refused; a version leaves draft exactly once and settles exactly
// once.
func CanTransition(from VersionStatus, to VersionStatus) bool {
	switch {
	case from == VersionStatusDraft && to == VersionStatusPendingCustomer:
		return true
	case from == VersionStatusPendingCustomer && to == VersionStatusApproved:
		return true
	case from == VersionStatusPendingCustomer && to == VersionStatusRejected:
		return true
	default:
		return false
	}
}

func IsSupportedVersionStatus(value VersionStatus) bool {
	switch value {
	case VersionStatusDraft, VersionStatusPendingCustomer, VersionStatusApproved, VersionStatusRejected:
		return true
	default:
		return false
	}
}

// Version is one immutable rendered snapshot of a campaign. DownloadRef,
// PageCount and WordCount are fixed at creation; Status is the only field
// that moves afterwards.
type Version struct {
	VersionID      string
	OrganizationID string
	CampaignID     string
	Number         int
	Status         VersionStatus
	DownloadRef    string
	PageCount      int
	WordCount      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsSettled reports whether the version reached a terminal review status.
func (v Version) IsSettled() bool {
	return v.Status == VersionStatusApproved || v.Status == VersionStatusRejected
}
