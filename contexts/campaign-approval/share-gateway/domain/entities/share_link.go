package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ShareLink grants unauthenticated access to a single approval workflow.
type ShareLink struct {
	LinkID         string
	OrganizationID string
	CampaignID     string
	WorkflowID     string
	Token          string
	CreatedAt      time.Time
	ExpiresAt      *time.Time
	RevokedAt      *time.Time
}

// NewToken builds an unguessable 64-character token from two random UUIDs.
func NewToken() string {
	raw := uuid.NewString() + uuid.NewString()
	return strings.ReplaceAll(raw, "-", "")
}

func (l ShareLink) IsUsable(now time.Time) bool {
	if l.RevokedAt != nil {
		return false
	}
	if l.ExpiresAt != nil && now.UTC().After(l.ExpiresAt.UTC()) {
		return false
	}
	return true
}

func (l ShareLink) ValidateBasics() bool {
	return strings.TrimSpace(l.OrganizationID) != "" &&
		strings.TrimSpace(l.CampaignID) != "" &&
		strings.TrimSpace(l.WorkflowID) != ""
}
