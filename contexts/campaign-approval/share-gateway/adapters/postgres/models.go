package postgresadapter

import (
	"strings"
	"time"

	"pressroom/contexts/campaign-approval/share-gateway/domain/entities"
)

type shareLinkModel struct {
	LinkID         string     `gorm:"column:link_id;primaryKey"`
	OrganizationID string     `gorm:"column:organization_id"`
	CampaignID     string     `gorm:"column:campaign_id"`
	WorkflowID     string     `gorm:"column:workflow_id"`
	Token          string     `gorm:"column:token;uniqueIndex"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	ExpiresAt      *time.Time `gorm:"column:expires_at"`
	RevokedAt      *time.Time `gorm:"column:revoked_at"`
}

func (shareLinkModel) TableName() string {
	return "share_links"
}

func shareLinkModelFromEntity(link entities.ShareLink) shareLinkModel {
	return shareLinkModel{
		LinkID:         strings.TrimSpace(link.LinkID),
		OrganizationID: strings.TrimSpace(link.OrganizationID),
		CampaignID:     strings.TrimSpace(link.CampaignID),
		WorkflowID:     strings.TrimSpace(link.WorkflowID),
		Token:          strings.TrimSpace(link.Token),
		CreatedAt:      link.CreatedAt.UTC(),
		ExpiresAt:      normalizeOptionalTime(link.ExpiresAt),
		RevokedAt:      normalizeOptionalTime(link.RevokedAt),
	}
}

func (m shareLinkModel) toEntity() entities.ShareLink {
	return entities.ShareLink{
		LinkID:         m.LinkID,
		OrganizationID: m.OrganizationID,
		CampaignID:     m.CampaignID,
		WorkflowID:     m.WorkflowID,
		Token:          m.Token,
		CreatedAt:      m.CreatedAt.UTC(),
		ExpiresAt:      normalizeOptionalTime(m.ExpiresAt),
		RevokedAt:      normalizeOptionalTime(m.RevokedAt),
	}
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	normalized := value.UTC()
	return &normalized
}
