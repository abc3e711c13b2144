package postgresadapter

import (
	"strings"
	"time"

	"pressroom/contexts/campaign-approval/version-service/domain/entities"
)

type versionModel struct {
	VersionID      string    `gorm:"column:version_id;primaryKey"`
	OrganizationID string    `gorm:"column:organization_id"`
	CampaignID     string    `gorm:"column:campaign_id"`
	Number         int       `gorm:"column:number"`
	Status         string    `gorm:"column:status"`
	DownloadRef    string    `gorm:"column:download_ref"`
	PageCount      int       `gorm:"column:page_count"`
	WordCount      int       `gorm:"column:word_count"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (versionModel) TableName() string {
	return "campaign_versions"
}

func versionModelFromEntity(version entities.Version) versionModel {
	return versionModel{
		VersionID:      strings.TrimSpace(version.VersionID),
		OrganizationID: strings.TrimSpace(version.OrganizationID),
		CampaignID:     strings.TrimSpace(version.CampaignID),
		Number:         version.Number,
		Status:         string(version.Status),
		DownloadRef:    version.DownloadRef,
		PageCount:      version.PageCount,
		WordCount:      version.WordCount,
		CreatedAt:      version.CreatedAt.UTC(),
		UpdatedAt:      version.UpdatedAt.UTC(),
	}
}

func (m versionModel) toEntity() entities.Version {
	return entities.Version{
		VersionID:      m.VersionID,
		OrganizationID: m.OrganizationID,
		CampaignID:     m.CampaignID,
		Number:         m.Number,
		Status:         entities.VersionStatus(m.Status),
		DownloadRef:    m.DownloadRef,
		PageCount:      m.PageCount,
		WordCount:      m.WordCount,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}
