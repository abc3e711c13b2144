package postgresadapter

import (
	"strings"
	"time"

	"pressroom/contexts/campaign-approval/campaign-service/domain/entities"
)

type campaignModel struct {
	CampaignID       string    `gorm:"column:campaign_id;primaryKey"`
	OrganizationID   string    `gorm:"column:organization_id"`
	Name             string    `gorm:"column:name"`
	Status           string    `gorm:"column:status"`
	ActiveWorkflowID string    `gorm:"column:active_workflow_id"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

func campaignModelFromEntity(campaign entities.Campaign) campaignModel {
	return campaignModel{
		CampaignID:       strings.TrimSpace(campaign.CampaignID),
		OrganizationID:   strings.TrimSpace(campaign.OrganizationID),
		Name:             strings.TrimSpace(campaign.Name),
		Status:           string(campaign.Status),
		ActiveWorkflowID: strings.TrimSpace(campaign.ActiveWorkflowID),
		CreatedAt:        campaign.CreatedAt.UTC(),
		UpdatedAt:        campaign.UpdatedAt.UTC(),
	}
}

func campaignUpdatesFromEntity(campaign entities.Campaign) map[string]any {
	return map[string]any{
		"name":               strings.TrimSpace(campaign.Name),
		"status":             string(campaign.Status),
		"active_workflow_id": strings.TrimSpace(campaign.ActiveWorkflowID),
		"updated_at":         campaign.UpdatedAt.UTC(),
	}
}

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		CampaignID:       m.CampaignID,
		OrganizationID:   m.OrganizationID,
		Name:             m.Name,
		Status:           entities.CampaignStatus(m.Status),
		ActiveWorkflowID: m.ActiveWorkflowID,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

type statusHistoryModel struct {
	Seq            int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	EntryID        string    `gorm:"column:entry_id;uniqueIndex"`
	OrganizationID string    `gorm:"column:organization_id"`
	CampaignID     string    `gorm:"column:campaign_id"`
	FromStatus     string    `gorm:"column:from_status"`
	ToStatus       string    `gorm:"column:to_status"`
	ActorID        string    `gorm:"column:actor_id"`
	OccurredAt     time.Time `gorm:"column:occurred_at"`
}

func (statusHistoryModel) TableName() string {
	return "campaign_status_history"
}

type outboxModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload;type:jsonb"`
	Status      string     `gorm:"column:status"`
	RetryCount  int        `gorm:"column:retry_count"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "campaign_outbox"
}
