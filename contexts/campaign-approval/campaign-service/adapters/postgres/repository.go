package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"pressroom/contexts/campaign-approval/campaign-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/campaign-service/domain/errors"
	"pressroom/internal/shared/events"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateCampaign(ctx context.Context, campaign entities.Campaign) error {
	if strings.TrimSpace(campaign.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}
	row := campaignModelFromEntity(campaign)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidCampaignInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetCampaign(ctx context.Context, organizationID string, campaignID string) (entities.Campaign, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Campaign{}, domainerrors.ErrOrganizationScopeMissing
	}

	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND campaign_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return row.toEntity(), nil
}

// UpdateCampaign keeps the status machine honest under concurrency: the
// update lands only while the stored status still matches expectedStatus.
func (r *Repository) UpdateCampaign(ctx context.Context, campaign entities.Campaign, expectedStatus entities.CampaignStatus) error {
	if strings.TrimSpace(campaign.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("organization_id = ? AND campaign_id = ? AND status = ?",
			campaign.OrganizationID, strings.TrimSpace(campaign.CampaignID), string(expectedStatus)).
		Updates(campaignUpdatesFromEntity(campaign))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetCampaign(ctx, campaign.OrganizationID, campaign.CampaignID); err != nil {
			return err
		}
		return domainerrors.ErrInvalidStatusTransition
	}
	return nil
}

func (r *Repository) AppendStatusEntry(ctx context.Context, entry entities.StatusHistoryEntry) error {
	if strings.TrimSpace(entry.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}
	row := statusHistoryModel{
		EntryID:        strings.TrimSpace(entry.EntryID),
		OrganizationID: strings.TrimSpace(entry.OrganizationID),
		CampaignID:     strings.TrimSpace(entry.CampaignID),
		FromStatus:     string(entry.FromStatus),
		ToStatus:       string(entry.ToStatus),
		ActorID:        strings.TrimSpace(entry.ActorID),
		OccurredAt:     entry.OccurredAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidCampaignInput
		}
		return err
	}
	return nil
}

func (r *Repository) ListStatusHistory(ctx context.Context, organizationID string, campaignID string) ([]entities.StatusHistoryEntry, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domainerrors.ErrOrganizationScopeMissing
	}

	var rows []statusHistoryModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND campaign_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(campaignID)).
		Order("seq ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.StatusHistoryEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.StatusHistoryEntry{
			EntryID:        row.EntryID,
			OrganizationID: row.OrganizationID,
			CampaignID:     row.CampaignID,
			FromStatus:     entities.CampaignStatus(row.FromStatus),
			ToStatus:       entities.CampaignStatus(row.ToStatus),
			ActorID:        row.ActorID,
			OccurredAt:     row.OccurredAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) AppendEvent(ctx context.Context, envelope events.Envelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		ID:        envelope.EventID,
		EventType: envelope.EventType,
		Payload:   payload,
		Status:    "pending",
		CreatedAt: envelope.OccurredAtUTC.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).
		Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
