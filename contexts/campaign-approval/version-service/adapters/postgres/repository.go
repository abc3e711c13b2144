package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"pressroom/contexts/campaign-approval/version-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/version-service/domain/errors"

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

// CreateVersion numbers the new version and, when it opens customer review,
// retires any version still pending, all inside one transaction so readers
// never observe two pending versions or a duplicate number.
func (r *Repository) CreateVersion(ctx context.Context, version entities.Version) (entities.Version, error) {
	if strings.TrimSpace(version.OrganizationID) == "" {
		return entities.Version{}, domainerrors.ErrOrganizationScopeMissing
	}

	row := versionModelFromEntity(version)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []versionModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("organization_id = ? AND campaign_id = ?", row.OrganizationID, row.CampaignID).
			Find(&rows).
			Error; err != nil {
			return err
		}

		maxNumber := 0
		for _, existing := range rows {
			if existing.Number > maxNumber {
				maxNumber = existing.Number
			}
		}
		row.Number = maxNumber + 1

		if row.Status == string(entities.VersionStatusPendingCustomer) {
			if err := tx.
				Model(&versionModel{}).
				Where("organization_id = ? AND campaign_id = ? AND status = ?",
					row.OrganizationID, row.CampaignID, string(entities.VersionStatusPendingCustomer)).
				Updates(map[string]any{
					"status":     string(entities.VersionStatusRejected),
					"updated_at": row.CreatedAt,
				}).
				Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrInvalidVersionInput
			}
			return err
		}
		return nil
	})
	if err != nil {
		return entities.Version{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetVersion(ctx context.Context, organizationID string, versionID string) (entities.Version, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Version{}, domainerrors.ErrOrganizationScopeMissing
	}

	var row versionModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND version_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(versionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Version{}, domainerrors.ErrVersionNotFound
		}
		return entities.Version{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) TransitionStatus(
	ctx context.Context,
	organizationID string,
	versionID string,
	from entities.VersionStatus,
	to entities.VersionStatus,
) (entities.Version, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Version{}, domainerrors.ErrOrganizationScopeMissing
	}

	var updated versionModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row versionModel
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("organization_id = ? AND version_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(versionID)).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrVersionNotFound
			}
			return err
		}
		if row.Status != string(from) {
			return domainerrors.ErrInvalidVersionTransition
		}

		if to == entities.VersionStatusPendingCustomer {
			var pending int64
			if err := tx.
				Model(&versionModel{}).
				Where("organization_id = ? AND campaign_id = ? AND version_id <> ? AND status = ?",
					row.OrganizationID, row.CampaignID, row.VersionID, string(entities.VersionStatusPendingCustomer)).
				Count(&pending).
				Error; err != nil {
				return err
			}
			if pending > 0 {
				return domainerrors.ErrPendingVersionExists
			}
		}

		result := tx.
			Model(&versionModel{}).
			Where("version_id = ? AND status = ?", row.VersionID, string(from)).
			Updates(map[string]any{
				"status":     string(to),
				"updated_at": gorm.Expr("NOW()"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrInvalidVersionTransition
		}

		return tx.Where("version_id = ?", row.VersionID).First(&updated).Error
	})
	if err != nil {
		return entities.Version{}, err
	}
	return updated.toEntity(), nil
}

func (r *Repository) ListVersionsByCampaign(ctx context.Context, organizationID string, campaignID string) ([]entities.Version, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domainerrors.ErrOrganizationScopeMissing
	}

	var rows []versionModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND campaign_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(campaignID)).
		Order("number ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Version, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
