package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pressroom/contexts/campaign-approval/share-gateway/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/share-gateway/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
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

func (r *Repository) CreateLink(ctx context.Context, link entities.ShareLink) error {
	if strings.TrimSpace(link.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}
	row := shareLinkModelFromEntity(link)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidShareInput
		}
		return err
	}
	return nil
}

// GetLinkByToken is the one unscoped read in the system; the stored link
// carries the organization scope for every call it authorizes.
func (r *Repository) GetLinkByToken(ctx context.Context, token string) (entities.ShareLink, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.ShareLink{}, domainerrors.ErrShareNotFound
	}

	var row shareLinkModel
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ShareLink{}, domainerrors.ErrShareNotFound
		}
		return entities.ShareLink{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetLink(ctx context.Context, organizationID string, linkID string) (entities.ShareLink, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.ShareLink{}, domainerrors.ErrOrganizationScopeMissing
	}

	var row shareLinkModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND link_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(linkID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ShareLink{}, domainerrors.ErrShareNotFound
		}
		return entities.ShareLink{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) RevokeLink(ctx context.Context, organizationID string, linkID string, revokedAt time.Time) error {
	if strings.TrimSpace(organizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	result := r.db.WithContext(ctx).
		Model(&shareLinkModel{}).
		Where("organization_id = ? AND link_id = ? AND revoked_at IS NULL",
			strings.TrimSpace(organizationID), strings.TrimSpace(linkID)).
		Update("revoked_at", revokedAt.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetLink(ctx, organizationID, linkID); err != nil {
			return err
		}
		// Already revoked; revocation is idempotent.
		return nil
	}
	return nil
}

func (r *Repository) RevokeExpiredLinks(ctx context.Context, now time.Time, limit int) (int, error) {
	if limit <= 0 {
		limit = 100
	}

	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&shareLinkModel{}).
		Where("revoked_at IS NULL AND expires_at IS NOT NULL AND expires_at < ?", now.UTC()).
		Order("expires_at ASC").
		Limit(limit).
		Pluck("link_id", &ids).
		Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Model(&shareLinkModel{}).
		Where("link_id IN ? AND revoked_at IS NULL", ids).
		Update("revoked_at", now.UTC())
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
