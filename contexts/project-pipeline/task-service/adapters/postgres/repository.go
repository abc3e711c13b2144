package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"pressroom/contexts/project-pipeline/task-service/domain/entities"
	domainerrors "pressroom/contexts/project-pipeline/task-service/domain/errors"
	"pressroom/contexts/project-pipeline/task-service/ports"

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

func (r *Repository) CreateTask(ctx context.Context, task entities.Task) error {
	if strings.TrimSpace(task.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}
	row := taskModelFromEntity(task)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidTaskInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetTask(ctx context.Context, organizationID string, taskID string) (entities.Task, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Task{}, domainerrors.ErrOrganizationScopeMissing
	}

	var row taskModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND task_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(taskID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Task{}, domainerrors.ErrTaskNotFound
		}
		return entities.Task{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateTask(ctx context.Context, task entities.Task) error {
	if strings.TrimSpace(task.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	result := r.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("organization_id = ? AND task_id = ?", task.OrganizationID, task.TaskID).
		Updates(taskUpdatesFromEntity(task))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTaskNotFound
	}
	return nil
}

func (r *Repository) ListTasksByProject(ctx context.Context, organizationID string, projectID string) ([]entities.Task, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domainerrors.ErrOrganizationScopeMissing
	}

	var rows []taskModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND project_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(projectID)).
		Order("created_at ASC, task_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Task, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListProjectRefs(ctx context.Context, limit int) ([]ports.ProjectRef, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []struct {
		OrganizationID string `gorm:"column:organization_id"`
		ProjectID      string `gorm:"column:project_id"`
	}
	err := r.db.WithContext(ctx).
		Model(&taskModel{}).
		Distinct("organization_id", "project_id").
		Order("organization_id ASC, project_id ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	refs := make([]ports.ProjectRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, ports.ProjectRef{
			OrganizationID: row.OrganizationID,
			ProjectID:      row.ProjectID,
		})
	}
	return refs, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
