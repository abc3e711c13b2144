package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pressroom/contexts/project-pipeline/pipeline-service/domain/entities"
	domainerrors "pressroom/contexts/project-pipeline/pipeline-service/domain/errors"
	"pressroom/contexts/project-pipeline/pipeline-service/ports"

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

func (r *Repository) CreateProject(ctx context.Context, project entities.Project) error {
	if strings.TrimSpace(project.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}
	row := projectModelFromEntity(project)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidProjectInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetProject(ctx context.Context, organizationID string, projectID string) (entities.Project, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Project{}, domainerrors.ErrOrganizationScopeMissing
	}

	var row projectModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND project_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(projectID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Project{}, domainerrors.ErrProjectNotFound
		}
		return entities.Project{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateProject(ctx context.Context, project entities.Project) error {
	if strings.TrimSpace(project.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	result := r.db.WithContext(ctx).
		Model(&projectModel{}).
		Where("organization_id = ? AND project_id = ?", project.OrganizationID, strings.TrimSpace(project.ProjectID)).
		Updates(map[string]any{
			"name":          strings.TrimSpace(project.Name),
			"current_stage": string(project.CurrentStage),
			"updated_at":    project.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProjectNotFound
	}
	return nil
}

// ClaimTransition relies on the transition target column being NULL while no
// move is in flight; the conditional update is the compare-and-set.
func (r *Repository) ClaimTransition(
	ctx context.Context,
	organizationID string,
	projectID string,
	transition entities.StageTransition,
) error {
	if strings.TrimSpace(organizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	result := r.db.WithContext(ctx).
		Model(&projectModel{}).
		Where("organization_id = ? AND project_id = ? AND transition_target IS NULL",
			strings.TrimSpace(organizationID), strings.TrimSpace(projectID)).
		Updates(map[string]any{
			"transition_target":     string(transition.TargetStage),
			"transition_trigger":    string(transition.TriggeredBy),
			"transition_started_at": transition.StartedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetProject(ctx, organizationID, projectID); err != nil {
			return err
		}
		return domainerrors.ErrTransitionInFlight
	}
	return nil
}

func (r *Repository) ClearTransition(ctx context.Context, organizationID string, projectID string) error {
	if strings.TrimSpace(organizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	result := r.db.WithContext(ctx).
		Model(&projectModel{}).
		Where("organization_id = ? AND project_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(projectID)).
		Updates(map[string]any{
			"transition_target":     nil,
			"transition_trigger":    nil,
			"transition_started_at": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProjectNotFound
	}
	return nil
}

func (r *Repository) AppendStageEntry(ctx context.Context, entry entities.StageHistoryEntry) error {
	if strings.TrimSpace(entry.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}
	row := stageHistoryModel{
		EntryID:        strings.TrimSpace(entry.EntryID),
		OrganizationID: strings.TrimSpace(entry.OrganizationID),
		ProjectID:      strings.TrimSpace(entry.ProjectID),
		Stage:          string(entry.Stage),
		EnteredAt:      entry.EnteredAt.UTC(),
		CompletedAt:    normalizeOptionalTime(entry.CompletedAt),
		TriggeredBy:    string(entry.TriggeredBy),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidProjectInput
		}
		return err
	}
	return nil
}

func (r *Repository) CompleteLatestStageEntry(
	ctx context.Context,
	organizationID string,
	projectID string,
	completedAt time.Time,
) error {
	if strings.TrimSpace(organizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	var row stageHistoryModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND project_id = ? AND completed_at IS NULL",
			strings.TrimSpace(organizationID), strings.TrimSpace(projectID)).
		Order("entered_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrProjectNotFound
		}
		return err
	}

	return r.db.WithContext(ctx).
		Model(&stageHistoryModel{}).
		Where("entry_id = ?", row.EntryID).
		Update("completed_at", completedAt.UTC()).
		Error
}

func (r *Repository) ListStageHistory(ctx context.Context, organizationID string, projectID string) ([]entities.StageHistoryEntry, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domainerrors.ErrOrganizationScopeMissing
	}

	var rows []stageHistoryModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND project_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(projectID)).
		Order("entered_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.StageHistoryEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.StageHistoryEntry{
			EntryID:        row.EntryID,
			OrganizationID: row.OrganizationID,
			ProjectID:      row.ProjectID,
			Stage:          entities.Stage(row.Stage),
			EnteredAt:      row.EnteredAt.UTC(),
			CompletedAt:    normalizeOptionalTime(row.CompletedAt),
			TriggeredBy:    entities.TriggerType(row.TriggeredBy),
		})
	}
	return items, nil
}

func (r *Repository) ListProjectTasks(ctx context.Context, organizationID string, projectID string) ([]ports.TaskView, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domainerrors.ErrOrganizationScopeMissing
	}

	var rows []taskViewModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND project_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(projectID)).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.TaskView, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.TaskView{
			TaskID:                     row.TaskID,
			Status:                     row.Status,
			StageContext:               row.StageContext,
			RequiredForStageCompletion: row.RequiredForStageCompletion,
			BlocksStageTransition:      row.BlocksStageTransition,
			DependsOnStageCompletion:   splitList(row.DependsOnStageCompletion),
			AutoCompleteOnStageChange:  row.AutoCompleteOnStageChange,
		})
	}
	return items, nil
}

func (r *Repository) CompleteTask(ctx context.Context, organizationID string, taskID string, completedAt time.Time) error {
	if strings.TrimSpace(organizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	result := r.db.WithContext(ctx).
		Model(&taskViewModel{}).
		Where("organization_id = ? AND task_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(taskID)).
		Updates(map[string]any{
			"status":     "completed",
			"updated_at": completedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProjectNotFound
	}
	return nil
}

func (r *Repository) CreateStageTask(ctx context.Context, spec ports.StageTaskSpec) error {
	if strings.TrimSpace(spec.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}

	now := time.Now().UTC()
	row := taskViewModel{
		TaskID:                     newTaskID(),
		OrganizationID:             strings.TrimSpace(spec.OrganizationID),
		ProjectID:                  strings.TrimSpace(spec.ProjectID),
		Title:                      strings.TrimSpace(spec.Title),
		Status:                     "pending",
		StageContext:               strings.TrimSpace(spec.StageContext),
		RequiredForStageCompletion: spec.RequiredForStageCompletion,
		BlocksStageTransition:      spec.BlocksStageTransition,
		AutoCompleteOnStageChange:  spec.AutoCompleteOnStageChange,
		AutoCreated:                true,
		DueAt:                      normalizeOptionalTime(spec.DueAt),
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidProjectInput
		}
		return err
	}
	return nil
}

func (r *Repository) ListStageTemplates(
	ctx context.Context,
	organizationID string,
	projectID string,
	stage entities.Stage,
) ([]ports.TaskTemplate, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domainerrors.ErrOrganizationScopeMissing
	}

	var rows []stageTemplateModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND project_id = ? AND stage = ?",
			strings.TrimSpace(organizationID), strings.TrimSpace(projectID), string(stage)).
		Order("title ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.TaskTemplate, 0, len(rows))
	for _, row := range rows {
		template := ports.TaskTemplate{
			Title:                      row.Title,
			RequiredForStageCompletion: row.RequiredForStageCompletion,
			BlocksStageTransition:      row.BlocksStageTransition,
			AutoCompleteOnStageChange:  row.AutoCompleteOnStageChange,
		}
		if row.DeadlineDays != nil {
			template.DeadlineRules = &ports.DeadlineRule{
				DaysAfterStageEntry: *row.DeadlineDays,
				CascadeDelay:        row.CascadeDelay,
			}
		}
		items = append(items, template)
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
