package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pressroom/contexts/campaign-approval/approval-service/domain/entities"
	domainerrors "pressroom/contexts/campaign-approval/approval-service/domain/errors"
	"pressroom/internal/shared/events"
	"pressroom/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
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

func (r *Repository) CreateWorkflow(ctx context.Context, workflow entities.Workflow) error {
	if strings.TrimSpace(workflow.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}
	row, err := workflowModelFromEntity(workflow)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&workflowModel{}).
			Where("organization_id = ? AND campaign_id = ? AND current_stage <> ?",
				row.OrganizationID, row.CampaignID, string(entities.WorkflowStageCompleted)).
			Count(&active).
			Error; err != nil {
			return err
		}
		if active > 0 {
			return domainerrors.ErrWorkflowAlreadyActive
		}
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrWorkflowAlreadyActive
			}
			return err
		}
		return nil
	})
}

func (r *Repository) GetWorkflow(ctx context.Context, organizationID string, workflowID string) (entities.Workflow, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Workflow{}, domainerrors.ErrOrganizationScopeMissing
	}

	var row workflowModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND workflow_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(workflowID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Workflow{}, domainerrors.ErrWorkflowNotFound
		}
		return entities.Workflow{}, err
	}
	return row.toEntity()
}

func (r *Repository) GetActiveWorkflowByCampaign(ctx context.Context, organizationID string, campaignID string) (entities.Workflow, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Workflow{}, domainerrors.ErrOrganizationScopeMissing
	}

	var row workflowModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND campaign_id = ? AND current_stage <> ?",
			strings.TrimSpace(organizationID), strings.TrimSpace(campaignID), string(entities.WorkflowStageCompleted)).
		Order("cycle DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Workflow{}, domainerrors.ErrWorkflowNotFound
		}
		return entities.Workflow{}, err
	}
	return row.toEntity()
}

func (r *Repository) GetLatestWorkflowByCampaign(ctx context.Context, organizationID string, campaignID string) (entities.Workflow, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Workflow{}, domainerrors.ErrOrganizationScopeMissing
	}

	var row workflowModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND campaign_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(campaignID)).
		Order("cycle DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Workflow{}, domainerrors.ErrWorkflowNotFound
		}
		return entities.Workflow{}, err
	}
	return row.toEntity()
}

func (r *Repository) CountWorkflowCycles(ctx context.Context, organizationID string, campaignID string) (int, error) {
	if strings.TrimSpace(organizationID) == "" {
		return 0, domainerrors.ErrOrganizationScopeMissing
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&workflowModel{}).
		Where("organization_id = ? AND campaign_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(campaignID)).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) RecordApproverDecision(
	ctx context.Context,
	organizationID string,
	workflowID string,
	actorID string,
	status entities.ApproverStatus,
	comment string,
	decidedAt time.Time,
) (entities.Workflow, bool, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Workflow{}, false, domainerrors.ErrOrganizationScopeMissing
	}

	var result entities.Workflow
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row workflowModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("organization_id = ? AND workflow_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(workflowID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrWorkflowNotFound
			}
			return err
		}

		workflow, err := row.toEntity()
		if err != nil {
			return err
		}
		index, ok := workflow.FindApprover(actorID)
		if !ok {
			return domainerrors.ErrApproverNotFound
		}
		if workflow.TeamApprovers[index].Status != entities.ApproverStatusPending {
			result = workflow
			return nil
		}

		timestamp := decidedAt.UTC()
		workflow.TeamApprovers[index].Status = status
		workflow.TeamApprovers[index].Comment = strings.TrimSpace(comment)
		workflow.TeamApprovers[index].DecidedAt = &timestamp
		workflow.UpdatedAt = timestamp

		updates, err := workflowUpdatesFromEntity(workflow)
		if err != nil {
			return err
		}
		if err := tx.Model(&workflowModel{}).
			Where("workflow_id = ?", workflow.WorkflowID).
			Updates(updates).
			Error; err != nil {
			return err
		}
		result = workflow
		changed = true
		return nil
	})
	if err != nil {
		return entities.Workflow{}, false, err
	}
	return result, changed, nil
}

func (r *Repository) UpdateWorkflow(ctx context.Context, workflow entities.Workflow, expectedStage entities.WorkflowStage) error {
	if strings.TrimSpace(workflow.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}
	updates, err := workflowUpdatesFromEntity(workflow)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&workflowModel{}).
		Where("organization_id = ? AND workflow_id = ? AND current_stage = ?",
			workflow.OrganizationID, strings.TrimSpace(workflow.WorkflowID), string(expectedStage)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetWorkflow(ctx, workflow.OrganizationID, workflow.WorkflowID); err != nil {
			return err
		}
		return domainerrors.ErrWorkflowCompleted
	}
	return nil
}

func (r *Repository) AdvanceViewState(
	ctx context.Context,
	organizationID string,
	workflowID string,
	state entities.ViewState,
) (entities.Workflow, bool, error) {
	if strings.TrimSpace(organizationID) == "" {
		return entities.Workflow{}, false, domainerrors.ErrOrganizationScopeMissing
	}

	var result entities.Workflow
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row workflowModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("organization_id = ? AND workflow_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(workflowID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrWorkflowNotFound
			}
			return err
		}

		workflow, err := row.toEntity()
		if err != nil {
			return err
		}
		if entities.ViewStateRank(state) <= entities.ViewStateRank(workflow.ViewState) {
			result = workflow
			return nil
		}

		workflow.ViewState = state
		updates, err := workflowUpdatesFromEntity(workflow)
		if err != nil {
			return err
		}
		if err := tx.Model(&workflowModel{}).
			Where("workflow_id = ?", workflow.WorkflowID).
			Updates(updates).
			Error; err != nil {
			return err
		}
		result = workflow
		changed = true
		return nil
	})
	if err != nil {
		return entities.Workflow{}, false, err
	}
	return result, changed, nil
}

func (r *Repository) AppendDecision(ctx context.Context, event entities.DecisionEvent) error {
	if strings.TrimSpace(event.OrganizationID) == "" {
		return domainerrors.ErrOrganizationScopeMissing
	}
	row, err := decisionModelFromEntity(event)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidWorkflowInput
		}
		return err
	}
	return nil
}

func (r *Repository) ListDecisions(ctx context.Context, organizationID string, workflowID string) ([]entities.DecisionEvent, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domainerrors.ErrOrganizationScopeMissing
	}

	var rows []decisionModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND workflow_id = ?", strings.TrimSpace(organizationID), strings.TrimSpace(workflowID)).
		Order("seq ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.DecisionEvent, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope events.Envelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:  strings.TrimSpace(envelope.EventID),
		EventType: strings.TrimSpace(envelope.EventType),
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: envelope.OccurredAtUTC.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "outbox_id"}},
			DoNothing: true,
		}).
		Create(&row)
	return createResult.Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, outbox.Message{
			ID:         row.OutboxID,
			EventType:  row.EventType,
			Payload:    append([]byte(nil), row.Payload...),
			Status:     row.Status,
			RetryCount: row.RetryCount,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidWorkflowInput
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
