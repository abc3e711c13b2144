package postgresadapter

import (
	"encoding/json"
	"strings"
	"time"

	"pressroom/contexts/campaign-approval/approval-service/domain/entities"
)

type workflowModel struct {
	WorkflowID      string          `gorm:"column:workflow_id;primaryKey"`
	OrganizationID  string          `gorm:"column:organization_id"`
	CampaignID      string          `gorm:"column:campaign_id"`
	Cycle           int             `gorm:"column:cycle"`
	RequireTeam     bool            `gorm:"column:require_team"`
	RequireCustomer bool            `gorm:"column:require_customer"`
	CurrentStage    string          `gorm:"column:current_stage"`
	Outcome         string          `gorm:"column:outcome"`
	ViewState       string          `gorm:"column:view_state"`
	TeamApprovers   json.RawMessage `gorm:"column:team_approvers;type:jsonb"`
	CustomerContact json.RawMessage `gorm:"column:customer_contact;type:jsonb"`
	ActiveVersionID string          `gorm:"column:active_version_id"`
	SchemaVersion   int             `gorm:"column:schema_version"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
	CompletedAt     *time.Time      `gorm:"column:completed_at"`
}

func (workflowModel) TableName() string {
	return "approval_workflows"
}

type approverDoc struct {
	ActorID   string     `json:"actor_id"`
	Status    string     `json:"status"`
	Comment   string     `json:"comment,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}

type contactDoc struct {
	ContactID string `json:"contact_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

func workflowModelFromEntity(item entities.Workflow) (workflowModel, error) {
	approvers := make([]approverDoc, 0, len(item.TeamApprovers))
	for _, approver := range item.TeamApprovers {
		approvers = append(approvers, approverDoc{
			ActorID:   approver.ActorID,
			Status:    string(approver.Status),
			Comment:   approver.Comment,
			DecidedAt: normalizeOptionalTime(approver.DecidedAt),
		})
	}
	approversJSON, err := json.Marshal(approvers)
	if err != nil {
		return workflowModel{}, err
	}

	var contactJSON json.RawMessage
	if item.CustomerContact != nil {
		contactJSON, err = json.Marshal(contactDoc{
			ContactID: item.CustomerContact.ContactID,
			Name:      item.CustomerContact.Name,
			Email:     item.CustomerContact.Email,
		})
		if err != nil {
			return workflowModel{}, err
		}
	}

	return workflowModel{
		WorkflowID:      strings.TrimSpace(item.WorkflowID),
		OrganizationID:  strings.TrimSpace(item.OrganizationID),
		CampaignID:      strings.TrimSpace(item.CampaignID),
		Cycle:           item.Cycle,
		RequireTeam:     item.RequireTeam,
		RequireCustomer: item.RequireCustomer,
		CurrentStage:    string(item.CurrentStage),
		Outcome:         string(item.Outcome),
		ViewState:       string(item.ViewState),
		TeamApprovers:   approversJSON,
		CustomerContact: contactJSON,
		ActiveVersionID: strings.TrimSpace(item.ActiveVersionID),
		SchemaVersion:   item.SchemaVersion,
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
		CompletedAt:     normalizeOptionalTime(item.CompletedAt),
	}, nil
}

func workflowUpdatesFromEntity(item entities.Workflow) (map[string]any, error) {
	row, err := workflowModelFromEntity(item)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"cycle":             row.Cycle,
		"require_team":      row.RequireTeam,
		"require_customer":  row.RequireCustomer,
		"current_stage":     row.CurrentStage,
		"outcome":           row.Outcome,
		"view_state":        row.ViewState,
		"team_approvers":    row.TeamApprovers,
		"customer_contact":  row.CustomerContact,
		"active_version_id": row.ActiveVersionID,
		"schema_version":    row.SchemaVersion,
		"updated_at":        row.UpdatedAt,
		"completed_at":      row.CompletedAt,
	}, nil
}

func (m workflowModel) toEntity() (entities.Workflow, error) {
	var approverDocs []approverDoc
	if len(m.TeamApprovers) > 0 {
		if err := json.Unmarshal(m.TeamApprovers, &approverDocs); err != nil {
			return entities.Workflow{}, err
		}
	}
	approvers := make([]entities.TeamApprover, 0, len(approverDocs))
	for _, doc := range approverDocs {
		approvers = append(approvers, entities.TeamApprover{
			ActorID:   doc.ActorID,
			Status:    entities.ApproverStatus(doc.Status),
			Comment:   doc.Comment,
			DecidedAt: normalizeOptionalTime(doc.DecidedAt),
		})
	}

	var contact *entities.CustomerContact
	if len(m.CustomerContact) > 0 {
		var doc contactDoc
		if err := json.Unmarshal(m.CustomerContact, &doc); err != nil {
			return entities.Workflow{}, err
		}
		contact = &entities.CustomerContact{
			ContactID: doc.ContactID,
			Name:      doc.Name,
			Email:     doc.Email,
		}
	}

	workflow := entities.Workflow{
		WorkflowID:      m.WorkflowID,
		OrganizationID:  m.OrganizationID,
		CampaignID:      m.CampaignID,
		Cycle:           m.Cycle,
		RequireTeam:     m.RequireTeam,
		RequireCustomer: m.RequireCustomer,
		CurrentStage:    entities.WorkflowStage(m.CurrentStage),
		Outcome:         entities.WorkflowOutcome(m.Outcome),
		ViewState:       entities.ViewState(m.ViewState),
		TeamApprovers:   approvers,
		CustomerContact: contact,
		ActiveVersionID: m.ActiveVersionID,
		SchemaVersion:   m.SchemaVersion,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
		CompletedAt:     normalizeOptionalTime(m.CompletedAt),
	}
	return entities.NormalizeWorkflow(workflow), nil
}

type decisionModel struct {
	Seq            int64           `gorm:"column:seq;primaryKey;autoIncrement"`
	EventID        string          `gorm:"column:event_id;uniqueIndex"`
	OrganizationID string          `gorm:"column:organization_id"`
	WorkflowID     string          `gorm:"column:workflow_id"`
	CampaignID     string          `gorm:"column:campaign_id"`
	ActorID        string          `gorm:"column:actor_id"`
	ActorRole      string          `gorm:"column:actor_role"`
	Action         string          `gorm:"column:action"`
	Comment        string          `gorm:"column:comment"`
	InlineComments json.RawMessage `gorm:"column:inline_comments;type:jsonb"`
	OccurredAt     time.Time       `gorm:"column:occurred_at"`
}

func (decisionModel) TableName() string {
	return "approval_decision_log"
}

type inlineCommentDoc struct {
	Page  int    `json:"page"`
	Quote string `json:"quote,omitempty"`
	Note  string `json:"note"`
}

func decisionModelFromEntity(item entities.DecisionEvent) (decisionModel, error) {
	var inlineJSON json.RawMessage
	if len(item.InlineComments) > 0 {
		docs := make([]inlineCommentDoc, 0, len(item.InlineComments))
		for _, comment := range item.InlineComments {
			docs = append(docs, inlineCommentDoc{
				Page:  comment.Page,
				Quote: comment.Quote,
				Note:  comment.Note,
			})
		}
		payload, err := json.Marshal(docs)
		if err != nil {
			return decisionModel{}, err
		}
		inlineJSON = payload
	}
	return decisionModel{
		EventID:        strings.TrimSpace(item.EventID),
		OrganizationID: strings.TrimSpace(item.OrganizationID),
		WorkflowID:     strings.TrimSpace(item.WorkflowID),
		CampaignID:     strings.TrimSpace(item.CampaignID),
		ActorID:        strings.TrimSpace(item.ActorID),
		ActorRole:      string(item.ActorRole),
		Action:         string(item.Action),
		Comment:        strings.TrimSpace(item.Comment),
		InlineComments: inlineJSON,
		OccurredAt:     item.OccurredAt.UTC(),
	}, nil
}

func (m decisionModel) toEntity() (entities.DecisionEvent, error) {
	var inline []entities.InlineComment
	if len(m.InlineComments) > 0 {
		var docs []inlineCommentDoc
		if err := json.Unmarshal(m.InlineComments, &docs); err != nil {
			return entities.DecisionEvent{}, err
		}
		for _, doc := range docs {
			inline = append(inline, entities.InlineComment{
				Page:  doc.Page,
				Quote: doc.Quote,
				Note:  doc.Note,
			})
		}
	}
	return entities.DecisionEvent{
		EventID:        m.EventID,
		OrganizationID: m.OrganizationID,
		WorkflowID:     m.WorkflowID,
		CampaignID:     m.CampaignID,
		ActorID:        m.ActorID,
		ActorRole:      entities.ActorRole(m.ActorRole),
		Action:         entities.DecisionAction(m.Action),
		Comment:        m.Comment,
		InlineComments: inline,
		OccurredAt:     m.OccurredAt.UTC(),
	}, nil
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	RetryCount  int        `gorm:"column:retry_count"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "approval_outbox"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}
