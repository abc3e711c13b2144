package httptransport

type TeamApproverDTO struct {
	ActorID   string `json:"actor_id"`
	Status    string `json:"status"`
	Comment   string `json:"comment,omitempty"`
	DecidedAt string `json:"decided_at,omitempty"`
}

type CustomerContactDTO struct {
	ContactID string `json:"contact_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

type WorkflowDTO struct {
	WorkflowID      string              `json:"workflow_id"`
	CampaignID      string              `json:"campaign_id"`
	Cycle           int                 `json:"cycle"`
	CurrentStage    string              `json:"current_stage"`
	Outcome         string              `json:"outcome"`
	ViewState       string              `json:"view_state"`
	TeamApprovers   []TeamApproverDTO   `json:"team_approvers"`
	CustomerContact *CustomerContactDTO `json:"customer_contact,omitempty"`
	ActiveVersionID string              `json:"active_version_id,omitempty"`
	CreatedAt       string              `json:"created_at"`
	CompletedAt     string              `json:"completed_at,omitempty"`
}

type InlineCommentDTO struct {
	Page  int    `json:"page"`
	Quote string `json:"quote,omitempty"`
	Note  string `json:"note"`
}

type DecisionEventDTO struct {
	ActorID        string             `json:"actor_id"`
	ActorRole      string             `json:"actor_role"`
	Action         string             `json:"action"`
	Comment        string             `json:"comment,omitempty"`
	InlineComments []InlineCommentDTO `json:"inline_comments,omitempty"`
	OccurredAt     string             `json:"occurred_at"`
}

type StartWorkflowRequest struct {
	CampaignID      string              `json:"campaign_id"`
	RequireTeam     bool                `json:"require_team"`
	RequireCustomer bool                `json:"require_customer"`
	ApproverIDs     []string            `json:"approver_ids"`
	CustomerContact *CustomerContactDTO `json:"customer_contact,omitempty"`
}

type StartWorkflowResponse struct {
	Workflow WorkflowDTO `json:"workflow"`
}

type SubmitDecisionRequest struct {
	ActorID        string             `json:"actor_id"`
	ActorRole      string             `json:"actor_role"`
	Outcome        string             `json:"outcome"`
	Comment        string             `json:"comment,omitempty"`
	InlineComments []InlineCommentDTO `json:"inline_comments,omitempty"`
}

type SubmitDecisionResponse struct {
	Workflow WorkflowDTO `json:"workflow"`
	Applied  bool        `json:"applied"`
}

type GetWorkflowResponse struct {
	Workflow WorkflowDTO `json:"workflow"`
}

type HistoryResponse struct {
	Items []DecisionEventDTO `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
