package httptransport

type CampaignDTO struct {
	CampaignID       string `json:"campaign_id"`
	Name             string `json:"name"`
	Status           string `json:"status"`
	ActiveWorkflowID string `json:"active_workflow_id,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

type StatusHistoryEntryDTO struct {
	FromStatus string `json:"from_status,omitempty"`
	ToStatus   string `json:"to_status"`
	ActorID    string `json:"actor_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type CreateCampaignRequest struct {
	Name string `json:"name"`
}

type CreateCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type ChangeStatusResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type GetCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type StatusHistoryResponse struct {
	Items []StatusHistoryEntryDTO `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
