package httptransport

type ProjectDTO struct {
	ProjectID    string `json:"project_id"`
	Name         string `json:"name"`
	CurrentStage string `json:"current_stage"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type CreateProjectRequest struct {
	Name string `json:"name"`
}

type CreateProjectResponse struct {
	Project ProjectDTO `json:"project"`
}

type GetProjectResponse struct {
	Project ProjectDTO `json:"project"`
}

type StageMoveRequest struct {
	TargetStage string `json:"target_stage"`
	TriggeredBy string `json:"triggered_by"`
}

type StageMoveResponse struct {
	Project          ProjectDTO `json:"project"`
	AutoCompletedIDs []string   `json:"auto_completed_task_ids"`
	AutoCreatedCount int        `json:"auto_created_task_count"`
}

type StageHistoryEntryDTO struct {
	Stage       string `json:"stage"`
	EnteredAt   string `json:"entered_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	TriggeredBy string `json:"triggered_by"`
}

type StageHistoryResponse struct {
	Items []StageHistoryEntryDTO `json:"items"`
}

type ErrorResponse struct {
	Code            string   `json:"code"`
	Message         string   `json:"message"`
	BlockingTaskIDs []string `json:"blocking_task_ids,omitempty"`
}
