package httptransport

type DeadlineRulesDTO struct {
	DaysAfterStageEntry int  `json:"days_after_stage_entry"`
	CascadeDelay        bool `json:"cascade_delay"`
}

type TaskDTO struct {
	TaskID                     string            `json:"task_id"`
	ProjectID                  string            `json:"project_id"`
	Title                      string            `json:"title"`
	Status                     string            `json:"status"`
	DependsOnTaskIDs           []string          `json:"depends_on_task_ids"`
	DependsOnStageCompletion   []string          `json:"depends_on_stage_completion"`
	RequiredForStageCompletion bool              `json:"required_for_stage_completion"`
	BlocksStageTransition      bool              `json:"blocks_stage_transition"`
	StageContext               string            `json:"stage_context,omitempty"`
	DeadlineRules              *DeadlineRulesDTO `json:"deadline_rules,omitempty"`
	DueAt                      string            `json:"due_at,omitempty"`
	AutoCreated                bool              `json:"auto_created"`
	AutoCompleteOnStageChange  bool              `json:"auto_complete_on_stage_change"`
	CreatedAt                  string            `json:"created_at"`
	UpdatedAt                  string            `json:"updated_at"`
	CompletedAt                string            `json:"completed_at,omitempty"`
}

type CreateTaskRequest struct {
	ProjectID                  string            `json:"project_id"`
	Title                      string            `json:"title"`
	DependsOnTaskIDs           []string          `json:"depends_on_task_ids"`
	DependsOnStageCompletion   []string          `json:"depends_on_stage_completion"`
	RequiredForStageCompletion bool              `json:"required_for_stage_completion"`
	BlocksStageTransition      bool              `json:"blocks_stage_transition"`
	StageContext               string            `json:"stage_context"`
	DeadlineRules              *DeadlineRulesDTO `json:"deadline_rules"`
	AutoCompleteOnStageChange  bool              `json:"auto_complete_on_stage_change"`
}

type CreateTaskResponse struct {
	Task TaskDTO `json:"task"`
}

type EditDependenciesRequest struct {
	DependsOnTaskIDs         []string `json:"depends_on_task_ids"`
	DependsOnStageCompletion []string `json:"depends_on_stage_completion"`
}

type EditDependenciesResponse struct {
	Task TaskDTO `json:"task"`
}

type CompleteTaskResponse struct {
	Task TaskDTO `json:"task"`
}

type RescheduleTaskRequest struct {
	DueAt string `json:"due_at"`
}

type RescheduleTaskResponse struct {
	Task            TaskDTO  `json:"task"`
	CascadedTaskIDs []string `json:"cascaded_task_ids"`
}

type ListTasksResponse struct {
	Items []TaskDTO `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
