package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	approvalservice "pressroom/contexts/campaign-approval/approval-service"
	campaignservice "pressroom/contexts/campaign-approval/campaign-service"
	sharegateway "pressroom/contexts/campaign-approval/share-gateway"
	versionservice "pressroom/contexts/campaign-approval/version-service"
	pipelineservice "pressroom/contexts/project-pipeline/pipeline-service"
	taskservice "pressroom/contexts/project-pipeline/task-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "pressroom/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	campaigns campaignservice.Module
	approvals approvalservice.Module
	versions  versionservice.Module
	share     sharegateway.Module
	pipeline  pipelineservice.Module
	tasks     taskservice.Module
}

func New(
	campaigns campaignservice.Module,
	approvals approvalservice.Module,
	versions versionservice.Module,
	share sharegateway.Module,
	pipeline pipelineservice.Module,
	tasks taskservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		campaigns: campaigns,
		approvals: approvals,
		versions:  versions,
		share:     share,
		pipeline:  pipeline,
		tasks:     tasks,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/status", s.handleChangeCampaignStatus)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}/status-history", s.handleCampaignStatusHistory)

	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/versions", s.handleCreateVersion)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}/versions", s.handleListVersions)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}/versions/current", s.handleGetCurrentVersion)
	s.mux.HandleFunc("POST /v1/versions/{version_id}/status", s.handleUpdateVersionStatus)

	s.mux.HandleFunc("POST /v1/approvals", s.handleStartWorkflow)
	s.mux.HandleFunc("GET /v1/approvals/{workflow_id}", s.handleGetWorkflow)
	s.mux.HandleFunc("POST /v1/approvals/{workflow_id}/decisions", s.handleSubmitDecision)
	s.mux.HandleFunc("GET /v1/approvals/{workflow_id}/history", s.handleWorkflowHistory)

	s.mux.HandleFunc("POST /v1/share-links", s.handleCreateShareLink)
	s.mux.HandleFunc("POST /v1/share-links/{link_id}/revoke", s.handleRevokeShareLink)

	// Token routes are the only surface reachable without internal headers.
	s.mux.HandleFunc("GET /share/{token}", s.handleShareResolve)
	s.mux.HandleFunc("POST /share/{token}/viewed", s.handleShareMarkViewed)
	s.mux.HandleFunc("POST /share/{token}/decision", s.handleShareDecide)

	s.mux.HandleFunc("POST /v1/projects", s.handleCreateProject)
	s.mux.HandleFunc("GET /v1/projects/{project_id}", s.handleGetProject)
	s.mux.HandleFunc("POST /v1/projects/{project_id}/stage-moves", s.handleStageMove)
	s.mux.HandleFunc("GET /v1/projects/{project_id}/stage-history", s.handleStageHistory)

	s.mux.HandleFunc("POST /v1/projects/{project_id}/tasks", s.handleCreateTask)
	s.mux.HandleFunc("GET /v1/projects/{project_id}/tasks", s.handleListTasks)
	s.mux.HandleFunc("POST /v1/tasks/{task_id}/complete", s.handleCompleteTask)
	s.mux.HandleFunc("PUT /v1/tasks/{task_id}/dependencies", s.handleEditTaskDependencies)
	s.mux.HandleFunc("POST /v1/tasks/{task_id}/reschedule", s.handleRescheduleTask)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveOrgID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Org-Id"))
}

func resolveUserID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}
