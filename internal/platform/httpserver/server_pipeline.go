package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	pipelineerrors "pressroom/contexts/project-pipeline/pipeline-service/domain/errors"
	pipelinehttp "pressroom/contexts/project-pipeline/pipeline-service/transport/http"
)

func writePipelineError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pipelinehttp.ErrorResponse{Code: code, Message: message})
}

func writePipelineDomainError(w http.ResponseWriter, err error) {
	var blocked *pipelineerrors.BlockedError
	if errors.As(err, &blocked) {
		writeJSON(w, http.StatusConflict, pipelinehttp.ErrorResponse{
			Code:            "stage_move_blocked",
			Message:         err.Error(),
			BlockingTaskIDs: blocked.TaskIDs,
		})
		return
	}

	switch {
	case errors.Is(err, pipelineerrors.ErrProjectNotFound):
		writePipelineError(w, http.StatusNotFound, "project_not_found", err.Error())
	case errors.Is(err, pipelineerrors.ErrStageMoveBlocked):
		writePipelineError(w, http.StatusConflict, "stage_move_blocked", err.Error())
	case errors.Is(err, pipelineerrors.ErrInvalidStageMove):
		writePipelineError(w, http.StatusConflict, "invalid_stage_move", err.Error())
	case errors.Is(err, pipelineerrors.ErrTransitionInFlight):
		writePipelineError(w, http.StatusConflict, "transition_in_flight", err.Error())
	case errors.Is(err, pipelineerrors.ErrInvalidProjectInput):
		writePipelineError(w, http.StatusUnprocessableEntity, "invalid_project", err.Error())
	case errors.Is(err, pipelineerrors.ErrOrganizationScopeMissing):
		writePipelineError(w, http.StatusBadRequest, "missing_org", err.Error())
	default:
		writePipelineError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requirePipelineOrg(w http.ResponseWriter, r *http.Request) (string, bool) {
	orgID := resolveOrgID(r)
	if orgID == "" {
		writePipelineError(w, http.StatusBadRequest, "missing_org", "X-Org-Id header is required")
		return "", false
	}
	return orgID, true
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requirePipelineOrg(w, r)
	if !ok {
		return
	}

	var req pipelinehttp.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePipelineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.pipeline.Handler.CreateProjectHandler(r.Context(), orgID, resolveUserID(r), req)
	if err != nil {
		writePipelineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requirePipelineOrg(w, r)
	if !ok {
		return
	}

	resp, err := s.pipeline.Handler.GetProjectHandler(r.Context(), orgID, r.PathValue("project_id"))
	if err != nil {
		writePipelineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStageMove(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requirePipelineOrg(w, r)
	if !ok {
		return
	}

	var req pipelinehttp.StageMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePipelineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.pipeline.Handler.StageMoveHandler(
		r.Context(),
		orgID,
		resolveUserID(r),
		r.PathValue("project_id"),
		req,
	)
	if err != nil {
		writePipelineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStageHistory(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requirePipelineOrg(w, r)
	if !ok {
		return
	}

	resp, err := s.pipeline.Handler.StageHistoryHandler(r.Context(), orgID, r.PathValue("project_id"))
	if err != nil {
		writePipelineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
