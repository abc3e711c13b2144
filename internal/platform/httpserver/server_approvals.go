package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	approvalerrors "pressroom/contexts/campaign-approval/approval-service/domain/errors"
	approvalhttp "pressroom/contexts/campaign-approval/approval-service/transport/http"
)

func writeApprovalError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, approvalhttp.ErrorResponse{Code: code, Message: message})
}

func writeApprovalDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, approvalerrors.ErrWorkflowNotFound):
		writeApprovalError(w, http.StatusNotFound, "workflow_not_found", err.Error())
	case errors.Is(err, approvalerrors.ErrApproverNotFound):
		writeApprovalError(w, http.StatusNotFound, "approver_not_found", err.Error())
	case errors.Is(err, approvalerrors.ErrWorkflowAlreadyActive):
		writeApprovalError(w, http.StatusConflict, "workflow_already_active", err.Error())
	case errors.Is(err, approvalerrors.ErrWorkflowCompleted):
		writeApprovalError(w, http.StatusConflict, "workflow_completed", err.Error())
	case errors.Is(err, approvalerrors.ErrInvalidDecisionStage):
		writeApprovalError(w, http.StatusConflict, "invalid_decision_stage", err.Error())
	case errors.Is(err, approvalerrors.ErrInvalidWorkflowConfig):
		writeApprovalError(w, http.StatusBadRequest, "invalid_config", err.Error())
	case errors.Is(err, approvalerrors.ErrCommentRequired):
		writeApprovalError(w, http.StatusUnprocessableEntity, "comment_required", err.Error())
	case errors.Is(err, approvalerrors.ErrInvalidWorkflowInput):
		writeApprovalError(w, http.StatusUnprocessableEntity, "invalid_workflow_input", err.Error())
	case errors.Is(err, approvalerrors.ErrOrganizationScopeMissing):
		writeApprovalError(w, http.StatusBadRequest, "missing_org", err.Error())
	default:
		writeApprovalError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireApprovalOrg(w http.ResponseWriter, r *http.Request) (string, bool) {
	orgID := resolveOrgID(r)
	if orgID == "" {
		writeApprovalError(w, http.StatusBadRequest, "missing_org", "X-Org-Id header is required")
		return "", false
	}
	return orgID, true
}

func (s *Server) handleStartWorkflow(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireApprovalOrg(w, r)
	if !ok {
		return
	}

	var req approvalhttp.StartWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeApprovalError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.approvals.Handler.StartWorkflowHandler(r.Context(), orgID, resolveUserID(r), req)
	if err != nil {
		writeApprovalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireApprovalOrg(w, r)
	if !ok {
		return
	}

	resp, err := s.approvals.Handler.GetWorkflowHandler(r.Context(), orgID, r.PathValue("workflow_id"))
	if err != nil {
		writeApprovalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitDecision(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireApprovalOrg(w, r)
	if !ok {
		return
	}

	var req approvalhttp.SubmitDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeApprovalError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if req.ActorID == "" {
		req.ActorID = resolveUserID(r)
	}

	resp, err := s.approvals.Handler.SubmitDecisionHandler(r.Context(), orgID, r.PathValue("workflow_id"), req)
	if err != nil {
		writeApprovalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkflowHistory(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireApprovalOrg(w, r)
	if !ok {
		return
	}

	resp, err := s.approvals.Handler.HistoryHandler(r.Context(), orgID, r.PathValue("workflow_id"))
	if err != nil {
		writeApprovalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
