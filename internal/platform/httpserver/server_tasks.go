package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	taskerrors "pressroom/contexts/project-pipeline/task-service/domain/errors"
	taskhttp "pressroom/contexts/project-pipeline/task-service/transport/http"
)

func writeTaskError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, taskhttp.ErrorResponse{Code: code, Message: message})
}

func writeTaskDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, taskerrors.ErrTaskNotFound):
		writeTaskError(w, http.StatusNotFound, "task_not_found", err.Error())
	case errors.Is(err, taskerrors.ErrInvalidStatusTransition):
		writeTaskError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, taskerrors.ErrDependenciesIncomplete):
		writeTaskError(w, http.StatusConflict, "dependencies_incomplete", err.Error())
	case errors.Is(err, taskerrors.ErrDependencyCycle):
		writeTaskError(w, http.StatusUnprocessableEntity, "dependency_cycle", err.Error())
	case errors.Is(err, taskerrors.ErrUnknownDependency):
		writeTaskError(w, http.StatusUnprocessableEntity, "unknown_dependency", err.Error())
	case errors.Is(err, taskerrors.ErrInvalidTaskInput):
		writeTaskError(w, http.StatusUnprocessableEntity, "invalid_task", err.Error())
	case errors.Is(err, taskerrors.ErrOrganizationScopeMissing):
		writeTaskError(w, http.StatusBadRequest, "missing_org", err.Error())
	default:
		writeTaskError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireTaskOrg(w http.ResponseWriter, r *http.Request) (string, bool) {
	orgID := resolveOrgID(r)
	if orgID == "" {
		writeTaskError(w, http.StatusBadRequest, "missing_org", "X-Org-Id header is required")
		return "", false
	}
	return orgID, true
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireTaskOrg(w, r)
	if !ok {
		return
	}

	var req taskhttp.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTaskError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.ProjectID = r.PathValue("project_id")

	resp, err := s.tasks.Handler.CreateTaskHandler(r.Context(), orgID, req.ProjectID, req)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireTaskOrg(w, r)
	if !ok {
		return
	}

	resp, err := s.tasks.Handler.ListTasksHandler(r.Context(), orgID, r.PathValue("project_id"))
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireTaskOrg(w, r)
	if !ok {
		return
	}

	resp, err := s.tasks.Handler.CompleteTaskHandler(r.Context(), orgID, r.PathValue("task_id"))
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEditTaskDependencies(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireTaskOrg(w, r)
	if !ok {
		return
	}

	var req taskhttp.EditDependenciesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTaskError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.tasks.Handler.EditDependenciesHandler(r.Context(), orgID, r.PathValue("task_id"), req)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRescheduleTask(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireTaskOrg(w, r)
	if !ok {
		return
	}

	var req taskhttp.RescheduleTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTaskError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.tasks.Handler.RescheduleTaskHandler(r.Context(), orgID, r.PathValue("task_id"), req)
	if err != nil {
		writeTaskDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
