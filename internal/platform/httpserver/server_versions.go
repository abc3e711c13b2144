package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	versionerrors "pressroom/contexts/campaign-approval/version-service/domain/errors"
	versionhttp "pressroom/contexts/campaign-approval/version-service/transport/http"
)

func writeVersionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, versionhttp.ErrorResponse{Code: code, Message: message})
}

func writeVersionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, versionerrors.ErrVersionNotFound):
		writeVersionError(w, http.StatusNotFound, "version_not_found", err.Error())
	case errors.Is(err, versionerrors.ErrNoVersions):
		writeVersionError(w, http.StatusNotFound, "no_versions", err.Error())
	case errors.Is(err, versionerrors.ErrInvalidVersionTransition):
		writeVersionError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, versionerrors.ErrPendingVersionExists):
		writeVersionError(w, http.StatusConflict, "pending_version_exists", err.Error())
	case errors.Is(err, versionerrors.ErrRenderFailed):
		writeVersionError(w, http.StatusUnprocessableEntity, "render_failed", err.Error())
	case errors.Is(err, versionerrors.ErrInvalidVersionInput):
		writeVersionError(w, http.StatusUnprocessableEntity, "invalid_version", err.Error())
	case errors.Is(err, versionerrors.ErrOrganizationScopeMissing):
		writeVersionError(w, http.StatusBadRequest, "missing_org", err.Error())
	default:
		writeVersionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireVersionOrg(w http.ResponseWriter, r *http.Request) (string, bool) {
	orgID := resolveOrgID(r)
	if orgID == "" {
		writeVersionError(w, http.StatusBadRequest, "missing_org", "X-Org-Id header is required")
		return "", false
	}
	return orgID, true
}

func (s *Server) handleCreateVersion(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireVersionOrg(w, r)
	if !ok {
		return
	}

	var req versionhttp.CreateVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVersionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.versions.Handler.CreateVersionHandler(r.Context(), orgID, r.PathValue("campaign_id"), req)
	if err != nil {
		writeVersionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireVersionOrg(w, r)
	if !ok {
		return
	}

	resp, err := s.versions.Handler.ListVersionsHandler(r.Context(), orgID, r.PathValue("campaign_id"))
	if err != nil {
		writeVersionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCurrentVersion(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireVersionOrg(w, r)
	if !ok {
		return
	}

	resp, err := s.versions.Handler.GetCurrentVersionHandler(r.Context(), orgID, r.PathValue("campaign_id"))
	if err != nil {
		writeVersionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateVersionStatus(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireVersionOrg(w, r)
	if !ok {
		return
	}

	var req versionhttp.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVersionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.versions.Handler.UpdateStatusHandler(r.Context(), orgID, r.PathValue("version_id"), req)
	if err != nil {
		writeVersionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
