package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	shareerrors "pressroom/contexts/campaign-approval/share-gateway/domain/errors"
	sharehttp "pressroom/contexts/campaign-approval/share-gateway/transport/http"
)

func writeShareError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, sharehttp.ErrorResponse{Code: code, Message: message})
}

// writeSharePublicError is the mapper for token routes. Unexpected errors
// collapse to a coarse not-found so the public surface leaks nothing about
// internal state.
func writeSharePublicError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shareerrors.ErrShareNotFound):
		writeShareError(w, http.StatusNotFound, "not_found", "share link not found")
	case errors.Is(err, shareerrors.ErrShareLinkGone):
		writeShareError(w, http.StatusGone, "gone", "share link is no longer available")
	case errors.Is(err, shareerrors.ErrDecisionConflict):
		writeShareError(w, http.StatusConflict, "decision_conflict", err.Error())
	case errors.Is(err, shareerrors.ErrCommentMissing):
		writeShareError(w, http.StatusUnprocessableEntity, "comment_required", err.Error())
	case errors.Is(err, shareerrors.ErrInvalidShareInput):
		writeShareError(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
	default:
		writeShareError(w, http.StatusNotFound, "not_found", "share link not found")
	}
}

func writeShareAdminDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shareerrors.ErrShareNotFound):
		writeShareError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, shareerrors.ErrInvalidShareInput):
		writeShareError(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
	case errors.Is(err, shareerrors.ErrOrganizationScopeMissing):
		writeShareError(w, http.StatusBadRequest, "missing_org", err.Error())
	default:
		writeShareError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireShareOrg(w http.ResponseWriter, r *http.Request) (string, bool) {
	orgID := resolveOrgID(r)
	if orgID == "" {
		writeShareError(w, http.StatusBadRequest, "missing_org", "X-Org-Id header is required")
		return "", false
	}
	return orgID, true
}

func (s *Server) handleShareResolve(w http.ResponseWriter, r *http.Request) {
	resp, err := s.share.Handler.ResolveHandler(r.Context(), r.PathValue("token"))
	if err != nil {
		writeSharePublicError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleShareMarkViewed(w http.ResponseWriter, r *http.Request) {
	resp, err := s.share.Handler.MarkViewedHandler(r.Context(), r.PathValue("token"))
	if err != nil {
		writeSharePublicError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleShareDecide(w http.ResponseWriter, r *http.Request) {
	var req sharehttp.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeShareError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.share.Handler.DecideHandler(r.Context(), r.PathValue("token"), req)
	if err != nil {
		writeSharePublicError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateShareLink(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireShareOrg(w, r)
	if !ok {
		return
	}

	var req sharehttp.CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeShareError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.share.Handler.CreateLinkHandler(r.Context(), orgID, req)
	if err != nil {
		writeShareAdminDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRevokeShareLink(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireShareOrg(w, r)
	if !ok {
		return
	}

	if err := s.share.Handler.RevokeLinkHandler(r.Context(), orgID, r.PathValue("link_id")); err != nil {
		writeShareAdminDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
