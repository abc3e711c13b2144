package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	campaignerrors "pressroom/contexts/campaign-approval/campaign-service/domain/errors"
	campaignhttp "pressroom/contexts/campaign-approval/campaign-service/transport/http"
)

func writeCampaignError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, campaignhttp.ErrorResponse{Code: code, Message: message})
}

func writeCampaignDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, campaignerrors.ErrCampaignNotFound):
		writeCampaignError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidStatusTransition):
		writeCampaignError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, campaignerrors.ErrApprovalPending):
		writeCampaignError(w, http.StatusConflict, "approval_pending", err.Error())
	case errors.Is(err, campaignerrors.ErrWorkflowAttachConflict):
		writeCampaignError(w, http.StatusConflict, "workflow_conflict", err.Error())
	case errors.Is(err, campaignerrors.ErrContentValidationFailed):
		writeCampaignError(w, http.StatusUnprocessableEntity, "content_validation_failed", err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidCampaignInput):
		writeCampaignError(w, http.StatusUnprocessableEntity, "invalid_campaign", err.Error())
	case errors.Is(err, campaignerrors.ErrOrganizationScopeMissing):
		writeCampaignError(w, http.StatusBadRequest, "missing_org", err.Error())
	default:
		writeCampaignError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireCampaignOrg(w http.ResponseWriter, r *http.Request) (string, bool) {
	orgID := resolveOrgID(r)
	if orgID == "" {
		writeCampaignError(w, http.StatusBadRequest, "missing_org", "X-Org-Id header is required")
		return "", false
	}
	return orgID, true
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireCampaignOrg(w, r)
	if !ok {
		return
	}

	var req campaignhttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.CreateCampaignHandler(r.Context(), orgID, resolveUserID(r), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireCampaignOrg(w, r)
	if !ok {
		return
	}

	resp, err := s.campaigns.Handler.GetCampaignHandler(r.Context(), orgID, r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangeCampaignStatus(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireCampaignOrg(w, r)
	if !ok {
		return
	}

	var req campaignhttp.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.ChangeStatusHandler(
		r.Context(),
		orgID,
		resolveUserID(r),
		r.PathValue("campaign_id"),
		req,
	)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCampaignStatusHistory(w http.ResponseWriter, r *http.Request) {
	orgID, ok := requireCampaignOrg(w, r)
	if !ok {
		return
	}

	resp, err := s.campaigns.Handler.StatusHistoryHandler(r.Context(), orgID, r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
