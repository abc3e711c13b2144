package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pressroom/contexts/campaign-approval/approval-service/application/commands"
	"pressroom/contexts/campaign-approval/approval-service/application/queries"
	"pressroom/contexts/campaign-approval/approval-service/domain/entities"
	httptransport "pressroom/contexts/campaign-approval/approval-service/transport/http"
)

type Handler struct {
	StartWorkflow  commands.StartWorkflowUseCase
	SubmitDecision commands.SubmitDecisionUseCase
	GetWorkflow    queries.GetWorkflowUseCase
	GetHistory     queries.GetHistoryUseCase
	Logger         *slog.Logger
}

func (h Handler) StartWorkflowHandler(
	ctx context.Context,
	organizationID string,
	userID string,
	req httptransport.StartWorkflowRequest,
) (httptransport.StartWorkflowResponse, error) {
	var contact *entities.CustomerContact
	if req.CustomerContact != nil {
		contact = &entities.CustomerContact{
			ContactID: req.CustomerContact.ContactID,
			Name:      req.CustomerContact.Name,
			Email:     req.CustomerContact.Email,
		}
	}
	workflow, err := h.StartWorkflow.Execute(ctx, commands.StartWorkflowCommand{
		OrganizationID:  organizationID,
		CampaignID:      req.CampaignID,
		RequireTeam:     req.RequireTeam,
		RequireCustomer: req.RequireCustomer,
		ApproverIDs:     req.ApproverIDs,
		CustomerContact: contact,
		ActorID:         userID,
	})
	if err != nil {
		return httptransport.StartWorkflowResponse{}, err
	}
	return httptransport.StartWorkflowResponse{Workflow: mapWorkflow(workflow)}, nil
}

func (h Handler) SubmitDecisionHandler(
	ctx context.Context,
	organizationID string,
	workflowID string,
	req httptransport.SubmitDecisionRequest,
) (httptransport.SubmitDecisionResponse, error) {
	inline := make([]entities.InlineComment, 0, len(req.InlineComments))
	for _, comment := range req.InlineComments {
		inline = append(inline, entities.InlineComment{
			Page:  comment.Page,
			Quote: comment.Quote,
			Note:  comment.Note,
		})
	}
	result, err := h.SubmitDecision.Execute(ctx, commands.SubmitDecisionCommand{
		OrganizationID: organizationID,
		WorkflowID:     workflowID,
		ActorID:        req.ActorID,
		ActorRole:      entities.ActorRole(req.ActorRole),
		Outcome:        entities.DecisionAction(req.Outcome),
		Comment:        req.Comment,
		InlineComments: inline,
	})
	if err != nil {
		return httptransport.SubmitDecisionResponse{}, err
	}
	return httptransport.SubmitDecisionResponse{
		Workflow: mapWorkflow(result.Workflow),
		Applied:  result.Applied,
	}, nil
}

func (h Handler) GetWorkflowHandler(
	ctx context.Context,
	organizationID string,
	workflowID string,
) (httptransport.GetWorkflowResponse, error) {
	workflow, err := h.GetWorkflow.Execute(ctx, organizationID, workflowID)
	if err != nil {
		return httptransport.GetWorkflowResponse{}, err
	}
	return httptransport.GetWorkflowResponse{Workflow: mapWorkflow(workflow)}, nil
}

func (h Handler) HistoryHandler(
	ctx context.Context,
	organizationID string,
	workflowID string,
) (httptransport.HistoryResponse, error) {
	items, err := h.GetHistory.Execute(ctx, organizationID, workflowID)
	if err != nil {
		return httptransport.HistoryResponse{}, err
	}
	result := make([]httptransport.DecisionEventDTO, 0, len(items))
	for _, event := range items {
		dto := httptransport.DecisionEventDTO{
			ActorID:    event.ActorID,
			ActorRole:  string(event.ActorRole),
			Action:     string(event.Action),
			Comment:    event.Comment,
			OccurredAt: event.OccurredAt.Format(time.RFC3339),
		}
		for _, comment := range event.InlineComments {
			dto.InlineComments = append(dto.InlineComments, httptransport.InlineCommentDTO{
				Page:  comment.Page,
				Quote: comment.Quote,
				Note:  comment.Note,
			})
		}
		result = append(result, dto)
	}
	return httptransport.HistoryResponse{Items: result}, nil
}

func mapWorkflow(item entities.Workflow) httptransport.WorkflowDTO {
	approvers := make([]httptransport.TeamApproverDTO, 0, len(item.TeamApprovers))
	for _, approver := range item.TeamApprovers {
		dto := httptransport.TeamApproverDTO{
			ActorID: approver.ActorID,
			Status:  string(approver.Status),
			Comment: approver.Comment,
		}
		if approver.DecidedAt != nil {
			dto.DecidedAt = approver.DecidedAt.UTC().Format(time.RFC3339)
		}
		approvers = append(approvers, dto)
	}

	dto := httptransport.WorkflowDTO{
		WorkflowID:      item.WorkflowID,
		CampaignID:      item.CampaignID,
		Cycle:           item.Cycle,
		CurrentStage:    string(item.CurrentStage),
		Outcome:         string(item.Outcome),
		ViewState:       string(item.ViewState),
		TeamApprovers:   approvers,
		ActiveVersionID: item.ActiveVersionID,
		CreatedAt:       item.CreatedAt.Format(time.RFC3339),
	}
	if item.CustomerContact != nil {
		dto.CustomerContact = &httptransport.CustomerContactDTO{
			ContactID: item.CustomerContact.ContactID,
			Name:      item.CustomerContact.Name,
			Email:     item.CustomerContact.Email,
		}
	}
	if item.CompletedAt != nil {
		dto.CompletedAt = item.CompletedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
