package errors

import "errors"

var (
	ErrWorkflowNotFound         = errors.New("approval workflow not found")
	ErrApproverNotFound         = errors.New("approver is not part of this workflow")
	ErrInvalidWorkflowConfig    = errors.New("workflow requires at least one approval stage")
	ErrInvalidWorkflowInput     = errors.New("invalid workflow input")
	ErrWorkflowCompleted        = errors.New("workflow has already completed")
	ErrInvalidDecisionStage     = errors.New("decision does not match the current workflow stage")
	ErrCommentRequired          = errors.New("a comment is required when requesting changes")
	ErrWorkflowAlreadyActive    = errors.New("campaign already has an active workflow")
	ErrOrganizationScopeMissing = errors.New("organization scope is required")
)
