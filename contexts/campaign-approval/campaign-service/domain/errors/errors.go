package errors

import "errors"

var (
	ErrCampaignNotFound         = errors.New("campaign not found")
	ErrInvalidCampaignInput     = errors.New("invalid campaign input")
	ErrInvalidStatusTransition  = errors.New("campaign status transition not allowed")
	ErrApprovalPending          = errors.New("approval workflow has not completed with a positive outcome")
	ErrContentValidationFailed  = errors.New("campaign content failed validation")
	ErrWorkflowAttachConflict   = errors.New("campaign already has an active approval workflow")
	ErrOrganizationScopeMissing = errors.New("organization scope is required")
)
