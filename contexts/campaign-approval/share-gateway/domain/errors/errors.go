package errors

import "errors"

var (
	ErrShareNotFound            = errors.New("share link not found")
	ErrShareLinkGone            = errors.New("share link is no longer available")
	ErrDecisionConflict         = errors.New("a decision has already been recorded")
	ErrCommentMissing           = errors.New("a comment is required when requesting changes")
	ErrInvalidShareInput        = errors.New("invalid share request")
	ErrOrganizationScopeMissing = errors.New("organization scope is required")
)
