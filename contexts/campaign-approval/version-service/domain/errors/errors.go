package errors

import "errors"

var (
	ErrVersionNotFound          = errors.New("version not found")
	ErrNoVersions               = errors.New("campaign has no versions")
	ErrInvalidVersionInput      = errors.New("invalid version input")
	ErrInvalidVersionTransition = errors.New("invalid version status transition")
	ErrPendingVersionExists     = errors.New("another version is already pending customer review")
	ErrRenderFailed             = errors.New("version rendering failed")
	ErrOrganizationScopeMissing = errors.New("organization scope is required")
)
