package errors

import "errors"

var (
	ErrTaskNotFound             = errors.New("task not found")
	ErrInvalidTaskInput         = errors.New("invalid task input")
	ErrInvalidStatusTransition  = errors.New("invalid task status transition")
	ErrDependencyCycle          = errors.New("dependency edit introduces a cycle")
	ErrDependenciesIncomplete   = errors.New("task has incomplete dependencies")
	ErrUnknownDependency        = errors.New("dependency references unknown task")
	ErrOrganizationScopeMissing = errors.New("organization scope is required")
)
