package errors

import (
	"errors"
	"sort"
)

var (
	ErrProjectNotFound          = errors.New("project not found")
	ErrInvalidProjectInput      = errors.New("invalid project input")
	ErrInvalidStageMove         = errors.New("invalid stage move")
	ErrStageMoveBlocked         = errors.New("stage move blocked by tasks")
	ErrTransitionInFlight       = errors.New("another stage transition is in flight")
	ErrOrganizationScopeMissing = errors.New("organization scope is required")
)

// BlockedError carries the IDs of tasks that refused a stage move. It
// matches ErrStageMoveBlocked under errors.Is so transports can branch on
// the sentinel while internal callers read the task list.
type BlockedError struct {
	TaskIDs []string
}

func NewBlockedError(taskIDs []string) *BlockedError {
	ids := append([]string(nil), taskIDs...)
	sort.Strings(ids)
	return &BlockedError{TaskIDs: ids}
}

func (e *BlockedError) Error() string {
	return ErrStageMoveBlocked.Error()
}

func (e *BlockedError) Is(target error) bool {
	return target == ErrStageMoveBlocked
}
