package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/fivedigital/contentflow/internal/types"
)

// ValidationError reports a command rejected before any external call was
// made. The workflow state is unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NotFoundError reports a missing record referenced by a command.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// TransitionError reports an attempt to move a workflow along an edge the
// state machine does not have.
type TransitionError struct {
	From types.WorkflowStatus
	To   types.WorkflowStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal transition %s → %s", e.From, e.To)
}

// StaleResponseError marks the completion of a superseded request. It is an
// internal signal: the result is silently dropped and the error is not
// surfaced to users.
type StaleResponseError struct {
	WorkflowID uuid.UUID
	Seq        uint64
}

func (e *StaleResponseError) Error() string {
	return fmt.Sprintf("stale response for workflow %s (request %d superseded)", e.WorkflowID, e.Seq)
}
