package request

import (
	"fmt"

	"tidybook/models"
)

// TransitionError reports an attempt to apply an action from a state that
// does not allow it. It names the exact (state, action) pair so the message
// can be shown to the user as-is.
type TransitionError struct {
	From   models.RequestStatus
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal transition: action %q is not allowed while the request is %q", e.Action, e.From)
}

// ValidationError reports malformed or missing request input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
