package publication

import "fmt"

// PublicationError represents a failure creating or filing the document.
// Approve does not take effect when one is returned; the workflow stays in
// review and the command can be retried.
type PublicationError struct {
	Message string
	Cause   error
}

func (e *PublicationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("publication failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("publication failed: %s", e.Message)
}

func (e *PublicationError) Unwrap() error {
	return e.Cause
}
