package notification

import "fmt"

// NotificationError represents a failure delivering the notification email.
// The publication is untouched, so the notify step is safely retryable.
type NotificationError struct {
	Message string
	Cause   error
}

func (e *NotificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("notification failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("notification failed: %s", e.Message)
}

func (e *NotificationError) Unwrap() error {
	return e.Cause
}
