package analysis

import "fmt"

// APICallError represents a failure reaching the analysis capability
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// MalformedAnalysisError represents an analysis response that failed schema
// validation. The response is rejected and never persisted; a previously
// stored profile stays untouched.
type MalformedAnalysisError struct {
	Message string
	Cause   error
}

func (e *MalformedAnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed analysis response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed analysis response: %s", e.Message)
}

func (e *MalformedAnalysisError) Unwrap() error {
	return e.Cause
}
