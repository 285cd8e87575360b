package types

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowStatus is the closed set of pipeline stages a workflow moves through.
type WorkflowStatus string

// Workflow stages, in pipeline order.
const (
	StatusDraft      WorkflowStatus = "DRAFT"
	StatusGenerating WorkflowStatus = "GENERATING"
	StatusReview     WorkflowStatus = "REVIEW"
	StatusApproved   WorkflowStatus = "APPROVED"
	StatusNotified   WorkflowStatus = "NOTIFIED"
)

// Valid reports whether s is one of the five enumerated stages.
func (s WorkflowStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusGenerating, StatusReview, StatusApproved, StatusNotified:
		return true
	}
	return false
}

// Terminal reports whether s is the final stage of the pipeline.
func (s WorkflowStatus) Terminal() bool {
	return s == StatusNotified
}

// Workflow represents one pass of a content item through the pipeline.
// GeneratedContent is the last generation baseline; EditedContent is the
// reviewer-modified text. The two stay distinct for the whole lifecycle.
type Workflow struct {
	ID               uuid.UUID      `json:"id"`
	EmployeeID       uuid.UUID      `json:"employeeId"`
	InputContent     string         `json:"inputContent"`
	GeneratedContent string         `json:"generatedContent"`
	EditedContent    string         `json:"editedContent"`
	Status           WorkflowStatus `json:"status"`
	PublicationURL   *string        `json:"publicationUrl,omitempty"`
	PublicationID    *string        `json:"publicationId,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// Published reports whether a durable publication reference is stored.
func (w *Workflow) Published() bool {
	return w.PublicationURL != nil && *w.PublicationURL != ""
}

// PublicationRef is the durable (url, id) pair identifying a created artifact.
type PublicationRef struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}
