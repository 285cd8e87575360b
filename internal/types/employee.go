// Package types provides type definitions for structured data used throughout the content-flow system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Employee represents a team member whose posts are ghostwritten.
// Employees are owned by the management subsystem; workflows and style
// profiles reference them by ID.
type Employee struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	LinkedInProfile string    `json:"linkedinProfile,omitempty"`
	DriveFolderID   string    `json:"driveFolderId,omitempty"`
	ToneDescription string    `json:"toneDescription,omitempty"`
	SampleTextsURL  string    `json:"sampleTextsUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// EmployeeForm represents the mutable fields accepted when creating or
// updating an employee.
type EmployeeForm struct {
	Name            string `json:"name" validate:"required,min=1"`
	Email           string `json:"email" validate:"required,email"`
	LinkedInProfile string `json:"linkedinProfile,omitempty" validate:"omitempty,url"`
	DriveFolderID   string `json:"driveFolderId,omitempty"`
	ToneDescription string `json:"toneDescription,omitempty"`
	SampleTextsURL  string `json:"sampleTextsUrl,omitempty" validate:"omitempty,url"`
}

// Validate validates the EmployeeForm using the validator.
func (f *EmployeeForm) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}
