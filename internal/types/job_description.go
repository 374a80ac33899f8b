// Package types provides the data model shared by the resume analyzer packages.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MinJobDescriptionLength is the minimum number of characters accepted in a job description text.
const MinJobDescriptionLength = 50

// JobDescriptionInput is the wire form of a job description as submitted by clients.
type JobDescriptionInput struct {
	Text            string   `json:"text" validate:"required,min=50"`
	RequiredSkills  []string `json:"required_skills" validate:"required,min=1,dive,required"`
	PreferredSkills []string `json:"preferred_skills" validate:"omitempty,dive,required"`
}

// Validate validates the JobDescriptionInput using the validator.
func (in *JobDescriptionInput) Validate() error {
	validate := validator.New()
	if err := validate.Struct(in); err != nil {
		return newValidationError(err)
	}
	return nil
}

// JobDescription is a validated, immutable job description.
type JobDescription struct {
	text            string
	requiredSkills  []string
	preferredSkills []string
}

// NewJobDescription validates the input and returns an immutable JobDescription.
func NewJobDescription(in JobDescriptionInput) (*JobDescription, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &JobDescription{
		text:            in.Text,
		requiredSkills:  append([]string(nil), in.RequiredSkills...),
		preferredSkills: append([]string{}, in.PreferredSkills...),
	}, nil
}

// Text returns the free-form description text.
func (j *JobDescription) Text() string { return j.text }

// RequiredSkills returns a copy of the required skill phrases in submission order.
func (j *JobDescription) RequiredSkills() []string {
	return append([]string(nil), j.requiredSkills...)
}

// PreferredSkills returns a copy of the preferred skill phrases in submission order.
func (j *JobDescription) PreferredSkills() []string {
	return append([]string{}, j.preferredSkills...)
}

// Input returns the wire form of the job description.
func (j *JobDescription) Input() JobDescriptionInput {
	return JobDescriptionInput{
		Text:            j.text,
		RequiredSkills:  j.RequiredSkills(),
		PreferredSkills: j.PreferredSkills(),
	}
}

// ValidationError indicates a job description that violates its constraints.
type ValidationError struct {
	Fields []FieldError
}

// FieldError describes a single failed constraint.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		switch f.Rule {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", f.Field))
		case "min":
			parts = append(parts, fmt.Sprintf("%s must have at least %s items or characters", f.Field, f.Param))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", f.Field, f.Rule))
		}
	}
	return strings.Join(parts, "; ")
}

func newValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fieldName(fe.Namespace()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// fieldName maps a validator namespace like "JobDescriptionInput.RequiredSkills[0]" to its JSON name.
func fieldName(namespace string) string {
	name := namespace
	if idx := strings.Index(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	suffix := ""
	if idx := strings.Index(name, "["); idx >= 0 {
		suffix = name[idx:]
		name = name[:idx]
	}
	switch name {
	case "Text":
		name = "text"
	case "RequiredSkills":
		name = "required_skills"
	case "PreferredSkills":
		name = "preferred_skills"
	}
	return name + suffix
}
