// Package schemas validates request payloads against embedded JSON Schemas.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed job_description.schema.json
var jobDescriptionSchema string

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema
	compileErr  error
)

// JobDescriptionSchema returns the JSON Schema a job description payload must satisfy.
func JobDescriptionSchema() string {
	return jobDescriptionSchema
}

// FieldError is a single violation at a field path ("(root)" for the document itself).
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every schema violation of a document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	parts := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// DocumentError means the payload could not be read as JSON at all.
type DocumentError struct {
	Cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("malformed JSON document: %v", e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

func jobDescription() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(jobDescriptionSchema))
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile job description schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// ValidateJobDescription checks a raw job description JSON document. Violations are
// reported together as a *ValidationError.
func ValidateJobDescription(doc string) error {
	schema, err := jobDescription()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return &DocumentError{Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
