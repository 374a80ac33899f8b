package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Error messages returned to clients.
const (
	msgNoResume        = "No resume file provided"
	msgNoJobDesc       = "No job description provided"
	msgInvalidJobDesc  = "Invalid job description format"
	msgInvalidJobData  = "Invalid job description data: "
	msgAnalysisFailed  = "Analysis failed: "
	msgFileTooLarge    = "Resume file is too large"
	msgUnreadableInput = "Could not read request body"
)

// ErrRequest indicates a malformed request
type ErrRequest struct {
	Status  int
	Message string
}

func (e *ErrRequest) Error() string {
	return e.Message
}

// ErrJobDescription wraps a job description that failed schema or field validation
type ErrJobDescription struct {
	Cause error
}

func (e *ErrJobDescription) Error() string {
	return msgInvalidJobData + e.Cause.Error()
}

func (e *ErrJobDescription) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var reqErr *ErrRequest
	if errors.As(err, &reqErr) && reqErr.Status != 0 {
		return reqErr.Status
	}

	var (
		jdErr      *ErrJobDescription
		fieldErr   *types.ValidationError
		schemaErr  *schemas.ValidationError
		docErr     *schemas.DocumentError
		formatErr  *extraction.UnsupportedFormatError
		extractErr *extraction.ExtractionError
	)
	switch {
	case errors.As(err, &jdErr), errors.As(err, &fieldErr), errors.As(err, &schemaErr), errors.As(err, &docErr):
		return http.StatusBadRequest
	case errors.As(err, &formatErr), errors.As(err, &extractErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the client-facing message for err.
func errorMessage(err error) string {
	if HTTPStatus(err) >= http.StatusInternalServerError {
		return msgAnalysisFailed + err.Error()
	}
	return err.Error()
}
