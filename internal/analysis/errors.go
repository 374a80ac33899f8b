package analysis

import "fmt"

// Error reports an unexpected failure while analyzing a resume.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to analyze resume: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to analyze resume: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
