package extraction

import "fmt"

// ExtractionError represents a failure to read text out of a document.
type ExtractionError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Error processing %s: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("Error processing %s: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// UnsupportedFormatError indicates a file whose extension is neither .pdf nor .docx.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return "Unsupported file format"
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
