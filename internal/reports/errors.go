package reports

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlignmentMismatch means the pipeline produced a different number of
	// analyses than the project has issues. It is never silently repaired.
	ErrAlignmentMismatch = errors.New("analysis count does not match issue count")
	// ErrGenerationFailed wraps upstream LLM failures so handlers can map
	// them to a retryable 502 instead of a generic 500.
	ErrGenerationFailed = errors.New("report generation failed")
)
