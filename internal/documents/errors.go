package documents

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotExtracted means the document was stored but its text could not be
	// extracted, so it cannot feed generation prompts.
	ErrNotExtracted = errors.New("document text not extracted")
)
