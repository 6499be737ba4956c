package llm

import (
	"context"
	"errors"

	"advisor-backend/internal/advice"
)

// Client abstracts generative providers for contract advice. Both methods
// return free-form text; structured extraction happens in the advice package.
type Client interface {
	GenerateAnalysis(ctx context.Context, input AnalysisInput) (string, error)
	GenerateLetter(ctx context.Context, input LetterInput) (string, error)
}

// AnalysisInput carries everything the analysis prompt needs.
type AnalysisInput struct {
	Project advice.ProjectDetails
	// ContractText is optional extracted text from an uploaded contract
	// document, included in the prompt when present.
	ContractText string
}

// LetterInput carries the report the letter should be drafted from.
type LetterInput struct {
	Report    advice.Report
	Recipient string
	Sender    string
}

// ErrNotConfigured is returned by the placeholder client; callers fall back
// to the offline template renderer when they see it.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is the stand-in used when no provider credentials exist.
type PlaceholderClient struct{}

func (PlaceholderClient) GenerateAnalysis(ctx context.Context, input AnalysisInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotConfigured
}

func (PlaceholderClient) GenerateLetter(ctx context.Context, input LetterInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotConfigured
}
