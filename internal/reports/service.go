package reports

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"advisor-backend/internal/advice"
	"advisor-backend/internal/llm"
	"advisor-backend/internal/usage"
)

// Generation modes. ModeOffline forces the deterministic template renderer
// even when an LLM provider is configured.
const (
	ModeAuto    = "auto"
	ModeOffline = "offline"
)

// ContractTextReader loads extracted text from an uploaded contract document
// so it can be included in the generation prompt.
type ContractTextReader interface {
	ExtractedText(ctx context.Context, userID, documentID string) (string, error)
}

// Service contains business logic for advisory reports.
type Service struct {
	Repo  Repo
	Usage *usage.Service
	LLM   llm.Client
	Docs  ContractTextReader
	// Now and Rand are injectable for deterministic letters in tests.
	Now  func() time.Time
	Rand *rand.Rand
}

// GenerateInput is the request for one generation run.
type GenerateInput struct {
	Project advice.ProjectDetails
	// Mode selects the generation path; empty means ModeAuto.
	Mode string
	// DocumentID optionally references an uploaded contract document whose
	// extracted text is added to the prompt.
	DocumentID string
}

// Generate runs the pipeline and returns a fresh, unsaved report. Saving is
// an explicit follow-up call; generation never writes to the repo.
func (s *Service) Generate(ctx context.Context, userID string, input GenerateInput) (Report, error) {
	if userID == "" {
		return Report{}, ErrInvalidInput
	}
	if err := validateProject(input.Project); err != nil {
		return Report{}, err
	}

	if s.Usage != nil {
		ok, _, err := s.Usage.CanConsume(ctx, userID, 1)
		if err != nil {
			return Report{}, err
		}
		if !ok {
			return Report{}, usage.ErrLimitReached
		}
	}

	analyses, err := s.generateAnalyses(ctx, userID, input)
	if err != nil {
		return Report{}, err
	}
	if len(analyses) != len(input.Project.Issues) {
		return Report{}, ErrAlignmentMismatch
	}

	report := Report{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: s.now(),
		Project:   input.Project,
		Analyses:  analyses,
	}

	if s.Usage != nil {
		if _, err := s.Usage.Consume(ctx, userID, 1); err != nil {
			return Report{}, err
		}
	}
	return report, nil
}

func (s *Service) generateAnalyses(ctx context.Context, userID string, input GenerateInput) ([]advice.IssueAnalysis, error) {
	if input.Mode == ModeOffline || s.LLM == nil {
		return renderOffline(input.Project), nil
	}

	contractText := ""
	if input.DocumentID != "" && s.Docs != nil {
		text, err := s.Docs.ExtractedText(ctx, userID, input.DocumentID)
		if err != nil {
			return nil, err
		}
		contractText = text
	}

	generated, err := s.LLM.GenerateAnalysis(ctx, llm.AnalysisInput{
		Project:      input.Project,
		ContractText: contractText,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return renderOffline(input.Project), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return advice.ParseGenerated(generated, input.Project.Issues), nil
}

func renderOffline(project advice.ProjectDetails) []advice.IssueAnalysis {
	out := make([]advice.IssueAnalysis, len(project.Issues))
	for i, issue := range project.Issues {
		out[i] = advice.RenderAnalysis(issue.Description, issue.ActionsTaken,
			project.ContractType, project.OrganizationRole)
	}
	return out
}

// Save upserts the report under the caller's ownership.
func (s *Service) Save(ctx context.Context, userID string, report Report) (Report, error) {
	if userID == "" {
		return Report{}, ErrInvalidInput
	}
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = s.now()
	}
	report.UserID = userID
	if err := Validate(report); err != nil {
		return Report{}, err
	}
	if err := s.Repo.Upsert(ctx, report); err != nil {
		return Report{}, err
	}
	return report, nil
}

// Get returns a report by ID for a user.
func (s *Service) Get(ctx context.Context, userID, reportID string) (Report, error) {
	if userID == "" || reportID == "" {
		return Report{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, reportID)
}

// List returns the user's reports newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Report, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a report owned by the user.
func (s *Service) Delete(ctx context.Context, userID, reportID string) error {
	if userID == "" || reportID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, userID, reportID)
}

// Letter drafts a formal letter from a saved report. With a configured LLM
// the generated text is mapped onto the letter fields via ParseLetter; the
// template assembler covers the offline path and every fallback.
func (s *Service) Letter(ctx context.Context, userID, reportID, senderName string) (advice.DraftLetter, error) {
	report, err := s.Get(ctx, userID, reportID)
	if err != nil {
		return advice.DraftLetter{}, err
	}

	opts := advice.LetterOptions{
		SenderName: senderName,
		Now:        s.Now,
		Rand:       s.Rand,
	}

	if s.LLM != nil {
		text, err := s.LLM.GenerateLetter(ctx, llm.LetterInput{
			Report:    report,
			Recipient: advice.RecipientForRole(report.Project.OrganizationRole),
			Sender:    senderName,
		})
		if err == nil {
			return advice.ParseLetter(text, report, opts), nil
		}
		if !errors.Is(err, llm.ErrNotConfigured) {
			return advice.DraftLetter{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}
	}
	return advice.AssembleLetter(report, opts), nil
}

func validateProject(project advice.ProjectDetails) error {
	if strings.TrimSpace(project.ProjectName) == "" {
		return fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if len(project.Issues) == 0 {
		return fmt.Errorf("%w: at least one issue is required", ErrInvalidInput)
	}
	for _, issue := range project.Issues {
		if strings.TrimSpace(issue.Description) == "" {
			return fmt.Errorf("%w: issue description is required", ErrInvalidInput)
		}
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
