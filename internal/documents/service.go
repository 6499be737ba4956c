package documents

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"advisor-backend/internal/extract"
	"advisor-backend/internal/shared/storage/object"
	"advisor-backend/internal/shared/telemetry"
)

// Service contains business logic for contract documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
}

// Upload saves the file to object storage, extracts its text, and records
// the document. Extraction failures are non-fatal: the document is stored
// without an extracted-text key and cannot feed generation prompts.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(raw))
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := extract.ExtractText(ctx, s.Store, storageKey, mimeType, fileName); err == nil {
		now := time.Now().UTC()
		doc.ExtractedTextKey = storageKey + ".extracted.txt"
		doc.ExtractedAt = &now
	} else {
		telemetry.Info("document.extract_skipped", map[string]any{
			"userId":   userID,
			"fileName": fileName,
			"mimeType": mimeType,
			"reason":   err.Error(),
		})
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

// Get returns a document by ID for a user.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns documents for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// ExtractedText loads the extracted text for a document so it can be added
// to a generation prompt.
func (s *Service) ExtractedText(ctx context.Context, userID, documentID string) (string, error) {
	doc, err := s.Get(ctx, userID, documentID)
	if err != nil {
		return "", err
	}
	if doc.ExtractedTextKey == "" {
		return "", ErrNotExtracted
	}
	body, err := s.Store.Open(ctx, doc.ExtractedTextKey)
	if err != nil {
		return "", err
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
