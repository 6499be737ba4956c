package reports

import "context"

// Repo persists reports. Implementations must distinguish absence
// (ErrNotFound) from ownership violations (ErrForbidden).
type Repo interface {
	// Upsert inserts the report or, when a report with the same ID already
	// exists and belongs to the same user, replaces it. A conflicting ID
	// owned by another user yields ErrForbidden.
	Upsert(ctx context.Context, report Report) error
	// GetByID returns the report. ErrNotFound when absent, ErrForbidden when
	// owned by another user.
	GetByID(ctx context.Context, userID, reportID string) (Report, error)
	// ListByUser returns the user's reports newest-first with limit/offset.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Report, error)
	// Delete removes the report. ErrNotFound when absent, ErrForbidden when
	// owned by another user.
	Delete(ctx context.Context, userID, reportID string) error
}
