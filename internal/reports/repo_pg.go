package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"advisor-backend/internal/advice"
)

// PGRepo implements Repo using Postgres. Project and analyses are stored as
// jsonb so the report round-trips through the same JSON shape the API serves.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts the report or replaces it when the same user already owns
// the ID. The owner is read first so a cross-user conflict surfaces as
// ErrForbidden rather than a silent no-op.
func (r *PGRepo) Upsert(ctx context.Context, report Report) error {
	var ownerID string
	err := r.DB.QueryRowContext(ctx, `SELECT user_id FROM reports WHERE id = $1`, report.ID).Scan(&ownerID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// fresh insert below
	case err != nil:
		return err
	case ownerID != report.UserID:
		return ErrForbidden
	}

	project, err := json.Marshal(report.Project)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	analyses, err := json.Marshal(report.Analyses)
	if err != nil {
		return fmt.Errorf("marshal analyses: %w", err)
	}

	const query = `
INSERT INTO reports (id, user_id, created_at, project, analyses)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET project = EXCLUDED.project, analyses = EXCLUDED.analyses
WHERE reports.user_id = EXCLUDED.user_id`
	_, err = r.DB.ExecContext(ctx, query,
		report.ID,
		report.UserID,
		report.CreatedAt,
		project,
		analyses,
	)
	return err
}

// GetByID returns a report by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, reportID string) (Report, error) {
	const query = `
SELECT id, user_id, created_at, project, analyses
FROM reports
WHERE id = $1
LIMIT 1`
	report, err := scanReport(r.DB.QueryRowContext(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Report{}, ErrNotFound
		}
		return Report{}, err
	}
	if report.UserID != userID {
		return Report{}, ErrForbidden
	}
	return report, nil
}

// ListByUser lists reports ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Report, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, created_at, project, analyses
FROM reports
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, report)
	}
	return out, rows.Err()
}

// Delete removes a report owned by the user. The owner is read first so 403
// and 404 stay distinguishable.
func (r *PGRepo) Delete(ctx context.Context, userID, reportID string) error {
	var ownerID string
	err := r.DB.QueryRowContext(ctx, `SELECT user_id FROM reports WHERE id = $1`, reportID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, `DELETE FROM reports WHERE id = $1 AND user_id = $2`, reportID, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (Report, error) {
	var (
		report   Report
		project  []byte
		analyses []byte
	)
	if err := row.Scan(&report.ID, &report.UserID, &report.CreatedAt, &project, &analyses); err != nil {
		return Report{}, err
	}
	if err := json.Unmarshal(project, &report.Project); err != nil {
		return Report{}, fmt.Errorf("unmarshal project: %w", err)
	}
	if len(analyses) > 0 {
		if err := json.Unmarshal(analyses, &report.Analyses); err != nil {
			return Report{}, fmt.Errorf("unmarshal analyses: %w", err)
		}
	}
	if report.Analyses == nil {
		report.Analyses = []advice.IssueAnalysis{}
	}
	return report, nil
}

var _ Repo = (*PGRepo)(nil)
