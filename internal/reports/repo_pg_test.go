package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"advisor-backend/internal/advice"
)

func pgTestReport() Report {
	return Report{
		ID:        "report-1",
		UserID:    "user-1",
		CreatedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Project: advice.ProjectDetails{
			ProjectName:      "Riverside Plaza",
			ContractType:     advice.FormJCTStandard,
			OrganizationRole: advice.RoleMainContractor,
			Issues:           []advice.Issue{{Description: "Payment certificate withheld"}},
		},
		Analyses: []advice.IssueAnalysis{
			{Issue: "Payment certificate withheld", RelevantClauses: []string{"Clause 4.8"}},
		},
	}
}

func TestPGRepoUpsertInserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	report := pgTestReport()

	mock.ExpectQuery("SELECT user_id FROM reports").
		WithArgs(report.ID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO reports").
		WithArgs(report.ID, report.UserID, report.CreatedAt, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Upsert(context.Background(), report); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpsertRejectsOtherOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	report := pgTestReport()

	mock.ExpectQuery("SELECT user_id FROM reports").
		WithArgs(report.ID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("someone-else"))

	if err := repo.Upsert(context.Background(), report); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	report := pgTestReport()
	project, _ := json.Marshal(report.Project)
	analyses, _ := json.Marshal(report.Analyses)

	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "user_id", "created_at", "project", "analyses"}).
			AddRow(report.ID, report.UserID, report.CreatedAt, project, analyses)
	}

	mock.ExpectQuery("SELECT id, user_id, created_at, project, analyses").
		WithArgs(report.ID).
		WillReturnRows(rows())

	got, err := repo.GetByID(context.Background(), "user-1", report.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Project.ProjectName != "Riverside Plaza" {
		t.Fatalf("project = %+v", got.Project)
	}
	if len(got.Analyses) != 1 || got.Analyses[0].RelevantClauses[0] != "Clause 4.8" {
		t.Fatalf("analyses = %+v", got.Analyses)
	}

	mock.ExpectQuery("SELECT id, user_id, created_at, project, analyses").
		WithArgs(report.ID).
		WillReturnRows(rows())

	if _, err := repo.GetByID(context.Background(), "someone-else", report.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	mock.ExpectQuery("SELECT id, user_id, created_at, project, analyses").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT user_id FROM reports").
		WithArgs("report-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("user-1"))
	mock.ExpectExec("DELETE FROM reports").
		WithArgs("report-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "user-1", "report-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mock.ExpectQuery("SELECT user_id FROM reports").
		WithArgs("report-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("user-1"))

	if err := repo.Delete(context.Background(), "someone-else", "report-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	mock.ExpectQuery("SELECT user_id FROM reports").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if err := repo.Delete(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
