package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

type failingRepo struct{ MemoryRepo }

func (f *failingRepo) Create(ctx context.Context, entry Entry) error {
	return errors.New("db down")
}

func TestRecorderFillsDefaults(t *testing.T) {
	repo := NewMemoryRepo()
	fixed := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	rec := &Recorder{Repo: repo, now: func() time.Time { return fixed }}

	rec.Record(context.Background(), Entry{UserID: "u1", Action: ActionResumeUploaded, ResumeID: "r1"})
	rec.Record(context.Background(), Entry{UserID: "u1", Action: ActionAnalysisRun, AnalysisID: "a1"})
	rec.Record(context.Background(), Entry{UserID: "u2", Action: ActionAnalysisRun})

	entries, err := repo.ListByUser(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != ActionAnalysisRun {
		t.Fatalf("expected newest first, got %s", entries[0].Action)
	}
	if entries[1].ID == "" || !entries[1].CreatedAt.Equal(fixed) {
		t.Fatalf("expected id and timestamp filled, got %+v", entries[1])
	}

	limited, _ := repo.ListByUser(context.Background(), "u1", 1)
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}
}

func TestRecorderSwallowsErrors(t *testing.T) {
	var nilRec *Recorder
	nilRec.Record(context.Background(), Entry{UserID: "u1"})

	rec := NewRecorder(&failingRepo{})
	rec.Record(context.Background(), Entry{UserID: "u1", Action: ActionAnalysisDeleted})
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	entry := Entry{
		ID:          "11111111-1111-1111-1111-111111111111",
		UserID:      "google:1",
		Action:      ActionAnalysisRun,
		AnalysisID:  "22222222-2222-2222-2222-222222222222",
		Description: "quality analysis completed",
		CreatedAt:   time.Now().UTC(),
	}
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(entry.ID, entry.UserID, "analysis_run", nil, entry.AnalysisID, entry.Description, entry.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := (&PGRepo{DB: db}).Create(context.Background(), entry); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "resume_id", "analysis_id", "description", "created_at"}).
		AddRow("e1", "u1", "resume_uploaded", "r1", nil, nil, created)
	mock.ExpectQuery("SELECT id, user_id, action").WithArgs("u1", 50).WillReturnRows(rows)

	entries, err := (&PGRepo{DB: db}).ListByUser(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != ActionResumeUploaded || entries[0].ResumeID != "r1" || entries[0].AnalysisID != "" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}
