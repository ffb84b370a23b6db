package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, user_id, resume_id, analysis_type, job_description, job_role, results, ai_enhanced, ai_suggestions, analyzed_at`

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (` + analysisColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.UserID,
		nullableString(analysis.ResumeID),
		string(analysis.Type),
		nullableString(analysis.JobDescription),
		nullableString(analysis.JobRole),
		jsonbOrEmpty(analysis.Results),
		analysis.AIEnhanced,
		jsonbOrNull(analysis.AISuggestions),
		analysis.CreatedAt,
	)
	return err
}

// GetByID returns a live analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	const query = `
SELECT ` + analysisColumns + `
FROM analyses
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	a, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID))
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return a, err
}

// ListByUser returns the user's analyses newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
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
SELECT ` + analysisColumns + `
FROM analyses
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY analyzed_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete soft-deletes an analysis.
func (r *PGRepo) Delete(ctx context.Context, analysisID string) error {
	const query = `UPDATE analyses SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, analysisID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var analysisType string
	var resumeID, jobDescription, jobRole sql.NullString
	var results, suggestions []byte
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&resumeID,
		&analysisType,
		&jobDescription,
		&jobRole,
		&results,
		&a.AIEnhanced,
		&suggestions,
		&a.CreatedAt,
	); err != nil {
		return Analysis{}, err
	}
	a.Type = Type(analysisType)
	a.ResumeID = resumeID.String
	a.JobDescription = jobDescription.String
	a.JobRole = jobRole.String
	if len(results) > 0 {
		a.Results = json.RawMessage(results)
	}
	if len(suggestions) > 0 {
		a.AISuggestions = json.RawMessage(suggestions)
	}
	return a, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func jsonbOrEmpty(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}
	return raw
}

func jsonbOrNull(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
