package audit

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO audit_logs (id, user_id, action, resume_id, analysis_id, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		string(entry.Action),
		nullable(entry.ResumeID),
		nullable(entry.AnalysisID),
		nullable(entry.Description),
		entry.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const query = `
SELECT id, user_id, action, resume_id, analysis_id, description, created_at
FROM audit_logs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		var action string
		var resumeID, analysisID, description sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &action, &resumeID, &analysisID, &description, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Action = Action(action)
		e.ResumeID = resumeID.String
		e.AnalysisID = analysisID.String
		e.Description = description.String
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
