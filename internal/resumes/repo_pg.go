package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, file_name, original_file_name, mime_type, size_bytes, storage_key, file_content, metadata, uploaded_at`

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (` + selectColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	metadata, err := json.Marshal(resume.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	originalName := resume.OriginalFileName
	if originalName == "" {
		originalName = resume.FileName
	}
	var storageKey sql.NullString
	if resume.StorageKey != "" {
		storageKey = sql.NullString{String: resume.StorageKey, Valid: true}
	}

	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.FileName,
		originalName,
		resume.MimeType,
		resume.SizeBytes,
		storageKey,
		resume.Content,
		metadata,
		resume.UploadedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `
SELECT ` + selectColumns + `
FROM resumes
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
LIMIT 1`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, userID, resumeID))
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	return resume, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
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
SELECT ` + selectColumns + `
FROM resumes
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY uploaded_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var storageKey sql.NullString
	var metadata []byte
	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.FileName,
		&resume.OriginalFileName,
		&resume.MimeType,
		&resume.SizeBytes,
		&storageKey,
		&resume.Content,
		&metadata,
		&resume.UploadedAt,
	); err != nil {
		return Resume{}, err
	}
	resume.StorageKey = storageKey.String
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &resume.Metadata); err != nil {
			return Resume{}, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return resume, nil
}
