// Package resumes stores uploaded resumes: the original file in the object
// store and a record holding the extracted text and parsed metadata.
package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-analysis/internal/audit"
	"resume-analysis/internal/shared/metrics"
	"resume-analysis/internal/shared/storage/object"
	"resume-analysis/internal/shared/telemetry"
)

// Upload is a resume ready to be stored.
type Upload struct {
	UserID   string
	FileName string
	MimeType string
	Data     []byte
	Text     string
	Metadata Metadata
}

// Service persists uploads. Store and Audit are optional.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
	Audit *audit.Recorder
	now   func() time.Time
}

func NewService(repo Repo, store object.ObjectStore, recorder *audit.Recorder) *Service {
	return &Service{Repo: repo, Store: store, Audit: recorder, now: time.Now}
}

// Save writes the file, then the record. If the record cannot be written the
// stored file is removed again.
func (s *Service) Save(ctx context.Context, up Upload) (Resume, error) {
	if s == nil || s.Repo == nil {
		return Resume{}, errors.New("resumes service not configured")
	}
	if strings.TrimSpace(up.UserID) == "" {
		return Resume{}, errors.New("user id is required")
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	resume := Resume{
		ID:               uuid.NewString(),
		UserID:           up.UserID,
		FileName:         storedName(up.FileName),
		OriginalFileName: up.FileName,
		MimeType:         up.MimeType,
		SizeBytes:        int64(len(up.Data)),
		Content:          up.Text,
		Metadata:         up.Metadata,
		UploadedAt:       now().UTC(),
	}

	if s.Store != nil && len(up.Data) > 0 {
		obj, err := s.Store.Save(ctx, up.UserID, up.FileName, up.MimeType, bytes.NewReader(up.Data))
		if err != nil {
			metrics.IncResumeStoreFailed()
			return Resume{}, fmt.Errorf("store resume file: %w", err)
		}
		resume.StorageKey = obj.Key
		resume.FileName = path.Base(obj.Key)
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		metrics.IncResumeStoreFailed()
		if resume.StorageKey != "" {
			if delErr := s.Store.Delete(ctx, resume.StorageKey); delErr != nil {
				telemetry.Warn("resume.cleanup_failed", map[string]any{
					"storage_key": resume.StorageKey,
					"error":       delErr.Error(),
				})
			}
		}
		return Resume{}, fmt.Errorf("create resume record: %w", err)
	}

	metrics.IncResumeStored()
	s.Audit.Record(ctx, audit.Entry{
		UserID:      up.UserID,
		Action:      audit.ActionResumeUploaded,
		ResumeID:    resume.ID,
		Description: "Uploaded " + resume.OriginalFileName,
	})
	return resume, nil
}

// Get returns one of the user's resumes.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns the user's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// storedName is the sanitized client file name, used when no object store
// assigned a name.
func storedName(fileName string) string {
	name, err := object.SafeFileName(fileName)
	if err != nil {
		return "resume"
	}
	return name
}
