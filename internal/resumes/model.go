package resumes

import (
	"errors"
	"time"

	"resume-analysis/internal/ai"
)

var ErrNotFound = errors.New("resume not found")

// Metadata is the AI-parsed profile stored with a resume. Error is set
// instead of the profile fields when parsing failed or AI is disabled.
type Metadata struct {
	ai.ResumeMetadata
	Error string `json:"error,omitempty"`
}

// Resume is an uploaded resume and its extracted text.
type Resume struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	FileName         string    `json:"fileName"`
	OriginalFileName string    `json:"originalFileName"`
	MimeType         string    `json:"mimeType"`
	SizeBytes        int64     `json:"fileSize"`
	StorageKey       string    `json:"storageKey,omitempty"`
	Content          string    `json:"fileContent"`
	Metadata         Metadata  `json:"metadata"`
	UploadedAt       time.Time `json:"uploadedAt"`
}
