package audit

import "time"

// Action names an audited event.
type Action string

const (
	ActionResumeUploaded  Action = "resume_uploaded"
	ActionAnalysisRun     Action = "analysis_run"
	ActionAnalysisDeleted Action = "analysis_deleted"
)

// Entry is one audit log row.
type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Action      Action    `json:"action"`
	ResumeID    string    `json:"resumeId,omitempty"`
	AnalysisID  string    `json:"analysisId,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
