// Package audit records user-visible actions on resumes and analyses.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"resume-analysis/internal/shared/telemetry"
)

// Recorder writes audit entries best-effort. A nil Recorder or Repo drops
// entries silently.
type Recorder struct {
	Repo Repo
	now  func() time.Time
}

func NewRecorder(repo Repo) *Recorder {
	return &Recorder{Repo: repo, now: time.Now}
}

// Record fills in ID and timestamp and persists the entry. Failures are
// logged, never returned.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if r == nil || r.Repo == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		now := time.Now
		if r.now != nil {
			now = r.now
		}
		entry.CreatedAt = now().UTC()
	}
	if err := r.Repo.Create(ctx, entry); err != nil {
		telemetry.Warn("audit.write_failed", map[string]any{
			"action":  string(entry.Action),
			"user_id": entry.UserID,
			"error":   err.Error(),
		})
	}
}
