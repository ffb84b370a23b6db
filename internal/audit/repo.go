package audit

import "context"

// Repo persists audit entries.
type Repo interface {
	Create(ctx context.Context, entry Entry) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error)
}
