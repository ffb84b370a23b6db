// Package health reports whether the API and its dependencies are usable.
package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the health payload.
type Status struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
	AI       bool   `json:"aiEnabled"`
}

// Service encapsulates health-related checks. A nil DB means the in-memory
// repositories are in use.
type Service struct {
	DB        Pinger
	AIEnabled bool
}

// NewService constructs a new health service.
func NewService(db Pinger, aiEnabled bool) *Service {
	return &Service{DB: db, AIEnabled: aiEnabled}
}

// Status pings the database. The API stays up without AI, so only the
// database affects OK.
func (s *Service) Status(ctx context.Context) Status {
	out := Status{OK: true, Database: "memory", AI: s.AIEnabled}
	if s.DB == nil {
		return out
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		out.OK = false
		out.Database = "down"
		return out
	}
	out.Database = "up"
	return out
}
