package health

import (
	"context"
	"errors"
	"testing"
)

type stubPinger struct{ err error }

func (s stubPinger) PingContext(ctx context.Context) error { return s.err }

func TestStatusWithoutDatabase(t *testing.T) {
	got := NewService(nil, true).Status(context.Background())
	if !got.OK || got.Database != "memory" || !got.AI {
		t.Fatalf("unexpected status %+v", got)
	}
}

func TestStatusReportsDatabase(t *testing.T) {
	up := NewService(stubPinger{}, false).Status(context.Background())
	if !up.OK || up.Database != "up" {
		t.Fatalf("unexpected status %+v", up)
	}
	down := NewService(stubPinger{err: errors.New("refused")}, false).Status(context.Background())
	if down.OK || down.Database != "down" {
		t.Fatalf("unexpected status %+v", down)
	}
}
