package object

import (
	"errors"
	"strings"
	"testing"
)

func TestNewKey(t *testing.T) {
	key, err := NewKey("guest:abc", "My CV/final.pdf")
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	owner, name, ok := strings.Cut(key, "/")
	if !ok {
		t.Fatalf("expected owner directory in %q", key)
	}
	if owner != OwnerDir("guest:abc") {
		t.Fatalf("unexpected owner segment %q", owner)
	}
	if !strings.HasSuffix(name, "_My CV_final.pdf") {
		t.Fatalf("unexpected name segment %q", name)
	}

	if _, err := NewKey("u", "../etc/passwd"); err == nil {
		t.Fatal("expected traversal to be rejected")
	}
}

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "a/b.pdf", want: "a/b.pdf"},
		{key: "a//b.pdf", want: "a/b.pdf"},
		{key: `a\b.pdf`, want: "a/b.pdf"},
		{key: "../b.pdf", wantErr: true},
		{key: "/etc/passwd", wantErr: true},
		{key: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := CleanKey(tt.key)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidKey) {
				t.Fatalf("CleanKey(%q) expected ErrInvalidKey, got %v", tt.key, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("CleanKey(%q) = %q, %v; want %q", tt.key, got, err, tt.want)
		}
	}
}
