package local

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"resume-analysis/internal/shared/storage/object"
)

func TestSaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	obj, err := store.Save(ctx, "guest:abc", "resume.txt", "text/plain", strings.NewReader("Skills: Go"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if obj.Size != int64(len("Skills: Go")) || obj.ContentType != "text/plain" {
		t.Fatalf("unexpected object %+v", obj)
	}

	rc, err := store.Open(ctx, obj.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if string(body) != "Skills: Go" {
		t.Fatalf("unexpected body %q", body)
	}

	if err := store.Delete(ctx, obj.Key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, obj.Key); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist after delete, got %v", err)
	}
	if err := store.Delete(ctx, obj.Key); err != nil {
		t.Fatalf("second Delete should be a no-op: %v", err)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../../etc/passwd"); !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}
