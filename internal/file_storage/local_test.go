package filestorage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LucasBeserra/magnetic-report-api/pkg/report"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	ls, err := NewLocalStorage(root, "/uploads/")
	if err != nil {
		t.Fatal(err)
	}

	p, err := ls.Save(ctx, "a.jpg", strings.NewReader("photo"), 5, "image/jpeg")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if p != "a.jpg" {
		t.Errorf("storage path = %q, want a.jpg", p)
	}

	if _, err := ls.Save(ctx, "a.jpg", strings.NewReader("again"), 5, "image/jpeg"); err == nil {
		t.Error("expected Save() to refuse overwriting an existing file")
	}

	rc, err := ls.Open(ctx, p)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	b, _ := io.ReadAll(rc)
	rc.Close()
	if string(b) != "photo" {
		t.Errorf("read %q, want photo", b)
	}

	u, err := ls.URL(ctx, p)
	if err != nil || u != "/uploads/a.jpg" {
		t.Errorf("URL() = %q, %v", u, err)
	}

	if err := ls.Delete(ctx, p); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := ls.Delete(ctx, p); err != nil {
		t.Errorf("deleting an absent file should succeed, got %v", err)
	}

	if _, err := ls.Open(ctx, p); !errors.Is(err, report.ErrPhotoNotFound) {
		t.Errorf("Open() after delete error = %v, want ErrPhotoNotFound", err)
	}
}

func TestLocalStorageStaysInsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "uploads")
	ls, err := NewLocalStorage(root, "/uploads")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ls.Save(context.Background(), "../escape.jpg", strings.NewReader("x"), 1, ""); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(parent, "escape.jpg")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file escaped the upload root")
	}
	if _, err := os.Stat(filepath.Join(root, "escape.jpg")); err != nil {
		t.Errorf("expected the file inside the root: %v", err)
	}
}
