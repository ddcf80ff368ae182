package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalBlobStoreSave(t *testing.T) {
	dir := t.TempDir()
	blobs, err := NewLocalBlobStore(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatal(err)
	}

	url, err := blobs.Save(context.Background(), "cat.png", "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") {
		t.Errorf("url = %q, want /uploads/ prefix", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q, want original extension preserved", url)
	}

	content, err := os.ReadFile(filepath.Join(dir, "uploads", strings.TrimPrefix(url, "/uploads/")))
	if err != nil {
		t.Fatalf("saved file unreadable: %v", err)
	}
	if string(content) != "png-bytes" {
		t.Errorf("saved content = %q", content)
	}
}

func TestLocalBlobStoreKeysAreUnique(t *testing.T) {
	blobs, err := NewLocalBlobStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	first, err := blobs.Save(context.Background(), "cat.png", "image/png", []byte("one"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := blobs.Save(context.Background(), "cat.png", "image/png", []byte("two"))
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("same name produced same URL %q, uploads must not collide", first)
	}
}
