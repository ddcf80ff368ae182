package media

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalBlobStore implements BlobStore on the local filesystem. Saved
// files are served back under /uploads by the HTTP layer.
type LocalBlobStore struct {
	Dir string
}

func NewLocalBlobStore(dir string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalBlobStore{Dir: dir}, nil
}

func (s *LocalBlobStore) Save(_ context.Context, name, _ string, content []byte) (string, error) {
	key := uuid.NewString() + filepath.Ext(name)
	if err := os.WriteFile(filepath.Join(s.Dir, key), content, 0o644); err != nil {
		return "", err
	}
	return "/uploads/" + key, nil
}
