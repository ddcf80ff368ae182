package app

import (
	"context"
	"fmt"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/config"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/logger"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/media"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/store"
)

type Infra struct {
	Users    store.Users
	Messages store.Messages
	Blobs    media.BlobStore

	// LocalUploadDir is non-empty when the local blob store is in
	// use, so the router can serve /uploads from it.
	LocalUploadDir string

	cleanup func(context.Context) error
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{
		cleanup: func(context.Context) error { return nil },
	}

	if cfg.MongoURI != "" {
		db, err := store.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		infra.Users = db.Users()
		infra.Messages = db.Messages()
		infra.cleanup = db.Close
		logger.Info("database ready", map[string]any{"database": cfg.MongoDB})
	} else {
		mem := store.NewMemory()
		infra.Users = mem.Users()
		infra.Messages = mem.Messages()
		logger.Warn("MONGODB_URL not set, using in-memory store", nil)
	}

	switch cfg.StorageType {
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("AWS_BUCKET required for s3 storage")
		}
		blobs, err := media.NewS3BlobStore(ctx, cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			return nil, fmt.Errorf("s3 blob store: %w", err)
		}
		infra.Blobs = blobs
		logger.Info("using s3 storage", map[string]any{"bucket": cfg.S3Bucket})
	default:
		blobs, err := media.NewLocalBlobStore(cfg.UploadDir)
		if err != nil {
			return nil, fmt.Errorf("local blob store: %w", err)
		}
		infra.Blobs = blobs
		infra.LocalUploadDir = cfg.UploadDir
		logger.Info("using local storage", map[string]any{"dir": cfg.UploadDir})
	}

	return infra, nil
}
