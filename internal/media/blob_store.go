package media

import "context"

// BlobStore persists uploaded media and returns a durable URL for it.
// The name hint carries the original file extension; implementations
// choose their own object keys.
type BlobStore interface {
	Save(ctx context.Context, name, contentType string, content []byte) (string, error)
}
