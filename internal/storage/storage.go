package storage

import (
	"context"
)

// FileStorage keeps lawyer avatar images. Profiles reference the
// returned URL; the bucket is the source of truth for the bytes.
type FileStorage interface {
	UploadAvatar(ctx context.Context, data []byte, filename string) (string, error)

	DeleteAvatar(ctx context.Context, fileURL string) error
}
