package storage

import (
	"context"
	"errors"
)

var (
	ErrEmptyFile  = errors.New("file is empty")
	ErrNotImage   = errors.New("file is not an image")
	ErrForeignURL = errors.New("url does not belong to this storage")
)

// FileStorage keeps counsellor photos. URLs returned by UploadFile are
// public and are what DeleteFile accepts.
type FileStorage interface {
	UploadFile(ctx context.Context, data []byte, filename string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}
