package service

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

// ErrMediaNotFound is returned when no object exists under a key.
var ErrMediaNotFound = errors.New("media object not found")

// ErrInvalidMediaKey rejects keys that escape the bucket namespace.
var ErrInvalidMediaKey = errors.New("invalid media key")

// MediaObject is an opened media file.
type MediaObject struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// MediaStore stores and serves uploaded images.
type MediaStore interface {
	// Open returns the object stored under key.
	Open(ctx context.Context, key string) (*MediaObject, error)

	// Put writes body under key and returns the key.
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}
