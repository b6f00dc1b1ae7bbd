// Package media stores uploaded images in a gocloud.dev blob bucket.
package media

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

type blobStore struct {
	bucket *blob.Bucket
}

// NewBlobStore wraps an open bucket.
func NewBlobStore(bucket *blob.Bucket) service.MediaStore {
	return &blobStore{bucket: bucket}
}

// Params holds dependencies for the media store, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens media.bucketUrl and closes the bucket on shutdown.
func New(params Params) (service.MediaStore, error) {
	bucketURL := params.Config.Media.BucketURL
	if bucketURL == "" {
		return nil, errors.New("media bucket url is required")
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open media bucket %s", bucketURL)
	}

	params.Logger.Info("Media bucket opened", slog.String("url", bucketURL))

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewBlobStore(bucket), nil
}

// Open returns a reader over the object; the caller closes Body.
func (s *blobStore) Open(ctx context.Context, key string) (*service.MediaObject, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, service.ErrMediaNotFound
		}

		return nil, errors.Wrapf(err, "failed to open media %s", key)
	}

	return &service.MediaObject{
		Body:        reader,
		ContentType: reader.ContentType(),
		Size:        reader.Size(),
	}, nil
}

// Put streams body into the bucket under key.
func (s *blobStore) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrapf(err, "failed to create media writer %s", key)
	}

	if _, err := io.Copy(writer, body); err != nil {
		_ = writer.Close()

		return "", errors.Wrapf(err, "failed to write media %s", key)
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to commit media %s", key)
	}

	return key, nil
}

// cleanKey normalizes a slash-separated key and refuses parent references.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", service.ErrInvalidMediaKey
	}

	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return "", service.ErrInvalidMediaKey
		}
	}

	return path.Clean(key), nil
}

// Module provides the media FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
