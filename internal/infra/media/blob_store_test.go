package media

import (
	"context"
	"io"
	"strings"
	"testing"

	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBlobStore_PutAndOpen(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	store := NewBlobStore(bucket)

	key, err := store.Put(ctx, "/items/1/a.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "items/1/a.png", key)

	object, err := store.Open(ctx, key)
	require.NoError(t, err)
	defer object.Body.Close()

	body, err := io.ReadAll(object.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "image/png", object.ContentType)
	assert.Equal(t, int64(len("png-bytes")), object.Size)
}

func TestBlobStore_OpenMissing(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	store := NewBlobStore(bucket)

	_, err := store.Open(context.Background(), "items/404.png")
	assert.True(t, errors.Is(err, service.ErrMediaNotFound))
}

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "items/1/a.png", want: "items/1/a.png"},
		{key: "/category.png", want: "category.png"},
		{key: "items//1/./a.png", want: "items/1/a.png"},
		{key: "", wantErr: true},
		{key: "../etc/passwd", wantErr: true},
		{key: "items/../../secret", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cleanKey(tt.key)
			if tt.wantErr {
				assert.True(t, errors.Is(err, service.ErrInvalidMediaKey))

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
