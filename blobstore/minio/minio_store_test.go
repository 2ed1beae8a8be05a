package minio

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/trispin/blobstore"
)

func TestKey(t *testing.T) {
	s := NewStore(nil, "b", "root/")
	assert.Equal(t, "root/bloch/a.snap", s.key("bloch/a.snap"))
	assert.Equal(t, "root/bloch/", s.key("bloch/"))
	assert.Equal(t, "root", s.key(""))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	bucket := "test-trispin"

	store, err := Connect("localhost:9000", "minioadmin", "minioadmin", false, bucket, "test-prefix/")
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "bloch/test.snap", data))

	got, err := store.Get(ctx, "bloch/test.snap")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "bloch/")
	require.NoError(t, err)
	assert.Contains(t, names, "bloch/test.snap")

	require.NoError(t, store.Delete(ctx, "bloch/test.snap"))
	_, err = store.Get(ctx, "bloch/test.snap")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
