package minio

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/hupe1980/adview/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-adview"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	_, err = client.ListBuckets(ctx)
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		require.NoError(t, err)
	}

	data := []byte("hello minio world")
	_, err = client.PutObject(ctx, bucket, "test-prefix/test.h5ad", bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	require.NoError(t, err)
	defer func() {
		_ = client.RemoveObject(ctx, bucket, "test-prefix/test.h5ad", minio.RemoveObjectOptions{})
	}()

	store := NewStore(client, bucket, "test-prefix/")

	blob, err := store.Open(ctx, "test.h5ad")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	assert.Equal(t, "minio", string(buf))
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.h5ad")

	_, err = store.Open(ctx, "missing.h5ad")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	staged, err := blobstore.Stage(ctx, store, "test.h5ad", blobstore.WithStageDir(t.TempDir()))
	require.NoError(t, err)
	defer staged.Close()

	got, err := os.ReadFile(staged.Path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestDial(t *testing.T) {
	store, err := Dial("localhost:9000", "k", "s", false, "bucket", "prefix/")
	require.NoError(t, err)
	assert.Equal(t, "prefix/a.h5ad", store.key("a.h5ad"))
}
