// Package blobstore provides read access to the blobs (.h5ad files) adview
// opens, wherever they live.
//
// BlobStore is the interface for locating and reading immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local file system
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 with range reads and multipart downloads
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Staging
//
// The HDF5 reader needs a local file. Stage materializes a blob on local
// disk, using parallel range reads (or the store's own Downloader) and an
// optional IO rate limit:
//
//	staged, err := blobstore.Stage(ctx, store, "pbmc3k.h5ad",
//	    blobstore.WithConcurrency(8),
//	    blobstore.WithIOLimit(64<<20),
//	)
//	if err != nil {
//	    return err
//	}
//	defer staged.Close()
//
//	f, err := hdf5.Open(staged.Path)
package blobstore
