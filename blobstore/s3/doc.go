// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.NewFromConfig(ctx, "my-bucket", "datasets/")
//	if err != nil {
//	    return err
//	}
//	staged, err := blobstore.Stage(ctx, store, "pbmc3k.h5ad")
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart parallel downloads via feature/s3/manager
//   - Automatic pagination for listing
//   - Configurable prefix
package s3
