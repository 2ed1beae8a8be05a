// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("trispin/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	eng, err := trispin.New(trispin.WithStore(store))
//
// # Features
//
//   - Multipart uploads for large snapshots
//   - CRC32C integrity checksums on every write
//   - Automatic pagination for listing
//   - Custom endpoints and path-style addressing for S3-compatible services
package s3
