// Package blobstore provides the storage abstraction for persisted basis
// snapshots.
//
// Store is the interface for reading and writing whole blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral runs
//   - LocalStore: local filesystem with atomic renames and optional IO rate limiting
//   - CachingStore: LRU read cache in front of any Store
//   - s3.Store: Amazon S3 with multipart uploads and CRC32C checksums
//   - minio.Store: MinIO and other S3-compatible object stores
//
// # Custom Implementations
//
//	type Store interface {
//	    Get(ctx, name) ([]byte, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
