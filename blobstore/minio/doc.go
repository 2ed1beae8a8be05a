// Package minio provides a blobstore.Store implementation using the MinIO client.
//
// MinIO is an S3-compatible object storage system. This package uses the
// official MinIO Go client and also works with Ceph, SeaweedFS and Garage.
//
// # Basic Usage
//
//	store, err := minioblob.Connect("localhost:9000", "minioadmin", "minioadmin", false, "bases", "trispin/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	eng, err := trispin.New(trispin.WithStore(store))
//
// An existing *minio.Client can be wrapped with NewStore.
package minio
