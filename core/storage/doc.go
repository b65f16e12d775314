// Package storage wraps the MinIO client for reading a gallery kept in an S3 compatible
// bucket.
//
// Only the read operations used by the object store scanner are exposed. The Client
// interface keeps the scanner testable against core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	for obj := range client.ListObjects(ctx, "gallery", minio.ListObjectsOptions{Prefix: "2024/"}) {
//	    fmt.Println(obj.Key)
//	}
package storage
