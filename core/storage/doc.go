// Package storage wraps the MinIO client used to archive sync snapshots.
//
// The Client interface covers the operations the snapshot archive needs and is
// mocked in core/storage/mocks for tests. Any S3 compatible service works.
//
// # Operations
//
//   - BucketExists / MakeBucket: through EnsureBucket before the first upload.
//   - PutObject / GetObject: snapshot upload and download.
//   - ListObjects: snapshot listing under a prefix.
//   - RemoveObjects: retention pruning.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	err = storage.EnsureBucket(ctx, client, cfg.Bucket)
package storage
