// Package blobstore abstracts the durable storage behind snapshot writes.
//
// The orchestrator persists its best-so-far results after every improving
// run; a BlobStore is where those bytes land. Implementations:
//
//   - LocalStore: local filesystem, atomic rename on Put
//   - MemoryStore: in-memory, for tests
//   - minio.Store: MinIO / S3-compatible object storage
//   - s3.Store: AWS S3
//
// Put must be atomic with last-writer-wins semantics: a reader never sees a
// partially written blob.
package blobstore
