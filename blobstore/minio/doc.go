// Package minio provides a BlobStore backed by MinIO or any S3-compatible
// object storage.
//
// Useful when clustering runs execute on a remote worker pool and the
// snapshot artifact must be reachable from outside the worker host.
package minio
