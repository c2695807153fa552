// Package s3 provides a BlobStore backed by AWS S3.
package s3
