// Package blobstore abstracts where worker sinks and the final top-K
// document live.
//
// Workers stream records into a WritableBlob and commit it with Close;
// a blob that was never committed is invisible to readers. That commit
// boundary is what lets the merge step treat "manifest present and
// valid" as proof of a complete worker. LocalStore keeps blobs on the
// file system, MemoryStore backs tests, and the minio subpackage talks
// to any S3-compatible object store.
package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations must return an error satisfying
// errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("blobstore: blob not found")

// Store is an abstraction for durable, immutable data blobs.
type Store interface {
	// Create opens a new blob for streaming writes. The blob becomes
	// visible to Open only after a successful Close.
	Create(ctx context.Context, name string) (WritableBlob, error)

	// Open opens a committed blob for reading.
	Open(ctx context.Context, name string) (Blob, error)

	// Put writes a small blob in one shot, atomically.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
}

// Blob is a read-only handle to a committed blob.
type Blob interface {
	io.ReadCloser
	// Size returns the size of the blob in bytes.
	Size() int64
}

// WritableBlob is a streaming write handle. Exactly one of Close or
// Abort must be called.
type WritableBlob interface {
	io.Writer
	// Close commits the blob.
	Close() error
	// Abort discards everything written; the blob never becomes
	// visible.
	Abort() error
}
