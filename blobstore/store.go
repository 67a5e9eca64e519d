// Package blobstore provides a small abstraction for persisting
// serialized SuccinctBitVector snapshots to a backing object store.
package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a named blob does not exist.
var ErrNotFound = errors.New("blobstore: not found")

// Header describes a snapshot blob: its bit vector size, one-count and
// compressor name. The Store implementations in this module do not
// write or read a Header themselves; they store and return a blob's
// bytes exactly as given.
type Header struct {
	Size       uint64 // bit vector size in bits
	NumOnes    uint64
	Compressor string // "" for uncompressed, else a name registered with rank9sel.CompressorByName
}

// Store persists and retrieves named snapshot blobs.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create opens a blob for writing. The blob is only guaranteed
	// visible to Open once Close returns without error.
	Create(ctx context.Context, name string) (WritableBlob, error)
}

// Blob is a read-only handle to a stored snapshot.
type Blob interface {
	io.ReadCloser
	// Size returns the size of the blob in bytes.
	Size() int64
}

// WritableBlob is a write-only handle used to upload a snapshot.
type WritableBlob interface {
	io.WriteCloser
}
