// Package mmap loads a SuccinctBitVector snapshot written by
// MarshalBinary directly from a memory-mapped file, avoiding the
// read()-into-heap-buffer copy an ordinary os.ReadFile would pay for
// large snapshots.
package mmap

import (
	"os"

	"github.com/succinctgo/rank9sel"
)

// Mapping owns the memory-mapped bytes of a snapshot file. Callers
// must call Close when done to release the mapping.
type Mapping struct {
	data  []byte
	unmap func([]byte) error
}

// Bytes returns the mapped file contents. Valid until Close.
func (m *Mapping) Bytes() []byte { return m.data }

// Close releases the mapping.
func (m *Mapping) Close() error {
	if m.unmap == nil {
		return nil
	}
	return m.unmap(m.data)
}

// Open memory-maps path read-only.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	data, unmap, err := osMap(f, int(info.Size()))
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data, unmap: unmap}, nil
}

// OpenVector memory-maps path and decodes the SuccinctBitVector
// snapshot stored there. UnmarshalBinary decodes every array into
// freshly allocated slices, so the returned vector does not reference
// the mapped bytes and the Mapping may be closed as soon as
// OpenVector returns.
func OpenVector(path string) (*rank9sel.SuccinctBitVector, *Mapping, error) {
	m, err := Open(path)
	if err != nil {
		return nil, nil, err
	}

	sv := new(rank9sel.SuccinctBitVector)
	if err := sv.UnmarshalBinary(m.data); err != nil {
		_ = m.Close()
		return nil, nil, err
	}
	return sv, m, nil
}
