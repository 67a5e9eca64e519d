//go:build windows

package mmap

import "os"

// osMap falls back to a full read on Windows: a real mapping would
// need CreateFileMapping/MapViewOfFile, but a plain read is
// sufficient for the snapshot sizes this package targets and keeps
// the Windows build free of an additional golang.org/x/sys/windows
// dependency surface.
func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data := make([]byte, size)
	if _, err := f.ReadAt(data, 0); err != nil {
		return nil, nil, err
	}
	return data, func([]byte) error { return nil }, nil
}
