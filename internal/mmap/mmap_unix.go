//go:build unix

// Package mmap wraps read-only memory mapping of whole files for the reader
// side of a hif session.
package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Region is a read-only memory-mapped view of a file. Close unmaps it; the
// bytes must not be used afterwards.
type Region struct {
	data []byte
}

// Map maps the whole file at path read-only. The file descriptor is closed
// before returning; the mapping stays valid until Close.
func Map(path string) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("mmap: stat %s: %w", path, err)
	}

	size := info.Size()
	if size == 0 {
		return &Region{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: map %s: %w", path, err)
	}

	return &Region{data: data}, nil
}

// Bytes returns the mapped bytes. The slice is valid until Close.
func (r *Region) Bytes() []byte {
	return r.data
}

// Close unmaps the region. Safe to call more than once.
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	data := r.data
	r.data = nil

	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("mmap: unmap: %w", err)
	}

	return nil
}
