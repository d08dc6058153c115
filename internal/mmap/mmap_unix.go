//go:build unix

// Package mmap wraps the raw mmap/munmap/msync syscalls the persistent
// backend needs: map a file into memory, flush a byte range back to disk,
// and unmap. It intentionally knows nothing about node formats or
// headers — persist.File owns that.
package mmap

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Region is a memory-mapped view of a file's first size bytes.
type Region struct {
	data []byte
}

// Map maps size bytes of fd starting at offset 0 for reading and writing.
// The caller is responsible for ensuring the file is already at least
// size bytes long (via Truncate) before mapping.
func Map(fd int, size int64) (*Region, error) {
	data, err := unix.Mmap(fd, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: map %d bytes: %w", size, err)
	}
	return &Region{data: data}, nil
}

// MapReadOnly maps size bytes of fd for reading only, for a file opened
// O_RDONLY (PROT_WRITE would fail the syscall against such a descriptor).
func MapReadOnly(fd int, size int64) (*Region, error) {
	data, err := unix.Mmap(fd, 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: map read-only %d bytes: %w", size, err)
	}
	return &Region{data: data}, nil
}

// Bytes exposes the mapped region directly. Callers must not reslice
// beyond its length or hold onto it past Unmap.
func (r *Region) Bytes() []byte { return r.data }

// Flush writes back the pages covering [start, end) using msync, rounding
// start down to the nearest page boundary the way the kernel requires.
func (r *Region) Flush(start, end int) error {
	pageSize := unix.Getpagesize()
	aligned := start &^ (pageSize - 1)
	if aligned < 0 {
		aligned = 0
	}
	if end > len(r.data) {
		end = len(r.data)
	}
	if aligned >= end {
		return nil
	}
	if err := unix.Msync(r.data[aligned:end], unix.MS_SYNC); err != nil {
		return fmt.Errorf("mmap: msync [%d:%d): %w", aligned, end, err)
	}
	return nil
}

// Unmap releases the mapping. The Region must not be used afterward.
func (r *Region) Unmap() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	if err != nil {
		return fmt.Errorf("mmap: unmap: %w", err)
	}
	return nil
}
