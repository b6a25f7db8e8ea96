// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pmem

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Map maps size bytes of physical memory starting at base.
//
// The mapping is widened to whole pages; the returned View still only
// accepts accesses inside [base, base+size).
func Map(base uintptr, size int) (*View, error) {
	if size <= 0 {
		return nil, fmt.Errorf("pmem: invalid size %d", size)
	}
	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("pmem: need more access, try as root: %w", err)
		}
		return nil, fmt.Errorf("pmem: %w", err)
	}
	// The mapping stays valid after the file is closed.
	defer f.Close()

	page := uintptr(os.Getpagesize())
	start := base &^ (page - 1)
	length := (int(base-start) + size + int(page) - 1) &^ (int(page) - 1)
	mem, err := unix.Mmap(int(f.Fd()), int64(start), length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("pmem: mapping 0x%x: %w", base, err)
	}
	off := int(base - start)
	v := &View{
		base: base,
		mem:  mem[off : off+size],
		unmap: func([]byte) error {
			return unix.Munmap(mem)
		},
	}
	return v, nil
}
