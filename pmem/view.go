// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pmem

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// View is a window of physical memory mapped into the process.
//
// View implements Bus for the addresses in [Base(), Base()+Size()).
type View struct {
	base  uintptr // physical address of mem[0]
	mem   []byte
	unmap func([]byte) error
}

// Base returns the physical address of the first mapped byte.
func (v *View) Base() uintptr {
	return v.base
}

// Size returns the number of mapped bytes.
func (v *View) Size() int {
	return len(v.mem)
}

// Load32 implements Bus.
func (v *View) Load32(addr uintptr) uint32 {
	return atomic.LoadUint32(v.word(addr))
}

// Store32 implements Bus.
func (v *View) Store32(addr uintptr, val uint32) {
	atomic.StoreUint32(v.word(addr), val)
}

// Close unmaps the memory. The View must not be used afterward.
func (v *View) Close() error {
	if v.mem == nil {
		return nil
	}
	var err error
	if v.unmap != nil {
		err = v.unmap(v.mem)
	}
	v.mem = nil
	return err
}

func (v *View) String() string {
	return fmt.Sprintf("pmem.View(0x%x, %d)", v.base, len(v.mem))
}

// word returns a pointer to the mapped word at addr.
func (v *View) word(addr uintptr) *uint32 {
	if addr&3 != 0 {
		panic(fmt.Sprintf("pmem: unaligned access at 0x%x", addr))
	}
	if addr < v.base || addr-v.base+4 > uintptr(len(v.mem)) {
		panic(fmt.Sprintf("pmem: access at 0x%x outside of %s", addr, v))
	}
	return (*uint32)(unsafe.Pointer(&v.mem[addr-v.base]))
}

var _ Bus = &View{}
