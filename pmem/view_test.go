// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pmem

import (
	"testing"
	"unsafe"
)

// newTestView returns a View backed by ordinary memory at a fake physical
// address.
func newTestView(base uintptr, words int) (*View, []uint32) {
	backing := make([]uint32, words)
	mem := unsafe.Slice((*byte)(unsafe.Pointer(&backing[0])), words*4)
	return &View{base: base, mem: mem}, backing
}

func TestView_LoadStore(t *testing.T) {
	v, backing := newTestView(0x10000000, 8)
	v.Store32(0x10000010, 0xdeadbeef)
	if backing[4] != 0xdeadbeef {
		t.Fatalf("backing[4] = 0x%x", backing[4])
	}
	backing[1] = 0x55
	if got := v.Load32(0x10000004); got != 0x55 {
		t.Errorf("Load32() = 0x%x, want 0x55", got)
	}
	if v.Base() != 0x10000000 || v.Size() != 32 {
		t.Errorf("Base()=0x%x Size()=%d", v.Base(), v.Size())
	}
}

func TestView_Faults(t *testing.T) {
	v, _ := newTestView(0x1000, 2)
	for _, addr := range []uintptr{0xffc, 0x1008, 0x1002} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("access at 0x%x didn't panic", addr)
				}
			}()
			v.Load32(addr)
		}()
	}
}

func TestView_Close(t *testing.T) {
	v, _ := newTestView(0x1000, 2)
	calls := 0
	v.unmap = func([]byte) error {
		calls++
		return nil
	}
	if err := v.Close(); err != nil {
		t.Fatal(err)
	}
	if err := v.Close(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("unmap called %d times", calls)
	}
}

func TestMap_InvalidSize(t *testing.T) {
	if _, err := Map(0x1000, 0); err == nil {
		t.Error("expected error")
	}
}
