// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package piocoretest

import (
	"testing"

	"periph.io/x/altera/v3/pmem"
)

var _ pmem.Bus = &Fake{}
var _ pmem.Bus = Fakes{}

func TestFake_Latch(t *testing.T) {
	f := &Fake{Base: 0x100}
	f.Store32(0x110, 0x0f)
	f.Store32(0x114, 0x03)
	if f.Latch != 0x0c {
		t.Fatalf("Latch = 0x%x", f.Latch)
	}
	f.Inputs = 0xf0
	f.Pins = 0x30
	if v := f.Load32(0x100); v != 0x3c {
		t.Errorf("data = 0x%x, want 0x3c", v)
	}
	if s := f.Log(); s != "outset<-0xf\noutclear<-0x3\ndata->0x3c" {
		t.Errorf("Log() = %q", s)
	}
	if n := len(f.Writes()); n != 2 {
		t.Errorf("len(Writes()) = %d", n)
	}
	f.Reset()
	if len(f.Ops) != 0 {
		t.Error("Reset() didn't clear")
	}
}

func TestFake_BusFault(t *testing.T) {
	f := &Fake{Base: 0x100}
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	f.Load32(0x120)
}

func TestFakes(t *testing.T) {
	m := Fakes{}
	a := m.Core(0x1000)
	b := m.Core(0x1020)
	m.Store32(0x1030, 1)
	if a.Latch != 0 || b.Latch != 1 {
		t.Errorf("a=0x%x b=0x%x", a.Latch, b.Latch)
	}
	if m.Core(0x1000) != a {
		t.Error("Core() isn't stable")
	}
}
