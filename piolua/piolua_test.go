// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package piolua

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
	"periph.io/x/altera/v3/piocore"
	"periph.io/x/altera/v3/piocore/piocoretest"
)

func newState(t *testing.T) (*lua.LState, *Binding, piocoretest.Fakes) {
	m := piocoretest.Fakes{}
	L := lua.NewState()
	t.Cleanup(L.Close)
	b := Register(L, func(base uintptr, width int) (*piocore.Port, error) {
		if base&(piocore.BlockSize-1) == 0 {
			m.Core(base)
		}
		return piocore.New(m, base, width, nil)
	})
	return L, b, m
}

func TestScript(t *testing.T) {
	L, b, m := newState(t)
	script := `
local p = Altera.PIOCore.new(0x1000, 8)
assert(p:width() == 8)
assert(p:__msb__() == 7 and p:__lsb__() == 0 and p:__base__() == 0x1000)
p:enable_output()

local hi = p:slice(4, 7)
assert(hi:width() == 4)
hi:active_low():assert()
assert(p:value() == 0)
hi:negate()
assert(p:value() == 0xf0)

local b5 = hi[1]
assert(b5:__lsb__() == 5)
assert(b5:is_active_low())
assert(b5:is_negated() and b5:is_high())
b5:on()
assert(b5:is_on() and b5:is_low() and b5:is_cleared())

local lo = p:slice("0..3")
lo:set_value(9)
assert(lo:value() == 9)
lo:toggle()
assert(lo:value() == 6)
p[0]:set()
assert(p[0]:is_set())
p[0]:disable_output()
assert(p[0]:is_output_disabled() and p[1]:is_output_enabled())
p[2]:active_high()
assert(p[2]:is_active_high())

lo:release()
hi:release()
p:release()
`
	if err := L.DoString(script); err != nil {
		t.Fatal(err)
	}
	if f := m[0x1000]; f.Latch != 0xd7 {
		t.Errorf("Latch = 0x%x", f.Latch)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestScript_Errors(t *testing.T) {
	L, _, _ := newState(t)
	data := []struct {
		script string
		want   string
	}{
		{"Altera.PIOCore.new(0x1004, 8)", "invalid base"},
		{"Altera.PIOCore.new(0x1000, 33)", "invalid width"},
		{"Altera.PIOCore.new(0x1000, 8):is_high()", "invalid use of high?"},
		{"Altera.PIOCore.new(0x1000, 8):slice(8, 9)", "invalid range"},
		{"Altera.PIOCore.new(0x1000, 8):slice('0...4')", "invalid range"},
		{"Altera.PIOCore.new(0x1000, 8):slice('x')", "invalid selector"},
		{"Altera.PIOCore.new(0x1000, 8):slice({})", "selector string expected"},
		{"local p = Altera.PIOCore.new(0x1000, 8); p[1.5]:high()", "integer expected"},
		{"Altera.PIOCore.new(0x1000, 8):slice(0.5, 2)", "integer expected"},
		{"Altera.PIOCore.new(0x1000, 8):slice(0, 2.5)", "integer expected"},
		{"Altera.PIOCore.new(0x1000, 8.5)", "integer expected"},
		{"Altera.PIOCore.new(0x1000, 8):set_value(1.5)", "integer expected"},
		{"local p = Altera.PIOCore.new(0x1000, 8); local s = p[1]; p:release(); s:release(); p[1]:high()", "port released"},
		{"local p = Altera.PIOCore.new(0x1000, 8); p:release(); p:release()", "port released"},
		{"local p = Altera.PIOCore.new(0x1000, 8); p:release(); p:high()", "port released"},
	}
	for _, line := range data {
		err := L.DoString(line.script)
		if err == nil || !strings.Contains(err.Error(), line.want) {
			t.Errorf("%s = %v, want %q", line.script, err, line.want)
		}
	}
}

func TestBinding_Close(t *testing.T) {
	L, b, _ := newState(t)
	if err := L.DoString("p = Altera.PIOCore.new(0x2000, 4); s = p[3]; s:release()"); err != nil {
		t.Fatal(err)
	}
	if len(b.ports) != 1 {
		t.Fatalf("tracking %d ports", len(b.ports))
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if err := L.DoString("p:high()"); err == nil {
		t.Error("port still usable after Close()")
	}
}

func TestToString(t *testing.T) {
	L, _, _ := newState(t)
	if err := L.DoString("s = tostring(Altera.PIOCore.new(0x3000, 4)[2])"); err != nil {
		t.Fatal(err)
	}
	if s := L.GetGlobal("s").String(); s != "PIO@3000.2" {
		t.Errorf("tostring() = %q", s)
	}
}

func TestIndex_Reuse(t *testing.T) {
	L, b, m := newState(t)
	script := `
p = Altera.PIOCore.new(0x4000, 8)
for i = 1, 1000 do
  p[0]:toggle()
  p:slice(3):set()
end
`
	if err := L.DoString(script); err != nil {
		t.Fatal(err)
	}
	if n := len(b.ports); n != 3 {
		t.Fatalf("tracking %d ports, want 3", n)
	}
	if f := m[0x4000]; f.Latch != 0x08 {
		t.Errorf("Latch = 0x%x", f.Latch)
	}
	// A released bit is replaced by a new slice on the next access.
	if err := L.DoString("p[0]:release(); p[0]:high()"); err != nil {
		t.Fatal(err)
	}
	if n := len(b.ports); n != 3 {
		t.Fatalf("tracking %d ports, want 3", n)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
}
