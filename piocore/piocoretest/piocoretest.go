// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package piocoretest implements a simulated PIO core for tests.
package piocoretest

import (
	"fmt"
	"strings"
)

// Register offsets of a PIO core.
const (
	RegData          = 0x00
	RegDirection     = 0x04
	RegInterruptMask = 0x08
	RegEdgeCapture   = 0x0C
	RegOutSet        = 0x10
	RegOutClear      = 0x14
)

var regNames = map[uintptr]string{
	RegData:          "data",
	RegDirection:     "direction",
	RegInterruptMask: "interruptmask",
	RegEdgeCapture:   "edgecapture",
	RegOutSet:        "outset",
	RegOutClear:      "outclear",
}

// Op is one register access recorded by Fake.
type Op struct {
	Reg   uintptr // Offset from the core base.
	Write bool
	Value uint32
}

func (o Op) String() string {
	name := regNames[o.Reg]
	if name == "" {
		name = fmt.Sprintf("0x%02x", o.Reg)
	}
	if o.Write {
		return fmt.Sprintf("%s<-0x%x", name, o.Value)
	}
	return fmt.Sprintf("%s->0x%x", name, o.Value)
}

// Fake simulates the registers of a PIO core with individual bit
// setting/clearing enabled.
//
// Fake implements pmem.Bus. It panics on an access outside of its register
// block, like a bus fault would.
type Fake struct {
	// Base is the physical address of the register block.
	Base uintptr
	// Latch is the output register.
	Latch uint32
	// Direction is the direction register; a set bit is an output.
	Direction uint32
	// InterruptMask and EdgeCapture are stored but have no effect.
	InterruptMask uint32
	EdgeCapture   uint32
	// Inputs selects the bits driven from outside; reading data returns Pins
	// for those bits and Latch for the others.
	Inputs uint32
	Pins   uint32
	// Ops is every access in order.
	Ops []Op
}

// Load32 implements pmem.Bus.
func (f *Fake) Load32(addr uintptr) uint32 {
	reg := f.reg(addr)
	var v uint32
	switch reg {
	case RegData:
		v = f.Latch&^f.Inputs | f.Pins&f.Inputs
	case RegDirection:
		v = f.Direction
	case RegInterruptMask:
		v = f.InterruptMask
	case RegEdgeCapture:
		v = f.EdgeCapture
	}
	// outset, outclear and the reserved words read as zero.
	f.Ops = append(f.Ops, Op{Reg: reg, Value: v})
	return v
}

// Store32 implements pmem.Bus.
func (f *Fake) Store32(addr uintptr, v uint32) {
	reg := f.reg(addr)
	switch reg {
	case RegData:
		f.Latch = v
	case RegDirection:
		f.Direction = v
	case RegInterruptMask:
		f.InterruptMask = v
	case RegEdgeCapture:
		// Write to clear.
		f.EdgeCapture &^= v
	case RegOutSet:
		f.Latch |= v
	case RegOutClear:
		f.Latch &^= v
	}
	f.Ops = append(f.Ops, Op{Reg: reg, Write: true, Value: v})
}

// Writes returns the recorded stores.
func (f *Fake) Writes() []Op {
	var out []Op
	for _, op := range f.Ops {
		if op.Write {
			out = append(out, op)
		}
	}
	return out
}

// Reset forgets the recorded accesses.
func (f *Fake) Reset() {
	f.Ops = nil
}

// Log returns the recorded accesses, one per line.
func (f *Fake) Log() string {
	lines := make([]string, len(f.Ops))
	for i, op := range f.Ops {
		lines[i] = op.String()
	}
	return strings.Join(lines, "\n")
}

func (f *Fake) reg(addr uintptr) uintptr {
	if addr&3 != 0 || addr < f.Base || addr >= f.Base+0x20 {
		panic(fmt.Sprintf("piocoretest: bus fault at 0x%x", addr))
	}
	return addr - f.Base
}

// Fakes decodes several simulated cores on one bus, keyed by base address.
//
// Fakes implements pmem.Bus.
type Fakes map[uintptr]*Fake

// Load32 implements pmem.Bus.
func (m Fakes) Load32(addr uintptr) uint32 {
	return m.find(addr).Load32(addr)
}

// Store32 implements pmem.Bus.
func (m Fakes) Store32(addr uintptr, v uint32) {
	m.find(addr).Store32(addr, v)
}

// Core returns the Fake at base, creating it if needed.
func (m Fakes) Core(base uintptr) *Fake {
	f := m[base]
	if f == nil {
		f = &Fake{Base: base}
		m[base] = f
	}
	return f
}

func (m Fakes) find(addr uintptr) *Fake {
	f := m[addr&^0x1f]
	if f == nil {
		panic(fmt.Sprintf("piocoretest: bus fault at 0x%x", addr))
	}
	return f
}
