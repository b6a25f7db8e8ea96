// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package piolua exposes PIO cores to Lua scripts.
//
// Register installs the global module Altera with the class PIOCore:
//
//	local leds = Altera.PIOCore.new(0xff200000, 8)
//	leds:enable_output()
//	leds[7]:active_low():assert()
//	leds:slice(0, 3):set_value(5)
//	print(leds:value())
//
// Methods that don't return a value return the receiver so calls can be
// chained. Predicates (is_high, is_asserted, ...) only apply to single-pin
// ports. Errors are raised as Lua errors.
//
// Lua has no hook to release Go resources on collection: call release()
// explicitly, or Binding.Close when the interpreter goes away.
package piolua

import (
	"errors"
	"math"

	lua "github.com/yuin/gopher-lua"
	"periph.io/x/altera/v3/piocore"
)

const portTypeName = "Altera.PIOCore"

// Opener returns the owning Port of the core at base.
type Opener func(base uintptr, width int) (*piocore.Port, error)

// Binding tracks the Ports handed to a Lua state.
type Binding struct {
	open  Opener
	ports map[*piocore.Port]struct{}
	// bits caches p[i] so indexing in a loop doesn't create a slice per
	// access.
	bits map[bitKey]*piocore.Port
}

type bitKey struct {
	parent *piocore.Port
	bit    int
}

// Register installs the Altera module in L. PIOCore.new calls open.
func Register(L *lua.LState, open Opener) *Binding {
	b := &Binding{
		open:  open,
		ports: map[*piocore.Port]struct{}{},
		bits:  map[bitKey]*piocore.Port{},
	}
	methods := L.SetFuncs(L.NewTable(), b.methods())
	mt := L.NewTypeMetatable(portTypeName)
	L.SetField(mt, "__index", L.NewFunction(func(L *lua.LState) int {
		return b.index(L, methods)
	}))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(checkPort(L, 1).String()))
		return 1
	}))
	cls := L.NewTable()
	L.SetField(cls, "new", L.NewFunction(b.construct))
	mod := L.NewTable()
	L.SetField(mod, "PIOCore", cls)
	L.SetGlobal("Altera", mod)
	return b
}

// Close releases every Port the script didn't release.
func (b *Binding) Close() error {
	var errs []error
	for p := range b.ports {
		if err := p.Release(); err != nil && !errors.Is(err, piocore.ErrReleased) {
			errs = append(errs, err)
		}
	}
	b.ports = map[*piocore.Port]struct{}{}
	b.bits = map[bitKey]*piocore.Port{}
	return errors.Join(errs...)
}

func (b *Binding) methods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"width":    b.width,
		"slice":    b.slice,
		"__msb__":  intProp((*piocore.Port).MSB),
		"__lsb__":  intProp((*piocore.Port).LSB),
		"__base__": b.base,

		"high":       chain((*piocore.Port).High),
		"is_high":    query((*piocore.Port).IsHigh),
		"low":        chain((*piocore.Port).Low),
		"is_low":     query((*piocore.Port).IsLow),
		"set":        chain((*piocore.Port).Set),
		"is_set":     query((*piocore.Port).IsHigh),
		"clear":      chain((*piocore.Port).Clear),
		"is_cleared": query((*piocore.Port).IsLow),
		"toggle":     chain((*piocore.Port).Toggle),

		"assert":      chain((*piocore.Port).Assert),
		"negate":      chain((*piocore.Port).Negate),
		"is_asserted": query((*piocore.Port).IsAsserted),
		"is_negated":  query((*piocore.Port).IsNegated),
		"on":          chain((*piocore.Port).On),
		"is_on":       query((*piocore.Port).IsAsserted),
		"off":         chain((*piocore.Port).Off),
		"is_off":      query((*piocore.Port).IsNegated),

		"enable_output":      chain((*piocore.Port).EnableOutput),
		"is_output_enabled":  query((*piocore.Port).IsOutputEnabled),
		"disable_output":     chain((*piocore.Port).DisableOutput),
		"is_output_disabled": query((*piocore.Port).IsOutputDisabled),

		"active_high":    chain((*piocore.Port).ActiveHigh),
		"is_active_high": query((*piocore.Port).IsActiveHigh),
		"active_low":     chain((*piocore.Port).ActiveLow),
		"is_active_low":  query((*piocore.Port).IsActiveLow),

		"value":     b.value,
		"set_value": b.setValue,
		"release":   b.release,
	}
}

// construct implements PIOCore.new(base, width).
func (b *Binding) construct(L *lua.LState) int {
	base := checkInt(L, 1)
	width := checkInt(L, 2)
	p, err := b.open(uintptr(base), int(width))
	if err != nil {
		L.RaiseError("%s", err)
		return 0
	}
	L.Push(b.wrap(L, p))
	return 1
}

// index resolves p[i] to a single-pin slice and p.name to a method.
func (b *Binding) index(L *lua.LState, methods *lua.LTable) int {
	switch k := L.Get(2).(type) {
	case lua.LNumber:
		b.pushBit(L, checkPort(L, 1), int(checkInt(L, 2)))
	case lua.LString:
		L.Push(methods.RawGetString(string(k)))
	default:
		L.Push(lua.LNil)
	}
	return 1
}

// slice implements p:slice(bit), p:slice(begin, end) and p:slice("b..e").
func (b *Binding) slice(L *lua.LState) int {
	p := checkPort(L, 1)
	var sel piocore.Selector
	switch a := L.Get(2).(type) {
	case lua.LNumber:
		if L.GetTop() >= 3 {
			sel = piocore.Range{Begin: int(checkInt(L, 2)), End: int(checkInt(L, 3))}
		} else {
			b.pushBit(L, p, int(checkInt(L, 2)))
			return 1
		}
	case lua.LString:
		var err error
		if sel, err = piocore.ParseSelector(string(a)); err != nil {
			L.RaiseError("%s", err)
			return 0
		}
	default:
		L.ArgError(2, "bit number, range or selector string expected")
		return 0
	}
	b.pushSlice(L, p, sel)
	return 1
}

func (b *Binding) pushSlice(L *lua.LState, p *piocore.Port, sel piocore.Selector) {
	s, err := p.Slice(sel)
	if err != nil {
		L.RaiseError("%s", err)
		return
	}
	L.Push(b.wrap(L, s))
}

// pushBit pushes the single-pin slice i of p, reusing the one handed out
// before while both are alive.
func (b *Binding) pushBit(L *lua.LState, p *piocore.Port, i int) {
	k := bitKey{parent: p, bit: i}
	if s := b.bits[k]; s != nil && !s.Released() && !p.Released() {
		L.Push(b.Wrap(L, s))
		return
	}
	s, err := p.Slice(piocore.Bit(i))
	if err != nil {
		L.RaiseError("%s", err)
		return
	}
	b.bits[k] = s
	L.Push(b.wrap(L, s))
}

func (b *Binding) base(L *lua.LState) int {
	L.Push(lua.LNumber(checkPort(L, 1).Base()))
	return 1
}

func (b *Binding) width(L *lua.LState) int {
	L.Push(lua.LNumber(checkPort(L, 1).Width()))
	return 1
}

func (b *Binding) value(L *lua.LState) int {
	v, err := checkPort(L, 1).Value()
	if err != nil {
		L.RaiseError("%s", err)
		return 0
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (b *Binding) setValue(L *lua.LState) int {
	p := checkPort(L, 1)
	if err := p.SetValue(int(checkInt(L, 2))); err != nil {
		L.RaiseError("%s", err)
		return 0
	}
	L.Push(L.Get(1))
	return 1
}

func (b *Binding) release(L *lua.LState) int {
	p := checkPort(L, 1)
	if err := p.Release(); err != nil {
		L.RaiseError("%s", err)
		return 0
	}
	delete(b.ports, p)
	for k, s := range b.bits {
		if k.parent == p || s == p {
			delete(b.bits, k)
		}
	}
	return 0
}

// Wrap returns p as a Lua PIOCore value. The caller keeps ownership of p;
// Close doesn't release it.
func (b *Binding) Wrap(L *lua.LState, p *piocore.Port) lua.LValue {
	ud := L.NewUserData()
	ud.Value = p
	L.SetMetatable(ud, L.GetTypeMetatable(portTypeName))
	return ud
}

func (b *Binding) wrap(L *lua.LState, p *piocore.Port) lua.LValue {
	b.ports[p] = struct{}{}
	return b.Wrap(L, p)
}

//

func checkPort(L *lua.LState, n int) *piocore.Port {
	ud := L.CheckUserData(n)
	if p, ok := ud.Value.(*piocore.Port); ok {
		return p
	}
	L.ArgError(n, "PIOCore expected")
	return nil
}

// checkInt returns argument n, raising an error unless it is an integer.
func checkInt(L *lua.LState, n int) int64 {
	v := float64(L.CheckNumber(n))
	if v != math.Trunc(v) {
		L.ArgError(n, "integer expected")
		return 0
	}
	return int64(v)
}

// chain wraps an action; the Lua function returns its receiver.
func chain(f func(*piocore.Port) error) lua.LGFunction {
	return func(L *lua.LState) int {
		if err := f(checkPort(L, 1)); err != nil {
			L.RaiseError("%s", err)
			return 0
		}
		L.Push(L.Get(1))
		return 1
	}
}

func query(f func(*piocore.Port) (bool, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		v, err := f(checkPort(L, 1))
		if err != nil {
			L.RaiseError("%s", err)
			return 0
		}
		L.Push(lua.LBool(v))
		return 1
	}
}

func intProp(f func(*piocore.Port) int) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LNumber(f(checkPort(L, 1))))
		return 1
	}
}
