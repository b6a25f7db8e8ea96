// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package piocore

import "fmt"

// High drives every pin of the Port high, regardless of polarity.
func (p *Port) High() error {
	if p.released {
		return p.errReleased()
	}
	p.store(regOutSet, p.mask)
	return nil
}

// Low drives every pin of the Port low, regardless of polarity.
func (p *Port) Low() error {
	if p.released {
		return p.errReleased()
	}
	p.store(regOutClear, p.mask)
	return nil
}

// Set is an alias of High.
func (p *Port) Set() error {
	return p.High()
}

// Clear is an alias of Low.
func (p *Port) Clear() error {
	return p.Low()
}

// IsHigh reports whether the single pin of the Port reads high.
func (p *Port) IsHigh() (bool, error) {
	if err := p.single("high?"); err != nil {
		return false, err
	}
	return p.load(regData)&p.mask == p.mask, nil
}

// IsLow reports whether the single pin of the Port reads low.
func (p *Port) IsLow() (bool, error) {
	if err := p.single("low?"); err != nil {
		return false, err
	}
	return p.load(regData)&p.mask == 0, nil
}

// Toggle inverts every pin of the Port.
//
// Toggle reads the data register, then writes outset and outclear. It is not
// atomic: a write to the same pins by another bus master in between is lost.
func (p *Port) Toggle() error {
	if p.released {
		return p.errReleased()
	}
	cur := p.load(regData) & p.mask
	p.store(regOutSet, cur^p.mask)
	p.store(regOutClear, cur)
	return nil
}

// Assert drives every pin of the Port to its active level.
func (p *Port) Assert() error {
	if p.released {
		return p.errReleased()
	}
	pol := p.d.polarity
	p.store(regOutSet, p.mask&^pol)
	p.store(regOutClear, p.mask&pol)
	return nil
}

// Negate drives every pin of the Port to its inactive level.
func (p *Port) Negate() error {
	if p.released {
		return p.errReleased()
	}
	pol := p.d.polarity
	p.store(regOutSet, p.mask&pol)
	p.store(regOutClear, p.mask&^pol)
	return nil
}

// On is an alias of Assert.
func (p *Port) On() error {
	return p.Assert()
}

// Off is an alias of Negate.
func (p *Port) Off() error {
	return p.Negate()
}

// IsAsserted reports whether the single pin of the Port is at its active
// level.
func (p *Port) IsAsserted() (bool, error) {
	if err := p.single("asserted?"); err != nil {
		return false, err
	}
	return (p.load(regData)^p.d.polarity)&p.mask == p.mask, nil
}

// IsNegated reports whether the single pin of the Port is at its inactive
// level.
func (p *Port) IsNegated() (bool, error) {
	if err := p.single("negated?"); err != nil {
		return false, err
	}
	return (p.load(regData)^p.d.polarity)&p.mask == 0, nil
}

// EnableOutput turns the pins of the Port into outputs.
//
// The direction register has no set/clear companion, so this is a
// read-modify-write of the whole register.
func (p *Port) EnableOutput() error {
	if p.released {
		return p.errReleased()
	}
	p.store(regDirection, p.load(regDirection)|p.mask)
	return nil
}

// DisableOutput turns the pins of the Port into inputs.
func (p *Port) DisableOutput() error {
	if p.released {
		return p.errReleased()
	}
	p.store(regDirection, p.load(regDirection)&^p.mask)
	return nil
}

// IsOutputEnabled reports whether the single pin of the Port is an output.
func (p *Port) IsOutputEnabled() (bool, error) {
	if err := p.single("output_enabled?"); err != nil {
		return false, err
	}
	return p.load(regDirection)&p.mask == p.mask, nil
}

// IsOutputDisabled reports whether the single pin of the Port is an input.
func (p *Port) IsOutputDisabled() (bool, error) {
	if err := p.single("output_disabled?"); err != nil {
		return false, err
	}
	return p.load(regDirection)&p.mask == 0, nil
}

// ActiveHigh marks the pins of the Port as active-high. The polarity is
// shared by every Port of the core.
func (p *Port) ActiveHigh() error {
	if p.released {
		return p.errReleased()
	}
	p.d.polarity &^= p.mask
	return nil
}

// ActiveLow marks the pins of the Port as active-low.
func (p *Port) ActiveLow() error {
	if p.released {
		return p.errReleased()
	}
	p.d.polarity |= p.mask
	return nil
}

// IsActiveHigh reports whether the single pin of the Port is active-high.
func (p *Port) IsActiveHigh() (bool, error) {
	if err := p.single("active_high?"); err != nil {
		return false, err
	}
	return p.d.polarity&p.mask == 0, nil
}

// IsActiveLow reports whether the single pin of the Port is active-low.
func (p *Port) IsActiveLow() (bool, error) {
	if err := p.single("active_low?"); err != nil {
		return false, err
	}
	return p.d.polarity&p.mask == p.mask, nil
}

// Value returns the pins of the Port as an integer, the Port's lowest bit
// being bit 0. Polarity is ignored.
func (p *Port) Value() (int, error) {
	if err := p.fitsInt(); err != nil {
		return 0, err
	}
	return int((p.load(regData) & p.mask) >> p.lsb), nil
}

// SetValue drives the pins of the Port to the bits of v, the Port's lowest
// bit being bit 0. Bits of v beyond the Port's width are ignored.
func (p *Port) SetValue(v int) error {
	if err := p.fitsInt(); err != nil {
		return err
	}
	val := (uint32(v) << p.lsb) & p.mask
	p.store(regOutSet, val)
	p.store(regOutClear, val^p.mask)
	return nil
}

//

// single returns an error unless the Port is usable and one bit wide. op is
// the name of the query in error messages.
func (p *Port) single(op string) error {
	if p.released {
		return p.errReleased()
	}
	if p.msb > p.lsb {
		return fmt.Errorf("piocore: invalid use of %s on %d bits: %w", op, p.Width(), ErrType)
	}
	return nil
}

func (p *Port) fitsInt() error {
	if p.released {
		return p.errReleased()
	}
	if p.Width() > p.d.intBits {
		return fmt.Errorf("piocore: width is too large to treat as int (%d > %d): %w", p.Width(), p.d.intBits, ErrType)
	}
	return nil
}

func (p *Port) load(reg uintptr) uint32 {
	return p.d.bus.Load32(p.d.base + reg)
}

func (p *Port) store(reg uintptr, v uint32) {
	p.d.bus.Store32(p.d.base+reg, v)
}
