// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package piocore

import (
	"fmt"
	"io"
	"math/bits"

	"periph.io/x/altera/v3/pmem"
)

// Opts holds the optional parameters of New and Open.
type Opts struct {
	// Name identifies the core in Port names, e.g. "LED" gives "LED.3" for
	// bit 3. Defaults to "PIO@<base>".
	Name string
	// IntBits is the number of value bits of the integer type used by the
	// caller. Value and SetValue refuse Ports wider than this. Defaults to
	// the bits of a non-negative int.
	IntBits int
	// Closer, if set, is closed once the owner and all its slices are
	// released.
	Closer io.Closer
}

// dev is the state shared by an owner and all of its slices.
type dev struct {
	name     string
	bus      pmem.Bus
	base     uintptr
	refs     int
	polarity uint32 // Bit set means active-low.
	intBits  int
	closer   io.Closer
}

// unref drops one reference and frees the core on the last one.
func (d *dev) unref() error {
	d.refs--
	if d.refs != 0 {
		return nil
	}
	d.bus = nil
	if d.closer == nil {
		return nil
	}
	if err := d.closer.Close(); err != nil {
		return fmt.Errorf("piocore: closing %s: %w", d.name, err)
	}
	return nil
}

// Port is a handle on a contiguous range of bits of a PIO core.
//
// The Port returned by New or Open is the owner; Ports returned by Slice
// share the owner's state.
type Port struct {
	d        *dev
	name     string
	msb      uint8
	lsb      uint8
	mask     uint32
	owner    bool
	released bool
}

// New returns the owning Port of the core whose registers are at base on
// bus. width is the number of pins of the core.
func New(bus pmem.Bus, base uintptr, width int, opts *Opts) (*Port, error) {
	if base&(BlockSize-1) != 0 {
		return nil, fmt.Errorf("piocore: invalid base 0x%x: %w", base, ErrInvalidArgument)
	}
	if width < 1 || width > MaxWidth {
		return nil, fmt.Errorf("piocore: invalid width %d: %w", width, ErrInvalidArgument)
	}
	d := &dev{
		bus:     bus,
		base:    base,
		refs:    1,
		intBits: bits.UintSize - 1,
	}
	if opts != nil {
		d.name = opts.Name
		d.closer = opts.Closer
		if opts.IntBits > 0 {
			d.intBits = opts.IntBits
		}
	}
	if d.name == "" {
		d.name = fmt.Sprintf("PIO@%x", base)
	}
	return &Port{
		d:     d,
		name:  d.name,
		msb:   uint8(width - 1),
		lsb:   0,
		mask:  uint32(uint64(1)<<uint(width) - 1),
		owner: true,
	}, nil
}

// Open maps the core at physical address base through /dev/mem and returns
// its owning Port. The mapping is released with the last Port.
func Open(base uintptr, width int, opts *Opts) (*Port, error) {
	if base&(BlockSize-1) != 0 {
		return nil, fmt.Errorf("piocore: invalid base 0x%x: %w", base, ErrInvalidArgument)
	}
	v, err := pmem.Map(base, BlockSize)
	if err != nil {
		return nil, err
	}
	o := Opts{Closer: v}
	if opts != nil {
		o.Name = opts.Name
		o.IntBits = opts.IntBits
	}
	p, err := New(v, base, width, &o)
	if err != nil {
		_ = v.Close()
		return nil, err
	}
	return p, nil
}

// Slice returns a new Port over the bits chosen by sel.
//
// On an owner, sel is in the core's bit numbering. On a slice, sel is
// relative to the slice's lowest bit, so given s := owner.Slice(Range{4, 7}),
// s.Slice(Range{0, 1}) covers bits 4 and 5 of the core. The result must fit
// within p.
func (p *Port) Slice(sel Selector) (*Port, error) {
	if p.released {
		return nil, p.errReleased()
	}
	lsb, msb := sel.bounds()
	if !p.owner {
		lsb += int(p.lsb)
		msb += int(p.lsb)
	}
	if msb > int(p.msb) || lsb < int(p.lsb) || msb < lsb {
		return nil, fmt.Errorf("piocore: invalid range %s of %s: %w", sel, p, ErrInvalidArgument)
	}
	p.d.refs++
	s := &Port{
		d:    p.d,
		msb:  uint8(msb),
		lsb:  uint8(lsb),
		mask: uint32(uint64(1)<<uint(msb-lsb+1)-1) << uint(lsb),
	}
	if msb == lsb {
		s.name = fmt.Sprintf("%s.%d", p.d.name, lsb)
	} else {
		s.name = fmt.Sprintf("%s.%d..%d", p.d.name, lsb, msb)
	}
	return s, nil
}

// Release gives up the Port.
//
// The core is freed once its owner and every slice have been released,
// whatever the order. Releasing a Port twice returns ErrReleased and has no
// other effect.
func (p *Port) Release() error {
	if p.released {
		return p.errReleased()
	}
	p.released = true
	return p.d.unref()
}

// Width returns the number of bits covered by the Port.
func (p *Port) Width() int {
	return int(p.msb) - int(p.lsb) + 1
}

// MSB returns the core bit number of the Port's highest bit.
func (p *Port) MSB() int {
	return int(p.msb)
}

// LSB returns the core bit number of the Port's lowest bit.
func (p *Port) LSB() int {
	return int(p.lsb)
}

// Base returns the physical address of the core's registers.
func (p *Port) Base() uintptr {
	return p.d.base
}

// Mask returns the core bits covered by the Port.
func (p *Port) Mask() uint32 {
	return p.mask
}

// Released returns true once Release has been called on the Port.
func (p *Port) Released() bool {
	return p.released
}

// IsOwner returns true for the Port returned by New or Open.
func (p *Port) IsOwner() bool {
	return p.owner
}

func (p *Port) errReleased() error {
	return fmt.Errorf("piocore: %s: %w", p.name, ErrReleased)
}
