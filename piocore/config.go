// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package piocore

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
	"periph.io/x/altera/v3/pmem"
)

// Config describes the PIO cores of a board.
//
// Example:
//
//	cores:
//	  - name: LED
//	    base: 0x10000000
//	    width: 8
//	    active_low: 0x0f
//	    output: 0xff
//	    aliases:
//	      STATUS: "0"
//	      NIBBLE: "4..7"
type Config struct {
	Cores []CoreConfig `yaml:"cores"`
}

// CoreConfig describes one PIO core.
type CoreConfig struct {
	Name  string `yaml:"name"`
	Base  uint64 `yaml:"base"`
	Width int    `yaml:"width"`
	// ActiveLow is the initial polarity; a set bit makes the pin active-low.
	ActiveLow uint32 `yaml:"active_low"`
	// Output lists the pins turned into outputs when the board is built.
	Output uint32 `yaml:"output"`
	// Aliases names slices of the core, as a selector accepted by
	// ParseSelector.
	Aliases map[string]string `yaml:"aliases"`
}

// LoadConfig decodes and validates a YAML board description.
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	c := &Config{}
	if err := dec.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("piocore: config: empty document: %w", ErrInvalidArgument)
		}
		return nil, fmt.Errorf("piocore: config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadConfigFile reads the board description at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("piocore: config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate checks everything that can be checked without touching hardware.
func (c *Config) Validate() error {
	names := map[string]bool{}
	claim := func(name string) error {
		if name == "" {
			return fmt.Errorf("piocore: config: empty name: %w", ErrInvalidArgument)
		}
		if names[name] {
			return fmt.Errorf("piocore: config: duplicate name %q: %w", name, ErrInvalidArgument)
		}
		names[name] = true
		return nil
	}
	for i := range c.Cores {
		core := &c.Cores[i]
		if err := claim(core.Name); err != nil {
			return err
		}
		if core.Base > math.MaxUint {
			return fmt.Errorf("piocore: config: %s: base 0x%x is out of the address space: %w", core.Name, core.Base, ErrInvalidArgument)
		}
		if core.Base&(BlockSize-1) != 0 {
			return fmt.Errorf("piocore: config: %s: invalid base 0x%x: %w", core.Name, core.Base, ErrInvalidArgument)
		}
		if core.Width < 1 || core.Width > MaxWidth {
			return fmt.Errorf("piocore: config: %s: invalid width %d: %w", core.Name, core.Width, ErrInvalidArgument)
		}
		mask := uint32(uint64(1)<<uint(core.Width) - 1)
		if core.ActiveLow&^mask != 0 || core.Output&^mask != 0 {
			return fmt.Errorf("piocore: config: %s: bits beyond width %d: %w", core.Name, core.Width, ErrInvalidArgument)
		}
		// Pins are named after their core, aliases can't shadow them.
		for i := 0; i < core.Width; i++ {
			if err := claim(fmt.Sprintf("%s.%d", core.Name, i)); err != nil {
				return err
			}
		}
		for _, alias := range sortedKeys(core.Aliases) {
			if err := claim(alias); err != nil {
				return err
			}
			if _, err := ParseSelector(core.Aliases[alias]); err != nil {
				return fmt.Errorf("piocore: config: %s: alias %s: %w", core.Name, alias, err)
			}
		}
	}
	return nil
}

// Mapper gives access to the register block of size bytes at base. The
// returned io.Closer, if not nil, is closed when the core is freed.
type Mapper func(base uintptr, size int) (pmem.Bus, io.Closer, error)

// MapPhysical is the Mapper going through /dev/mem.
func MapPhysical(base uintptr, size int) (pmem.Bus, io.Closer, error) {
	v, err := pmem.Map(base, size)
	if err != nil {
		return nil, nil, err
	}
	return v, v, nil
}

// Build opens every core of the board through m.
//
// Each core gets one Port per pin, named "<core>.<bit>", and one Port per
// alias.
func (c *Config) Build(m Mapper) (*Board, error) {
	b := &Board{ports: map[string]*Port{}, aliases: map[string]*Port{}}
	for i := range c.Cores {
		if err := b.add(&c.Cores[i], m); err != nil {
			_ = b.Release()
			return nil, err
		}
	}
	return b, nil
}

// Board is the set of Ports built from a Config.
type Board struct {
	cores   []*Port
	pins    []*Port
	ports   map[string]*Port
	aliases map[string]*Port
}

// Cores returns the owning Port of every core, in configuration order.
func (b *Board) Cores() []*Port {
	return b.cores
}

// Pins returns the single-pin Ports of every core.
func (b *Board) Pins() []*Port {
	return b.pins
}

// Aliases returns the aliased Ports by alias name.
func (b *Board) Aliases() map[string]*Port {
	return b.aliases
}

// ByName returns the core, pin or alias with this name, or nil.
func (b *Board) ByName(name string) *Port {
	if p := b.ports[name]; p != nil {
		return p
	}
	return b.aliases[name]
}

// Names returns the name of every core, pin and alias, sorted.
func (b *Board) Names() []string {
	out := make([]string, 0, len(b.ports)+len(b.aliases))
	for n := range b.ports {
		out = append(out, n)
	}
	for n := range b.aliases {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Release releases every Port of the board that wasn't released already.
func (b *Board) Release() error {
	var errs []error
	release := func(p *Port) {
		if err := p.Release(); err != nil && !errors.Is(err, ErrReleased) {
			errs = append(errs, err)
		}
	}
	for _, p := range b.aliases {
		release(p)
	}
	for _, p := range b.pins {
		release(p)
	}
	for _, p := range b.cores {
		release(p)
	}
	b.cores = nil
	b.pins = nil
	b.ports = map[string]*Port{}
	b.aliases = map[string]*Port{}
	return errors.Join(errs...)
}

func (b *Board) add(core *CoreConfig, m Mapper) error {
	bus, closer, err := m(uintptr(core.Base), BlockSize)
	if err != nil {
		return fmt.Errorf("piocore: %s: %w", core.Name, err)
	}
	p, err := New(bus, uintptr(core.Base), core.Width, &Opts{Name: core.Name, Closer: closer})
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return err
	}
	b.cores = append(b.cores, p)
	b.ports[p.Name()] = p
	p.d.polarity = core.ActiveLow
	if core.Output != 0 {
		p.store(regDirection, p.load(regDirection)|core.Output)
	}
	for i := 0; i < core.Width; i++ {
		s, err := p.Slice(Bit(i))
		if err != nil {
			return err
		}
		b.pins = append(b.pins, s)
		b.ports[s.Name()] = s
	}
	for _, alias := range sortedKeys(core.Aliases) {
		sel, err := ParseSelector(core.Aliases[alias])
		if err != nil {
			return err
		}
		s, err := p.Slice(sel)
		if err != nil {
			return fmt.Errorf("piocore: %s: alias %s: %w", core.Name, alias, err)
		}
		b.aliases[alias] = s
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
