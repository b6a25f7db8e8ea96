// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package piocore

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// ConfigEnv is the environment variable holding the path of the board
// description loaded by the driver.
const ConfigEnv = "PIOCORE_CONFIG"

// Loaded returns the board built by the driver, or nil if it didn't load.
func Loaded() *Board {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	return drv.board
}

// driver implements driver.Impl.
type driver struct {
	mu    sync.Mutex
	board *Board
	names []string // Registered in gpioreg.
	// configPath and mapper are mocked in tests.
	configPath func() string
	mapper     Mapper
}

func (d *driver) String() string {
	return "piocore"
}

func (d *driver) Prerequisites() []string {
	return nil
}

func (d *driver) After() []string {
	return nil
}

// Init builds the board described by $PIOCORE_CONFIG and registers its pins
// in gpioreg.
//
// Pins are registered as "<core>.<bit>"; single-pin aliases are registered
// as gpioreg aliases. Wider aliases are only reachable through Loaded().
func (d *driver) Init() (bool, error) {
	path := d.configPath()
	if path == "" {
		return false, errors.New("piocore: $" + ConfigEnv + " is not set")
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return true, err
	}
	b, err := cfg.Build(d.mapper)
	if err != nil {
		return true, err
	}
	var names []string
	fail := func(err error) (bool, error) {
		unregister(names)
		_ = b.Release()
		return true, fmt.Errorf("piocore: %w", err)
	}
	for _, p := range b.Pins() {
		if err := gpioreg.Register(p); err != nil {
			return fail(err)
		}
		names = append(names, p.Name())
	}
	for alias, p := range b.Aliases() {
		if p.Width() != 1 {
			continue
		}
		if err := gpioreg.RegisterAlias(alias, p.Name()); err != nil {
			return fail(err)
		}
		names = append(names, alias)
	}
	d.mu.Lock()
	d.board = b
	d.names = names
	d.mu.Unlock()
	return true, nil
}

// reset unregisters and releases what Init loaded.
func (d *driver) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	unregister(d.names)
	if d.board != nil {
		_ = d.board.Release()
	}
	d.board = nil
	d.names = nil
	d.configPath = func() string {
		return os.Getenv(ConfigEnv)
	}
	d.mapper = MapPhysical
}

func unregister(names []string) {
	for _, n := range names {
		_ = gpioreg.Unregister(n)
	}
}

func init() {
	drv.reset()
	driverreg.MustRegister(&drv)
}

var drv driver
