// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package altera gives access to Altera/Intel FPGA soft peripherals mapped
// into the host's physical address space.
package altera

import (
	"periph.io/x/conn/v3/driver/driverreg"

	// Make sure the PIO core driver is registered.
	_ "periph.io/x/altera/v3/piocore"
)

// Init calls driverreg.Init() and returns it as-is.
//
// The only difference is that by calling altera.Init(), you are guaranteed to
// have all the drivers implemented in this library to be implicitly loaded.
func Init() (*driverreg.State, error) {
	return driverreg.Init()
}
