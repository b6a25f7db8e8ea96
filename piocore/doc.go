// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package piocore drives the Altera/Intel Avalon PIO core through its
// memory-mapped registers.
//
// A core is opened once with New or Open, which returns the owning Port.
// Any Port can be sliced into narrower Ports covering a bit range of the same
// core; all of them share the register block and the per-pin polarity kept
// by the owner. The core's resources are freed when the owner and every
// slice derived from it have been released.
//
// Setting and clearing outputs goes through the core's outset and outclear
// registers, so Ports over disjoint bits never race on the data register.
// The core must be generated with "Enable individual bit setting/clearing"
// turned on.
//
// Ports are not safe for concurrent use. Callers sharing a core across
// goroutines must serialize access themselves.
//
// # Datasheet
//
// https://www.intel.com/content/www/us/en/docs/programmable/683130/current/pio-core.html
package piocore
