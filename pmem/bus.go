// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pmem

// Bus performs single-word accesses at physical addresses.
//
// Each call is exactly one bus cycle: implementations must never tear, split,
// cache or merge accesses, and must perform them in program order. There is
// no error path; an access to an address the Bus does not decode is a bus
// fault and panics.
type Bus interface {
	// Load32 reads the 32-bit word at addr.
	Load32(addr uintptr) uint32
	// Store32 writes v to the 32-bit word at addr.
	Store32(addr uintptr, v uint32)
}
