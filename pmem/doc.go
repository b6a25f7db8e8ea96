// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pmem provides 32-bit access to memory-mapped I/O registers.
//
// Register users depend on the Bus interface so they can run against the
// physical address space through a View, or against a simulated register
// block in tests.
//
// Mapping physical memory requires access to /dev/mem; this means running as
// root or with CAP_SYS_RAWIO on Linux.
package pmem
