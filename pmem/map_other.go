// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux

package pmem

import "errors"

// Map is only supported on Linux.
func Map(base uintptr, size int) (*View, error) {
	return nil, errors.New("pmem: physical memory mapping is not supported on this OS")
}
