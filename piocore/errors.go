// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package piocore

import "errors"

var (
	// ErrInvalidArgument is returned for a misaligned base, a width outside
	// 1..MaxWidth and a bit range that doesn't fit its parent.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrType is returned when an operation doesn't apply to the Port's
	// width: a single-pin query on a multi-bit Port, or a value wider than the
	// host integer.
	ErrType = errors.New("type error")
	// ErrReleased is returned when a Port is used after Release.
	ErrReleased = errors.New("port released")
)
