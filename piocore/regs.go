// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package piocore

// Register offsets in bytes from the base of the core.
const (
	regData          = 0x00
	regDirection     = 0x04
	regInterruptMask = 0x08 // Unused; interrupts are not supported.
	regEdgeCapture   = 0x0C // Unused; interrupts are not supported.
	regOutSet        = 0x10
	regOutClear      = 0x14
)

// BlockSize is the size in bytes of the register block, reserved words
// included. A core's base address must be a multiple of BlockSize.
const BlockSize = 0x20

// MaxWidth is the widest core supported.
const MaxWidth = 32
