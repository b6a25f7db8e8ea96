// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package piocore

import (
	"fmt"
	"strconv"
	"strings"
)

// Selector chooses the bits of a slice. It is one of Bit, Range or
// ExclusiveRange.
type Selector interface {
	// bounds returns the requested lsb and msb, before any offset is applied.
	bounds() (lsb, msb int)
	String() string
}

// Bit selects a single bit.
type Bit int

func (b Bit) bounds() (int, int) {
	return int(b), int(b)
}

func (b Bit) String() string {
	return strconv.Itoa(int(b))
}

// Range selects the bits Begin through End, both included.
type Range struct {
	Begin int
	End   int
}

func (r Range) bounds() (int, int) {
	return r.Begin, r.End
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Begin, r.End)
}

// ExclusiveRange is a range whose end is excluded.
//
// It has no valid lower bound, so deriving a slice with it always fails.
type ExclusiveRange struct {
	Begin int
	End   int
}

func (r ExclusiveRange) bounds() (int, int) {
	return -1, r.End - 1
}

func (r ExclusiveRange) String() string {
	return fmt.Sprintf("%d...%d", r.Begin, r.End)
}

// ParseSelector parses "3", "2..5" (inclusive) or "2...5" (exclusive).
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if lhs, rhs, ok := strings.Cut(s, "..."); ok {
		b, e, err := parseBounds(lhs, rhs)
		if err != nil {
			return nil, fmt.Errorf("piocore: invalid selector %q: %w", s, err)
		}
		return ExclusiveRange{Begin: b, End: e}, nil
	}
	if lhs, rhs, ok := strings.Cut(s, ".."); ok {
		b, e, err := parseBounds(lhs, rhs)
		if err != nil {
			return nil, fmt.Errorf("piocore: invalid selector %q: %w", s, err)
		}
		return Range{Begin: b, End: e}, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("piocore: invalid selector %q: %w", s, ErrInvalidArgument)
	}
	return Bit(i), nil
}

func parseBounds(lhs, rhs string) (int, int, error) {
	b, err := strconv.Atoi(strings.TrimSpace(lhs))
	if err != nil {
		return 0, 0, ErrInvalidArgument
	}
	e, err := strconv.Atoi(strings.TrimSpace(rhs))
	if err != nil {
		return 0, 0, ErrInvalidArgument
	}
	return b, e, nil
}
