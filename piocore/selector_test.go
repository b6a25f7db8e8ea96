// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package piocore

import (
	"errors"
	"testing"
)

func TestParseSelector(t *testing.T) {
	data := []struct {
		in   string
		want Selector
	}{
		{"3", Bit(3)},
		{" 12 ", Bit(12)},
		{"2..5", Range{2, 5}},
		{"4 .. 7", Range{4, 7}},
		{"0...4", ExclusiveRange{0, 4}},
	}
	for _, line := range data {
		got, err := ParseSelector(line.in)
		if err != nil {
			t.Errorf("ParseSelector(%q) = %v", line.in, err)
			continue
		}
		if got != line.want {
			t.Errorf("ParseSelector(%q) = %#v, want %#v", line.in, got, line.want)
		}
		if s := got.String(); s == "" {
			t.Errorf("%#v.String() is empty", got)
		}
	}
}

func TestParseSelector_Invalid(t *testing.T) {
	for _, in := range []string{"", "a", "1..", "..2", "1..b", "x...3"} {
		if _, err := ParseSelector(in); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseSelector(%q) = %v", in, err)
		}
	}
}

func TestSelector_String(t *testing.T) {
	if s := (Range{2, 5}).String(); s != "2..5" {
		t.Error(s)
	}
	if s := (ExclusiveRange{2, 5}).String(); s != "2...5" {
		t.Error(s)
	}
	if s := Bit(7).String(); s != "7" {
		t.Error(s)
	}
}

func TestExclusiveRange_AlwaysFails(t *testing.T) {
	p, _ := newTestPort(t, 32)
	for _, sel := range []Selector{ExclusiveRange{0, 32}, ExclusiveRange{0, 1}, ExclusiveRange{3, 5}} {
		if _, err := p.Slice(sel); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Slice(%s) = %v", sel, err)
		}
	}
	s := mustSlice(t, p, Range{8, 15})
	if _, err := s.Slice(ExclusiveRange{0, 4}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Slice() = %v", err)
	}
}
