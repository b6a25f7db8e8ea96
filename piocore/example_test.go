// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package piocore_test

import (
	"fmt"
	"log"

	"periph.io/x/altera/v3/piocore"
	"periph.io/x/altera/v3/piocore/piocoretest"
)

func Example() {
	// On hardware, use piocore.Open(0xff200000, 8, nil) instead.
	bus := &piocoretest.Fake{Base: 0xff200000}
	leds, err := piocore.New(bus, 0xff200000, 8, &piocore.Opts{Name: "LED"})
	if err != nil {
		log.Fatal(err)
	}
	defer leds.Release()

	if err := leds.EnableOutput(); err != nil {
		log.Fatal(err)
	}
	// The upper nibble drives active-low LEDs.
	upper, err := leds.Slice(piocore.Range{Begin: 4, End: 7})
	if err != nil {
		log.Fatal(err)
	}
	defer upper.Release()
	if err := upper.ActiveLow(); err != nil {
		log.Fatal(err)
	}
	if err := leds.Assert(); err != nil {
		log.Fatal(err)
	}
	v, err := leds.Value()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("0x%02x\n", v)

	// Slices of slices are relative to their parent.
	led5, err := upper.Slice(piocore.Bit(1))
	if err != nil {
		log.Fatal(err)
	}
	defer led5.Release()
	fmt.Println(led5, led5.Number())
	// Output:
	// 0x0f
	// LED.5 5
}
