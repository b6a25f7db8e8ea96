// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package piocore

import (
	"errors"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// String implements conn.Resource.
func (p *Port) String() string {
	return p.name
}

// Halt implements conn.Resource.
//
// There is nothing running in the background to stop.
func (p *Port) Halt() error {
	return nil
}

// Name implements pin.Pin.
func (p *Port) Name() string {
	return p.name
}

// Number implements pin.Pin. It is the core bit number of the Port's lowest
// bit.
func (p *Port) Number() int {
	return int(p.lsb)
}

// Function implements pin.Pin.
//
// Deprecated: Use PinFunc.Func. Will be removed in v4.
func (p *Port) Function() string {
	return string(p.Func())
}

// Func implements pin.PinFunc.
func (p *Port) Func() pin.Func {
	out, err := p.IsOutputEnabled()
	if err != nil {
		return pin.FuncNone
	}
	// IsOutputEnabled succeeded, so the Port is live and one bit wide and
	// IsHigh can't fail.
	high, _ := p.IsHigh()
	if out {
		if high {
			return gpio.OUT_HIGH
		}
		return gpio.OUT_LOW
	}
	if high {
		return gpio.IN_HIGH
	}
	return gpio.IN_LOW
}

// SupportedFuncs implements pin.PinFunc.
func (p *Port) SupportedFuncs() []pin.Func {
	return []pin.Func{gpio.IN, gpio.OUT}
}

// SetFunc implements pin.PinFunc.
func (p *Port) SetFunc(f pin.Func) error {
	switch f {
	case gpio.IN:
		return p.In(gpio.PullNoChange, gpio.NoEdge)
	case gpio.OUT_HIGH:
		return p.Out(gpio.High)
	case gpio.OUT, gpio.OUT_LOW:
		return p.Out(gpio.Low)
	default:
		return errors.New("piocore: unsupported function")
	}
}

// In implements gpio.PinIn.
//
// The core has no pull resistors and edge detection is not supported.
func (p *Port) In(pull gpio.Pull, edge gpio.Edge) error {
	if pull != gpio.PullNoChange && pull != gpio.Float {
		return errors.New("piocore: pull is not supported")
	}
	if edge != gpio.NoEdge {
		return errors.New("piocore: edge detection is not supported")
	}
	return p.DisableOutput()
}

// Read implements gpio.PinIn.
//
// Polarity is ignored. Read returns gpio.Low on a multi-bit Port.
func (p *Port) Read() gpio.Level {
	high, err := p.IsHigh()
	if err != nil {
		log.Printf("piocore: %s.Read(): %v", p, err)
		return gpio.Low
	}
	return gpio.Level(high)
}

// WaitForEdge implements gpio.PinIn. It always returns false.
func (p *Port) WaitForEdge(timeout time.Duration) bool {
	return false
}

// Pull implements gpio.PinIn.
func (p *Port) Pull() gpio.Pull {
	return gpio.PullNoChange
}

// DefaultPull implements gpio.PinIn.
func (p *Port) DefaultPull() gpio.Pull {
	return gpio.PullNoChange
}

// Out implements gpio.PinOut.
//
// It latches l on every pin of the Port before enabling the outputs, so the
// pins never drive a stale level.
func (p *Port) Out(l gpio.Level) error {
	var err error
	if l == gpio.High {
		err = p.High()
	} else {
		err = p.Low()
	}
	if err != nil {
		return err
	}
	return p.EnableOutput()
}

// PWM implements gpio.PinOut.
func (p *Port) PWM(gpio.Duty, physic.Frequency) error {
	return errors.New("piocore: pwm is not supported")
}

var _ gpio.PinIO = &Port{}
var _ pin.PinFunc = &Port{}
