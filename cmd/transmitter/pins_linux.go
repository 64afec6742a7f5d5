//go:build linux && !tinygo && !baremetal

// A Linux host transmitter build is a bench/dev rig: real pedals wired to
// a Raspberry Pi's GPIO header instead of the embedded target's own pins.
// Grounded on the boiler-sensor example's gpiocdev usage, same as
// gpio/linuxgpio itself.
package main

import (
	"github.com/openpedal/pedallink/gpio"
	"github.com/openpedal/pedallink/gpio/linuxgpio"
	"github.com/openpedal/pedallink/wire"
)

const gpioChip = "gpiochip0"

// Pedal 1 and pedal 2 line offsets, matching PedalReader.cpp's two-pin
// wiring for Dual mode.
const (
	pedal1Offset = 17
	pedal2Offset = 27
)

func newPedalPins(mode wire.PedalMode) (gpio.Pin, gpio.Pin, error) {
	pin1, err := linuxgpio.Open(gpioChip, pedal1Offset)
	if err != nil {
		return nil, nil, err
	}
	if mode != wire.Dual {
		return pin1, nil, nil
	}

	pin2, err := linuxgpio.Open(gpioChip, pedal2Offset)
	if err != nil {
		pin1.Close()
		return nil, nil, err
	}
	return pin1, pin2, nil
}
