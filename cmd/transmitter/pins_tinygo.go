//go:build tinygo || baremetal

package main

import (
	"machine"

	"github.com/openpedal/pedallink/gpio"
	"github.com/openpedal/pedallink/gpio/tinygpio"
	"github.com/openpedal/pedallink/wire"
)

// Pedal 1 and pedal 2 input pins, matching PedalReader.cpp's board wiring.
const (
	pedal1Pin = machine.Pin(2)
	pedal2Pin = machine.Pin(3)
)

func newPedalPins(mode wire.PedalMode) (gpio.Pin, gpio.Pin, error) {
	pin1 := tinygpio.Open(pedal1Pin)
	if mode != wire.Dual {
		return pin1, nil, nil
	}
	return pin1, tinygpio.Open(pedal2Pin), nil
}
