//go:build tinygo || baremetal

// Package tinygpio backs gpio.Pin with TinyGo's machine package, for the
// embedded nRF52 target. Grounded on PedalReader.cpp's pinMode(pin,
// INPUT_PULLUP) configuration.
package tinygpio

import "machine"

// Pin is a gpio.Pin backed directly by a machine.Pin.
type Pin struct {
	pin machine.Pin
}

// Open configures p as an input with a pull-up.
func Open(p machine.Pin) *Pin {
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &Pin{pin: p}
}

func (p *Pin) Read() (bool, error) {
	return p.pin.Get(), nil
}

func (p *Pin) Close() error {
	return nil
}
