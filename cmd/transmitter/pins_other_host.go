//go:build !linux && !tinygo && !baremetal

// Non-Linux host builds (e.g. a developer's macOS/Windows machine running
// `go build` purely to exercise the pairing state machine against
// radio/stub) have no pedal GPIO backend available.
package main

import (
	"errors"

	"github.com/openpedal/pedallink/gpio"
	"github.com/openpedal/pedallink/wire"
)

func newPedalPins(mode wire.PedalMode) (gpio.Pin, gpio.Pin, error) {
	return nil, nil, errors.New("no pedal GPIO backend on this platform; build for linux or tinygo")
}
