//go:build !tinygo && !baremetal

// Host builds have no real radio attached; they use a standalone
// radio/stub port (no shared Network), the way the teacher's
// constructors_host.go wires driver/stub into both NewTransmitter and
// NewReceiver for non-embedded testing: sent frames are only recorded in
// the port's TxLog, reach no other node, and nothing is received. A real host deployment
// is out of scope: this system's target is the embedded nRF52 build.
package main

import (
	"github.com/openpedal/pedallink/radio"
	"github.com/openpedal/pedallink/radio/stub"
	"github.com/openpedal/pedallink/wire"
)

func newPort(mac wire.MAC, channel uint8) radio.Port {
	return stub.New(mac, nil)
}
