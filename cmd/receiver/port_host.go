//go:build !tinygo && !baremetal

// Host builds use a standalone radio/stub port (no shared Network), same
// as the teacher's constructors_host.go: sent frames are only recorded in
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
