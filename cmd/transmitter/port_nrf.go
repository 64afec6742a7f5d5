//go:build tinygo || baremetal

package main

import (
	"encoding/binary"

	"github.com/openpedal/pedallink/radio"
	"github.com/openpedal/pedallink/radio/nrfradio"
	"github.com/openpedal/pedallink/wire"
)

func newPort(mac wire.MAC, channel uint8) radio.Port {
	address := binary.LittleEndian.Uint32(mac[:4])
	return nrfradio.New(address, mac[4], channel)
}
