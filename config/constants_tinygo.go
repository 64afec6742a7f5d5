//go:build tinygo || baremetal

package config

import "github.com/openpedal/pedallink/wire"

// NodeMAC, Mode, and RadioChannel are compiled-in per build: unlike the
// host binary, firmware has no flag parser, so each node's identity is
// baked in at flash time the same way the original firmware's config.h
// constants were. Swap these before building a given node's image.
var (
	NodeMAC      = [6]byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	Mode         = wire.Single
	RadioChannel = uint8(1)
)

// Resolve returns a Device built from the compiled-in constants above,
// mirroring RegisterFlags' host-side Resolve in shape so cmd/transmitter
// and cmd/receiver share one call site regardless of build target.
func Resolve() Device {
	d := Defaults()
	d.NodeMAC = NodeMAC
	d.PedalMode = uint8(Mode)
	d.Channel = RadioChannel
	return d
}
