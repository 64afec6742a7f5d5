// Package radio defines the contract the pairing protocol requires from the
// underlying radio hardware (§4.2), and provides a host-side stub backing
// used by every test in this module. The real nRF-backed implementation
// lives in radio/nrfradio and is only built with the tinygo/baremetal tag.
package radio

// RecvFunc is invoked once per received frame. It runs in radio context
// (§4.2): implementations MUST NOT call Send synchronously from within it.
type RecvFunc func(sender [6]byte, data []byte, channelHint uint8)

// Port is the radio port contract exposed to the pairing core.
type Port interface {
	// Init opens the radio in a mode that permits broadcast and directed
	// unicast on a single fixed channel.
	Init() error

	// RegisterPeer makes mac a valid unicast destination on channel.
	// Idempotent: registering an already-known peer is success.
	RegisterPeer(mac [6]byte, channel uint8) error

	// Send enqueues data for transmission to mac. The returned bool
	// reports whether enqueueing succeeded; it is not a delivery guarantee.
	Send(mac [6]byte, data []byte) bool

	// Broadcast is shorthand for Send to the broadcast address.
	Broadcast(data []byte) bool

	// OnRecv registers the single callback invoked per received frame.
	OnRecv(cb RecvFunc)
}
