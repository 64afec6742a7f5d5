// Package config is the single Device configuration struct the node
// entrypoints (cmd/transmitter, cmd/receiver) build and
// passes down into the pairing/radio/persistence layers. Grounded on the
// original firmware's config.h constants (§4.6/§4.7's four timers, the
// pedal pin assignment, MAX_PEDAL_SLOTS) and on librescoot-ecu-service's
// Options struct for how a Go service collects that kind of thing.
package config

import "time"

// Device holds every tunable the pairing/radio stack needs, independent
// of how a given build (host flags vs TinyGo-embedded constants) supplies
// the values.
type Device struct {
	// NodeMAC is this device's own radio address.
	NodeMAC [6]byte

	// PedalMode selects Single or Dual pedal operation (§3).
	PedalMode uint8

	// Channel is the fixed radio channel this node operates on.
	Channel uint8

	// InitialPingWait, GracePeriod, BeaconInterval, AliveResponseTimeout,
	// and DiscoveryResponseWait mirror §4.6/§4.7's named timers.
	InitialPingWait       time.Duration
	GracePeriod           time.Duration
	BeaconInterval        time.Duration
	AliveResponseTimeout  time.Duration
	DiscoveryResponseWait time.Duration

	// InactivityTimeout is how long a transmitter waits with no pedal or
	// radio activity before a power-management layer should put it to
	// sleep. Out of scope to enforce here (see package sleep); carried
	// only as the configured value.
	InactivityTimeout time.Duration

	// BondStorePath is the host filestore.Store's backing file path.
	BondStorePath string
}

// Default timer values, in milliseconds in the original firmware and
// converted here to time.Duration at the package boundary so every
// consumer works in time.Duration rather than raw integer milliseconds.
const (
	DefaultInitialPingWait       = 1000 * time.Millisecond
	DefaultGracePeriod           = 30000 * time.Millisecond
	DefaultBeaconInterval        = 2000 * time.Millisecond
	DefaultAliveResponseTimeout  = 2000 * time.Millisecond
	DefaultDiscoveryResponseWait = 5000 * time.Millisecond
	DefaultInactivityTimeout     = 5 * time.Minute
)

// Defaults returns a Device populated with every protocol timer at its
// spec-mandated default; callers still need to fill in NodeMAC,
// PedalMode, Channel, and BondStorePath.
func Defaults() Device {
	return Device{
		InitialPingWait:       DefaultInitialPingWait,
		GracePeriod:           DefaultGracePeriod,
		BeaconInterval:        DefaultBeaconInterval,
		AliveResponseTimeout:  DefaultAliveResponseTimeout,
		DiscoveryResponseWait: DefaultDiscoveryResponseWait,
		InactivityTimeout:     DefaultInactivityTimeout,
	}
}
