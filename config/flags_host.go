//go:build !tinygo && !baremetal

package config

import (
	"flag"
	"fmt"

	"github.com/openpedal/pedallink/wire"
)

// RegisterFlags binds a Device's fields onto the standard flag.FlagSet,
// the same way librescoot-ecu-service's main.go wires -log/-redis_server
// onto its Options struct. Call flag.Parse() after RegisterFlags and then
// the function it returns to get back a validated Device.
func RegisterFlags() func() (Device, error) {
	mac := flag.String("mac", "", "this node's radio MAC address, as aa:bb:cc:dd:ee:ff")
	mode := flag.String("pedal_mode", "single", "pedal mode: single or dual")
	channel := flag.Uint("channel", 1, "radio channel")
	bondPath := flag.String("bond_store", "pedallink-bonds.gob", "path to the bond store file")
	inactivity := flag.Duration("inactivity_timeout", DefaultInactivityTimeout, "idle time before a transmitter may sleep")

	return func() (Device, error) {
		d := Defaults()

		parsedMAC, err := parseMAC(*mac)
		if err != nil {
			return d, fmt.Errorf("config: %w", err)
		}
		d.NodeMAC = parsedMAC

		switch *mode {
		case "single":
			d.PedalMode = uint8(wire.Single)
		case "dual":
			d.PedalMode = uint8(wire.Dual)
		default:
			return d, fmt.Errorf("config: invalid pedal_mode %q (must be single or dual)", *mode)
		}

		if *channel == 0 || *channel > 127 {
			return d, fmt.Errorf("config: channel %d out of range", *channel)
		}
		d.Channel = uint8(*channel)
		d.BondStorePath = *bondPath
		d.InactivityTimeout = *inactivity

		return d, nil
	}
}

func parseMAC(s string) ([6]byte, error) {
	var mac [6]byte
	if s == "" {
		return mac, nil
	}
	n, err := fmt.Sscanf(s, "%02x:%02x:%02x:%02x:%02x:%02x",
		&mac[0], &mac[1], &mac[2], &mac[3], &mac[4], &mac[5])
	if err != nil || n != 6 {
		return mac, fmt.Errorf("malformed MAC %q", s)
	}
	return mac, nil
}
