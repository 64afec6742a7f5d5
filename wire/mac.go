// Package wire implements the on-air frame format shared by every pedallink
// node: node addresses, the nine message kinds, and their encode/decode.
package wire

import "fmt"

// MAC is a 6-byte node address (§3 "Node address").
type MAC [6]byte

// Broadcast is the distinguished all-ones address.
var Broadcast = MAC{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// Zero is the empty/unassigned address.
var Zero = MAC{}

// Valid reports whether m is neither all-zero nor the broadcast address.
func (m MAC) Valid() bool {
	return m != Zero && m != Broadcast
}

// IsZero reports whether m is the all-zero address.
func (m MAC) IsZero() bool {
	return m == Zero
}

func (m MAC) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", m[0], m[1], m[2], m[3], m[4], m[5])
}

// PedalMode selects how many slots a transmitter costs and which keys it exposes.
type PedalMode uint8

const (
	// Dual consumes 2 pedal slots and exposes keys '1' and '2'.
	Dual PedalMode = 0
	// Single consumes 1 pedal slot and exposes only key '1'.
	Single PedalMode = 1
)

// SlotsFor returns the slot cost of a pedal mode.
func SlotsFor(m PedalMode) int {
	if m == Dual {
		return 2
	}
	return 1
}

func (m PedalMode) String() string {
	if m == Dual {
		return "dual"
	}
	return "single"
}
