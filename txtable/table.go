// Package txtable holds the receiver's fixed-size transmitter table.
// Grounded on the original TransmitterManager.h/.cpp: a small fixed array
// of slots, lowest-empty-slot-first insertion, and no shifting on removal
// so a slot's index (and therefore its assigned key) stays stable for the
// lifetime of the bond.
package txtable

import "github.com/openpedal/pedallink/wire"

// MaxSlots is MAX_PEDAL_SLOTS from the original firmware: a receiver pairs
// with at most two single-pedal transmitters, or one dual-pedal one.
const MaxSlots = 2

// Record is one occupied or empty transmitter slot.
type Record struct {
	MAC        wire.MAC
	PedalMode  wire.PedalMode
	SeenOnBoot bool // confirmed alive since the receiver last started
	LastSeen   int64
}

func (r Record) empty() bool {
	return r.MAC.IsZero()
}

// Table is the receiver's slot array.
type Table struct {
	Slots [MaxSlots]Record
}

// Find returns the slot index holding mac, or -1 if not present.
func (t *Table) Find(mac wire.MAC) int {
	for i, r := range t.Slots {
		if !r.empty() && r.MAC == mac {
			return i
		}
	}
	return -1
}

// FirstEmpty returns the lowest-indexed empty slot, or -1 if the table is full.
func (t *Table) FirstEmpty() int {
	for i, r := range t.Slots {
		if r.empty() {
			return i
		}
	}
	return -1
}

// Insert places mac into the lowest-indexed empty slot and returns it, or
// -1 if no slot is free. Matches transmitterManager_add's scan order.
func (t *Table) Insert(mac wire.MAC, mode wire.PedalMode, lastSeen int64) int {
	idx := t.FirstEmpty()
	if idx < 0 {
		return -1
	}
	t.Slots[idx] = Record{MAC: mac, PedalMode: mode, SeenOnBoot: true, LastSeen: lastSeen}
	return idx
}

// Remove clears the slot at idx without shifting any other slot, so
// remaining slots keep their assigned key (§4.5 AssignedKey).
func (t *Table) Remove(idx int) {
	if idx < 0 || idx >= MaxSlots {
		return
	}
	t.Slots[idx] = Record{}
}

// RemoveMAC is Remove by address; a no-op if mac is not present.
func (t *Table) RemoveMAC(mac wire.MAC) {
	if idx := t.Find(mac); idx >= 0 {
		t.Remove(idx)
	}
}

// MarkSeen records that the transmitter at idx has confirmed liveness.
func (t *Table) MarkSeen(idx int, lastSeen int64) {
	if idx < 0 || idx >= MaxSlots {
		return
	}
	t.Slots[idx].SeenOnBoot = true
	t.Slots[idx].LastSeen = lastSeen
}

// AssignedKey returns the keyboard key this slot reports pedal presses as:
// slot 0 is the left pedal, any other occupied slot is the right pedal.
// Matches transmitterManager_getAssignedKey.
func AssignedKey(idx int) byte {
	if idx == 0 {
		return 'l'
	}
	return 'r'
}

// Occupied reports whether idx holds a record at all (seen or not yet
// confirmed this boot).
func (t *Table) Occupied(idx int) bool {
	if idx < 0 || idx >= MaxSlots {
		return false
	}
	return !t.Slots[idx].empty()
}
