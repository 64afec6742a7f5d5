// Package slot implements the receiver's slot-accounting rules over a
// txtable.Table. Grounded line-for-line on the original SlotManager.cpp:
// Used only counts transmitters that have confirmed liveness this boot,
// Reserved counts every loaded record whether or not it has answered yet.
package slot

import (
	"github.com/openpedal/pedallink/txtable"
	"github.com/openpedal/pedallink/wire"
)

// Used returns the slot count occupied by transmitters that have responded
// since boot. Matches transmitterManager_calculateSlotsUsed.
func Used(t *txtable.Table) int {
	total := 0
	for _, r := range t.Slots {
		if r.MAC.IsZero() || !r.SeenOnBoot {
			continue
		}
		total += wire.SlotsFor(r.PedalMode)
	}
	return total
}

// Reserved returns the slot count occupied by every loaded record,
// responsive or not. Matches transmitterManager_calculateReservedSlots.
// The grace-period skip is decided by Full (Used), not by Reserved.
func Reserved(t *txtable.Table) int {
	total := 0
	for _, r := range t.Slots {
		if r.MAC.IsZero() {
			continue
		}
		total += wire.SlotsFor(r.PedalMode)
	}
	return total
}

// Available returns txtable.MaxSlots minus Used.
func Available(t *txtable.Table) int {
	return txtable.MaxSlots - Used(t)
}

// Full reports whether Used has reached txtable.MaxSlots.
func Full(t *txtable.Table) bool {
	return Used(t) >= txtable.MaxSlots
}

// CanFitNew reports whether a brand-new transmitter needing slotsNeeded
// slots can be admitted. Matches slotManager_canFitNewTransmitter.
func CanFitNew(t *txtable.Table, slotsNeeded int) bool {
	return Used(t)+slotsNeeded <= txtable.MaxSlots
}

// Result mirrors SlotAvailabilityResult: whether the operation fits, and
// the slot counts before/after it would take effect.
type Result struct {
	CanFit          bool
	CurrentUsed     int
	SlotsNeeded     int
	SlotsAfterApply int
}

// CheckModeChange evaluates switching the transmitter at idx to a pedal
// mode needing newSlotsNeeded slots. Matches slotManager_checkModeChange.
func CheckModeChange(t *txtable.Table, idx int, newSlotsNeeded int) Result {
	result := Result{SlotsNeeded: newSlotsNeeded}
	if idx < 0 || idx >= txtable.MaxSlots {
		return result
	}

	result.CurrentUsed = Used(t)
	oldSlotsNeeded := wire.SlotsFor(t.Slots[idx].PedalMode)

	if newSlotsNeeded == oldSlotsNeeded {
		result.CanFit = true
		result.SlotsAfterApply = result.CurrentUsed
		return result
	}

	result.SlotsAfterApply = result.CurrentUsed - oldSlotsNeeded + newSlotsNeeded
	result.CanFit = result.SlotsAfterApply <= txtable.MaxSlots
	return result
}

// CheckReconnection evaluates a previously-loaded, not-yet-responsive
// transmitter at idx confirming liveness. Matches
// slotManager_checkReconnection: an already-responsive transmitter always
// fits since it already counts toward Used.
func CheckReconnection(t *txtable.Table, idx int, slotsNeeded int) Result {
	result := Result{SlotsNeeded: slotsNeeded}
	if idx < 0 || idx >= txtable.MaxSlots {
		return result
	}

	wasResponsive := t.Slots[idx].SeenOnBoot
	result.CurrentUsed = Used(t)

	if wasResponsive {
		result.CanFit = true
		result.SlotsAfterApply = result.CurrentUsed
		return result
	}

	result.SlotsAfterApply = result.CurrentUsed + slotsNeeded
	result.CanFit = result.SlotsAfterApply <= txtable.MaxSlots
	return result
}
