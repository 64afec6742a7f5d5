package slot

import (
	"testing"

	"github.com/openpedal/pedallink/txtable"
	"github.com/openpedal/pedallink/wire"
)

func mac(b byte) wire.MAC { return wire.MAC{1, 2, 3, 4, 5, b} }

func TestUsedIgnoresUnresponsiveRecords(t *testing.T) {
	var tbl txtable.Table
	tbl.Slots[0] = txtable.Record{MAC: mac(1), PedalMode: wire.Single, SeenOnBoot: false}
	tbl.Slots[1] = txtable.Record{MAC: mac(2), PedalMode: wire.Single, SeenOnBoot: true}

	if got := Used(&tbl); got != 1 {
		t.Fatalf("Used = %d, want 1", got)
	}
	if got := Reserved(&tbl); got != 2 {
		t.Fatalf("Reserved = %d, want 2", got)
	}
}

func TestCanFitNewDualNeedsBothSlots(t *testing.T) {
	var tbl txtable.Table
	tbl.Slots[0] = txtable.Record{MAC: mac(1), PedalMode: wire.Single, SeenOnBoot: true}

	if CanFitNew(&tbl, wire.SlotsFor(wire.Dual)) {
		t.Fatal("dual transmitter should not fit with one slot already used")
	}
	if !CanFitNew(&tbl, wire.SlotsFor(wire.Single)) {
		t.Fatal("single transmitter should fit with one slot free")
	}
}

func TestCheckModeChangeNoOpWhenSameSlotCount(t *testing.T) {
	var tbl txtable.Table
	tbl.Slots[0] = txtable.Record{MAC: mac(1), PedalMode: wire.Single, SeenOnBoot: true}

	result := CheckModeChange(&tbl, 0, wire.SlotsFor(wire.Single))
	if !result.CanFit || result.SlotsAfterApply != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCheckModeChangeRejectsWhenNoRoom(t *testing.T) {
	var tbl txtable.Table
	tbl.Slots[0] = txtable.Record{MAC: mac(1), PedalMode: wire.Single, SeenOnBoot: true}
	tbl.Slots[1] = txtable.Record{MAC: mac(2), PedalMode: wire.Single, SeenOnBoot: true}

	result := CheckModeChange(&tbl, 0, wire.SlotsFor(wire.Dual))
	if result.CanFit {
		t.Fatalf("mode change to dual should not fit when both slots are in use: %+v", result)
	}
}

func TestCheckReconnectionAlreadyResponsiveAlwaysFits(t *testing.T) {
	var tbl txtable.Table
	tbl.Slots[0] = txtable.Record{MAC: mac(1), PedalMode: wire.Dual, SeenOnBoot: true}

	result := CheckReconnection(&tbl, 0, wire.SlotsFor(wire.Dual))
	if !result.CanFit || result.SlotsAfterApply != result.CurrentUsed {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCheckReconnectionBecomingResponsiveChecksRoom(t *testing.T) {
	var tbl txtable.Table
	tbl.Slots[0] = txtable.Record{MAC: mac(1), PedalMode: wire.Single, SeenOnBoot: false}
	tbl.Slots[1] = txtable.Record{MAC: mac(2), PedalMode: wire.Dual, SeenOnBoot: true}

	result := CheckReconnection(&tbl, 0, wire.SlotsFor(wire.Single))
	if result.CanFit {
		t.Fatalf("reconnection should not fit: receiver is already full from the dual transmitter: %+v", result)
	}
}

func TestFullReflectsUsedNotReserved(t *testing.T) {
	var tbl txtable.Table
	tbl.Slots[0] = txtable.Record{MAC: mac(1), PedalMode: wire.Dual, SeenOnBoot: false}

	if Full(&tbl) {
		t.Fatal("an unresponsive reserved record should not count as full")
	}
	if Available(&tbl) != txtable.MaxSlots {
		t.Fatalf("Available = %d, want %d", Available(&tbl), txtable.MaxSlots)
	}
}
