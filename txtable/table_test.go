package txtable

import (
	"testing"

	"github.com/openpedal/pedallink/wire"
)

func mac(b byte) wire.MAC { return wire.MAC{1, 2, 3, 4, 5, b} }

func TestInsertFillsLowestEmptySlotFirst(t *testing.T) {
	var tbl Table
	idx := tbl.Insert(mac(1), wire.Single, 100)
	if idx != 0 {
		t.Fatalf("first insert got slot %d, want 0", idx)
	}
	idx = tbl.Insert(mac(2), wire.Single, 100)
	if idx != 1 {
		t.Fatalf("second insert got slot %d, want 1", idx)
	}
	if idx := tbl.Insert(mac(3), wire.Single, 100); idx != -1 {
		t.Fatalf("table should be full, got slot %d", idx)
	}
}

func TestInsertReusesFreedLowIndex(t *testing.T) {
	var tbl Table
	tbl.Insert(mac(1), wire.Single, 0)
	tbl.Insert(mac(2), wire.Single, 0)
	tbl.RemoveMAC(mac(1))

	idx := tbl.Insert(mac(3), wire.Single, 0)
	if idx != 0 {
		t.Fatalf("should reuse slot 0, got %d", idx)
	}
}

func TestRemoveDoesNotShiftOtherSlots(t *testing.T) {
	var tbl Table
	tbl.Insert(mac(1), wire.Single, 0)
	tbl.Insert(mac(2), wire.Single, 0)
	tbl.RemoveMAC(mac(1))

	if tbl.Find(mac(2)) != 1 {
		t.Fatalf("slot 1 occupant should stay at index 1 after slot 0 is cleared")
	}
}

func TestAssignedKey(t *testing.T) {
	if AssignedKey(0) != 'l' {
		t.Fatal("slot 0 should be the left pedal")
	}
	if AssignedKey(1) != 'r' {
		t.Fatal("slot 1 should be the right pedal")
	}
}

func TestFindMissing(t *testing.T) {
	var tbl Table
	if tbl.Find(mac(9)) != -1 {
		t.Fatal("Find on empty table should return -1")
	}
}
