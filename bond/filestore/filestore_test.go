package filestore

import (
	"path/filepath"
	"testing"

	"github.com/openpedal/pedallink/bond"
	"github.com/openpedal/pedallink/wire"
)

func TestLoadOnMissingFileReturnsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "bonds.gob"))
	records, count, err := s.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
	for i, r := range records {
		if !r.MAC.IsZero() {
			t.Fatalf("slot %d should be empty, got %+v", i, r)
		}
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "bonds.gob"))

	var records [bond.MaxRecords]bond.Record
	records[0] = bond.Record{MAC: wire.MAC{1, 2, 3, 4, 5, 6}, PedalMode: wire.Single}
	records[1] = bond.Record{MAC: wire.MAC{9, 9, 9, 9, 9, 9}, PedalMode: wire.Dual}

	if err := s.SaveRecords(records, 2); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}

	got, count, err := s.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if got != records {
		t.Fatalf("got %+v, want %+v", got, records)
	}
}

func TestDebugSinkRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "bonds.gob"))

	if _, paired, err := s.LoadDebugSink(); err != nil || paired {
		t.Fatalf("fresh store should have no debug sink: paired=%v err=%v", paired, err)
	}

	mac := wire.MAC{0xA, 0xB, 0xC, 0xD, 0xE, 0xF}
	if err := s.SaveDebugSink(mac); err != nil {
		t.Fatalf("SaveDebugSink: %v", err)
	}

	got, paired, err := s.LoadDebugSink()
	if err != nil {
		t.Fatalf("LoadDebugSink: %v", err)
	}
	if !paired || got != mac {
		t.Fatalf("got %v paired=%v, want %v paired=true", got, paired, mac)
	}
}

func TestSaveRecordsPreservesDebugSink(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "bonds.gob"))
	mac := wire.MAC{1, 1, 1, 1, 1, 1}
	if err := s.SaveDebugSink(mac); err != nil {
		t.Fatalf("SaveDebugSink: %v", err)
	}

	var records [bond.MaxRecords]bond.Record
	if err := s.SaveRecords(records, 0); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}

	got, paired, err := s.LoadDebugSink()
	if err != nil || !paired || got != mac {
		t.Fatalf("debug sink should survive an unrelated SaveRecords: got=%v paired=%v err=%v", got, paired, err)
	}
}
