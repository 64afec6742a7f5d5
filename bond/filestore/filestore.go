// Package filestore is a host-side bond.Store backed by a gob-encoded
// file. Grounded on Persistence.cpp's NVS layout: rather than a typed
// struct, the on-disk representation is a flat key/value map using the
// same key names the firmware writes to its "pedal" namespace
// (pairedCount, pedalSlotsUsed, mac{i}_{j}, mode{i}, dbgmon_{j},
// dbgmon_paired), so the two implementations can be compared key-for-key.
package filestore

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/openpedal/pedallink/bond"
	"github.com/openpedal/pedallink/wire"
)

// Store is a bond.Store that persists to a single file via encoding/gob.
type Store struct {
	path string
}

// New returns a Store backed by path. The file need not exist yet; the
// first Load returns an empty table.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) readAll() (map[string]int, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: open %s: %w", s.path, err)
	}
	defer f.Close()

	var kv map[string]int
	if err := gob.NewDecoder(f).Decode(&kv); err != nil {
		return nil, fmt.Errorf("filestore: decode %s: %w", s.path, err)
	}
	return kv, nil
}

func (s *Store) writeAll(kv map[string]int) error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("filestore: create %s: %w", tmp, err)
	}
	if err := gob.NewEncoder(f).Encode(kv); err != nil {
		f.Close()
		return fmt.Errorf("filestore: encode %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("filestore: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("filestore: rename %s -> %s: %w", tmp, s.path, err)
	}
	return nil
}

func (s *Store) LoadRecords() ([bond.MaxRecords]bond.Record, int, error) {
	var out [bond.MaxRecords]bond.Record

	kv, err := s.readAll()
	if err != nil {
		return out, 0, err
	}

	count := kv["pairedCount"]
	if count > bond.MaxRecords {
		count = bond.MaxRecords
	}

	for i := 0; i < count; i++ {
		var mac wire.MAC
		for j := 0; j < 6; j++ {
			mac[j] = byte(kv[fmt.Sprintf("mac%d_%d", i, j)])
		}
		out[i] = bond.Record{
			MAC:       mac,
			PedalMode: wire.PedalMode(kv[fmt.Sprintf("mode%d", i)]),
		}
	}
	return out, count, nil
}

func (s *Store) SaveRecords(records [bond.MaxRecords]bond.Record, count int) error {
	kv, err := s.readAll()
	if err != nil {
		return err
	}

	kv["pairedCount"] = count

	used := 0
	for i := 0; i < count; i++ {
		if !records[i].MAC.IsZero() {
			used += wire.SlotsFor(records[i].PedalMode)
		}
		for j := 0; j < 6; j++ {
			kv[fmt.Sprintf("mac%d_%d", i, j)] = int(records[i].MAC[j])
		}
		kv[fmt.Sprintf("mode%d", i)] = int(records[i].PedalMode)
	}
	kv["pedalSlotsUsed"] = used

	return s.writeAll(kv)
}

func (s *Store) LoadDebugSink() (wire.MAC, bool, error) {
	kv, err := s.readAll()
	if err != nil {
		return wire.MAC{}, false, err
	}
	if kv["dbgmon_paired"] == 0 {
		return wire.MAC{}, false, nil
	}

	var mac wire.MAC
	for j := 0; j < 6; j++ {
		mac[j] = byte(kv[fmt.Sprintf("dbgmon_%d", j)])
	}
	return mac, !mac.IsZero(), nil
}

func (s *Store) SaveDebugSink(mac wire.MAC) error {
	kv, err := s.readAll()
	if err != nil {
		return err
	}
	for j := 0; j < 6; j++ {
		kv[fmt.Sprintf("dbgmon_%d", j)] = int(mac[j])
	}
	kv["dbgmon_paired"] = 1
	return s.writeAll(kv)
}
