// Package memstore is an in-memory bond.Store, used by the TinyGo
// embedded build until a flash/NVS-backed implementation is grounded on
// a driver the example pack actually carries (see DESIGN.md); host builds
// use bond/filestore instead. Also handy as a fast bond.Store test double
// outside this module's own package tests.
package memstore

import (
	"github.com/openpedal/pedallink/bond"
	"github.com/openpedal/pedallink/wire"
)

// Store is a bond.Store that keeps its state only in process memory: it
// starts empty every boot, same as calling filestore against a file that
// never existed.
type Store struct {
	records [bond.MaxRecords]bond.Record
	count   int

	debugSink    wire.MAC
	hasDebugSink bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

func (s *Store) LoadRecords() ([bond.MaxRecords]bond.Record, int, error) {
	return s.records, s.count, nil
}

func (s *Store) SaveRecords(records [bond.MaxRecords]bond.Record, count int) error {
	s.records = records
	s.count = count
	return nil
}

func (s *Store) LoadDebugSink() (wire.MAC, bool, error) {
	return s.debugSink, s.hasDebugSink, nil
}

func (s *Store) SaveDebugSink(mac wire.MAC) error {
	s.debugSink = mac
	s.hasDebugSink = true
	return nil
}
