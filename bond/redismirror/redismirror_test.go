package redismirror

import (
	"testing"

	"github.com/openpedal/pedallink/bond"
	"github.com/openpedal/pedallink/wire"
)

// fakeStore is an in-memory bond.Store double so these tests don't require
// a live Redis instance for the read-path delegation behaviour.
type fakeStore struct {
	records [bond.MaxRecords]bond.Record
	count   int
	sink    wire.MAC
	paired  bool
}

func (f *fakeStore) LoadRecords() ([bond.MaxRecords]bond.Record, int, error) {
	return f.records, f.count, nil
}
func (f *fakeStore) SaveRecords(records [bond.MaxRecords]bond.Record, count int) error {
	f.records, f.count = records, count
	return nil
}
func (f *fakeStore) LoadDebugSink() (wire.MAC, bool, error) { return f.sink, f.paired, nil }
func (f *fakeStore) SaveDebugSink(mac wire.MAC) error {
	f.sink, f.paired = mac, true
	return nil
}

func TestLoadDelegatesToInnerWithoutTouchingRedis(t *testing.T) {
	fake := &fakeStore{count: 1}
	fake.records[0] = bond.Record{MAC: wire.MAC{1, 2, 3, 4, 5, 6}, PedalMode: wire.Single}

	s := &Store{inner: fake}

	records, count, err := s.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if count != 1 || records != fake.records {
		t.Fatalf("got %+v/%d, want %+v/1", records, count, fake.records)
	}

	mac, paired, err := s.LoadDebugSink()
	if err != nil || paired || !mac.IsZero() {
		t.Fatalf("got %v/%v, want zero/false", mac, paired)
	}
}
