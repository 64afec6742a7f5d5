// Package bond defines the persistence contract for paired-transmitter
// records and the debug-monitor sink address (§4.3, §6).
package bond

import "github.com/openpedal/pedallink/wire"

// Store persists the receiver's txtable.Table and debug-monitor sink
// across restarts. Implementations need not be concurrency-safe on their
// own; callers serialize access through the pairing service's single
// update loop.
type Store interface {
	// LoadRecords returns the persisted records. Record carries no
	// liveness flag (§6): the pairing service starts every loaded record
	// as not seen on boot and rebuilds liveness by pinging known
	// transmitters.
	LoadRecords() ([MaxRecords]Record, int, error)

	// SaveRecords persists count occupied records (count is the original
	// firmware's "highest occupied index + 1", not a packed count).
	SaveRecords(records [MaxRecords]Record, count int) error

	// LoadDebugSink returns the stored debug-monitor MAC and whether one
	// has been paired at all.
	LoadDebugSink() (wire.MAC, bool, error)

	// SaveDebugSink persists mac as the debug-monitor sink.
	SaveDebugSink(mac wire.MAC) error
}

// MaxRecords mirrors txtable.MaxSlots; kept independent so bond does not
// import txtable, matching the original firmware's Persistence module
// which knows nothing about TransmitterManager's in-memory layout beyond
// the slot count.
const MaxRecords = 2

// Record is the on-disk shape of one transmitter slot.
type Record struct {
	MAC       wire.MAC
	PedalMode wire.PedalMode
}
