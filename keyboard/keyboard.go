// Package keyboard defines the collaborator a receiver hands pedal
// key-press/release events to once it has decided an event is for a
// confirmed, paired transmitter. Emitting actual USB/BLE HID reports is
// out of scope for this module (it lives in the host OS or application
// layer this device is plugged into); Sink exists so pairing/receiver has
// something concrete to call without owning that concern itself.
package keyboard

// Sink receives a debounced pedal event, already remapped to its assigned
// key (txtable.AssignedKey).
type Sink interface {
	Send(key byte, pressed bool)
}

// NopSink discards every event. Useful as a default when no real HID
// backend is wired up yet.
type NopSink struct{}

func (NopSink) Send(key byte, pressed bool) {}
