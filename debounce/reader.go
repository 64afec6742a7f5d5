package debounce

import (
	"time"

	"github.com/openpedal/pedallink/gpio"
	"github.com/openpedal/pedallink/wire"
)

// Event is a debounced pedal transition, keyed the same way the original
// firmware numbers its two local pedal inputs ('1', '2') before the
// receiver remaps them to a keyboard key via txtable.AssignedKey.
type Event struct {
	Key     byte
	Pressed bool
}

// Reader polls up to two local pedal pins and reports debounced events.
// In Single mode only pedal 1 is read, matching pedalReader_init's guard
// around the second pin's pinMode call.
type Reader struct {
	mode wire.PedalMode
	pin1 gpio.Pin
	pin2 gpio.Pin
	deb1 *Debouncer
	deb2 *Debouncer
}

// NewReader creates a Reader. pin2 may be nil when mode is wire.Single.
func NewReader(mode wire.PedalMode, pin1, pin2 gpio.Pin) *Reader {
	return &Reader{
		mode: mode,
		pin1: pin1,
		pin2: pin2,
		deb1: New(Window),
		deb2: New(Window),
	}
}

// Poll reads every configured pin and returns the events produced, in
// pedal-1-then-pedal-2 order.
func (r *Reader) Poll(now time.Time) ([]Event, error) {
	var events []Event

	high1, err := r.pin1.Read()
	if err != nil {
		return nil, err
	}
	if pressed, released := r.deb1.Poll(now, high1); pressed || released {
		events = append(events, Event{Key: '1', Pressed: pressed})
	}

	if r.mode == wire.Dual && r.pin2 != nil {
		high2, err := r.pin2.Read()
		if err != nil {
			return events, err
		}
		if pressed, released := r.deb2.Poll(now, high2); pressed || released {
			events = append(events, Event{Key: '2', Pressed: pressed})
		}
	}

	return events, nil
}

// Close releases the underlying pins.
func (r *Reader) Close() error {
	if err := r.pin1.Close(); err != nil {
		return err
	}
	if r.pin2 != nil {
		return r.pin2.Close()
	}
	return nil
}
