// Package debounce turns raw gpio.Pin polling into clean press/release
// events. Grounded on PedalReader.cpp's processPedal: a transition is
// only accepted once the line has actually changed level and stayed
// changed for at least the debounce window, so electrical bounce while
// the pedal is held doesn't generate spurious events. The original
// splits this across an ISR (flag-set only) and a main-loop processor;
// since this module has no interrupt context of its own, Debouncer folds
// both halves into a single Poll call driven by the caller's loop.
package debounce

import "time"

// Window is the debounce interval. The original firmware used 50ms;
// pedallink narrows it to 30ms to trade a little more accepted switch
// noise for snappier pedal response, since §4.6/§4.7's shortest protocol
// timer (InitialPingWait, 1000ms) still dwarfs it by more than an order
// of magnitude either way.
const Window = 30 * time.Millisecond

// Debouncer tracks one digital input's debounced level over time. It
// latches onto the moment a level change is first observed and only
// confirms it once the new level has held continuously for the full
// window; a bounce back to the confirmed level before then cancels the
// latch entirely, mirroring PedalReader.cpp's debouncing flag rather
// than measuring elapsed time since the last accepted transition.
type Debouncer struct {
	window         time.Duration
	initialized    bool
	confirmedLevel bool
	debouncing     bool
	candidateLevel bool
	debounceStart  time.Time
}

// New creates a Debouncer using window as its settle time.
func New(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Poll feeds the current raw line level, observed at now, and reports
// whether a debounced press or release just occurred. High is idle
// (pull-up), Low is pressed.
func (d *Debouncer) Poll(now time.Time, high bool) (pressed, released bool) {
	if !d.initialized {
		d.initialized = true
		d.confirmedLevel = high
		return false, false
	}

	if !d.debouncing {
		if high == d.confirmedLevel {
			return false, false
		}
		d.debouncing = true
		d.candidateLevel = high
		d.debounceStart = now
		return false, false
	}

	if high != d.candidateLevel {
		d.debouncing = false
		return false, false
	}

	if now.Sub(d.debounceStart) < d.window {
		return false, false
	}

	wasHigh := d.confirmedLevel
	d.confirmedLevel = d.candidateLevel
	d.debouncing = false

	if wasHigh && !high {
		return true, false
	}
	if !wasHigh && high {
		return false, true
	}
	return false, false
}
