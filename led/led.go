// Package led defines the collaborator the receiver's update loop tells
// about pairing-state transitions, for a status LED. Grounded on
// LEDService.h's update signature: the original keys its color purely off
// currentTime/gracePeriodDone/slotsUsed/inInitialWait, without LEDService
// itself understanding pairing semantics. Driving an actual NeoPixel or
// similar is out of scope for this module; Indicator lets a real driver
// be wired in later without the pairing core depending on it.
package led

// Indicator reports receiver pairing-loop state for a status LED to
// render. now is in milliseconds since boot, matching the original's
// currentTime parameter.
type Indicator interface {
	Update(now int64, gracePeriodDone bool, slotsUsed int, inInitialWait bool)
}

// NopIndicator discards every update.
type NopIndicator struct{}

func (NopIndicator) Update(now int64, gracePeriodDone bool, slotsUsed int, inInitialWait bool) {}
