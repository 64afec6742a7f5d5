// Package sleep defines the collaborator a transmitter notifies on every
// pedal or radio activity, for a power-management layer to decide when to
// enter deep sleep. Grounded on PedalService.cpp's lastActivityTime
// pointer: the pairing/pedal core only records the timestamp of the most
// recent activity and leaves the actual sleep/wake policy (and the
// platform-specific deep-sleep call) to its caller, which is out of scope
// here.
package sleep

// Scheduler is notified whenever the transmitter observes activity worth
// resetting its inactivity timer for.
type Scheduler interface {
	NoteActivity(now int64)
}

// NopScheduler discards every activity notification.
type NopScheduler struct{}

func (NopScheduler) NoteActivity(now int64) {}
