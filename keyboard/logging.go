package keyboard

import "github.com/openpedal/pedallink/internal/logging"

// LoggingSink logs every event instead of emitting it, for host builds
// and demos that have no real HID stack attached.
type LoggingSink struct {
	Log *logging.LeveledLogger
}

func (s LoggingSink) Send(key byte, pressed bool) {
	if s.Log == nil {
		return
	}
	if pressed {
		s.Log.Info("pedal key %q pressed", key)
	} else {
		s.Log.Info("pedal key %q released", key)
	}
}
