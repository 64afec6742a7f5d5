// Package gpio defines the pin contract the pedal debouncer reads from,
// abstracting over the host's Linux GPIO character device and the
// embedded target's machine package.
package gpio

// Pin is a single digital input line, read with a pull-up so an idle
// pedal reads High and a pressed pedal pulls the line Low.
type Pin interface {
	// Read returns the current line level.
	Read() (High bool, err error)

	// Close releases any OS or hardware resources tied to the pin.
	Close() error
}
