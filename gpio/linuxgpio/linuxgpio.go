//go:build linux

// Package linuxgpio backs gpio.Pin with the Linux GPIO character device,
// for a pedal connected to a Raspberry Pi or similar host acting as a
// transmitter. Grounded on the boiler-sensor example's internal/gpio
// real.go: request the line with a pull resistor at open time, reconfigure
// it back to a safe default on Close.
package linuxgpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Pin is a gpio.Pin backed by one requested line on a gpiochip.
type Pin struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// Open requests pin offset on chipName as an input with a pull-up, so an
// idle pedal switch reads High and a pressed one pulls the line Low
// (matching PedalReader.cpp's INPUT_PULLUP wiring).
func Open(chipName string, offset int) (*Pin, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("linuxgpio: open %s: %w", chipName, err)
	}

	line, err := chip.RequestLine(offset, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("linuxgpio: request line %d: %w", offset, err)
	}

	return &Pin{chip: chip, line: line}, nil
}

func (p *Pin) Read() (bool, error) {
	v, err := p.line.Value()
	if err != nil {
		return false, fmt.Errorf("linuxgpio: read: %w", err)
	}
	return v != 0, nil
}

func (p *Pin) Close() error {
	if err := p.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullUp); err != nil {
		p.line.Close()
		p.chip.Close()
		return fmt.Errorf("linuxgpio: reconfigure on close: %w", err)
	}
	if err := p.line.Close(); err != nil {
		p.chip.Close()
		return fmt.Errorf("linuxgpio: close line: %w", err)
	}
	if err := p.chip.Close(); err != nil {
		return fmt.Errorf("linuxgpio: close chip: %w", err)
	}
	return nil
}
