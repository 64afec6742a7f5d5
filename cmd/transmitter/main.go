// Command transmitter is the pedal-side pedallink node: it discovers and
// pairs with a receiver (§4.7), then forwards debounced pedal edges to it.
// Grounded on the teacher's examples/transmitter/main.go Sleep-loop shape;
// platform specifics (radio backend, pedal GPIO) live in this package's
// build-tagged newPort/newPedalPins files.
package main

import (
	"log"
	"os"
	"time"

	"github.com/openpedal/pedallink/debounce"
	"github.com/openpedal/pedallink/internal/logging"
	"github.com/openpedal/pedallink/pairing/transmitter"
	"github.com/openpedal/pedallink/sleep"
	"github.com/openpedal/pedallink/wire"
)

const (
	tickInterval      = 20 * time.Millisecond
	onlineRebroadcast = 10 * time.Second
)

// pollablePort is satisfied by radio.Port implementations that need an
// explicit drive from the main loop instead of an interrupt (nrfradio.Driver).
type pollablePort interface {
	Poll()
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(log.New(os.Stderr, "", log.LstdFlags), logging.LevelInfo)

	ourMAC := wire.MAC(cfg.NodeMAC)
	mode := wire.PedalMode(cfg.PedalMode)

	port := newPort(ourMAC, cfg.Channel)
	if err := port.Init(); err != nil {
		logger.Fatalf("radio init: %v", err)
	}
	if err := port.RegisterPeer(wire.Broadcast, cfg.Channel); err != nil {
		logger.Fatalf("register broadcast peer: %v", err)
	}

	pin1, pin2, err := newPedalPins(mode)
	if err != nil {
		logger.Fatalf("pedal gpio: %v", err)
	}
	reader := debounce.NewReader(mode, pin1, pin2)
	defer reader.Close()

	svc := transmitter.New(ourMAC, mode, port, cfg, func(receiver wire.MAC) {
		logger.Info("paired with receiver %s", receiver)
	}, logger)
	svc.SetActivityScheduler(sleep.NopScheduler{})

	port.OnRecv(func(sender [6]byte, data []byte, channel uint8) {
		svc.HandleFrame(wire.MAC(sender), data, channel, time.Now())
	})

	logger.Info("transmitter %s starting in %s mode on channel %d", ourMAC, mode, cfg.Channel)
	svc.BroadcastOnline()
	svc.Drain()
	lastOnline := time.Now()

	for {
		now := time.Now()

		if p, ok := port.(pollablePort); ok {
			p.Poll()
		}

		events, err := reader.Poll(now)
		if err != nil {
			logger.Warn("pedal poll: %v", err)
		}
		for _, e := range events {
			svc.SendPedalEvent(e.Key, e.Pressed, now)
		}

		if svc.CheckDiscoveryTimeout(now) {
			logger.Debug("discovery request timed out, waiting for the next beacon")
		}

		if !svc.IsPaired() && now.Sub(lastOnline) >= onlineRebroadcast {
			svc.BroadcastOnline()
			lastOnline = now
		}

		svc.Drain()
		time.Sleep(tickInterval)
	}
}

