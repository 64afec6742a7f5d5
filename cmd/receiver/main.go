// Command receiver is the pedallink base station: it tracks up to
// txtable.MaxSlots bonded transmitters (§4.5), runs the four-phase pairing
// state machine (§4.6), and remaps incoming pedal edges to keyboard keys.
// Platform specifics (radio backend, bond persistence) live in this
// package's build-tagged loadConfig/newPort/newBondStore files.
package main

import (
	"log"
	"os"
	"time"

	"github.com/openpedal/pedallink/internal/logging"
	"github.com/openpedal/pedallink/keyboard"
	"github.com/openpedal/pedallink/pairing/receiver"
	"github.com/openpedal/pedallink/wire"
)

const tickInterval = 20 * time.Millisecond

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

	store, err := newBondStore(cfg)
	if err != nil {
		logger.Fatalf("bond store: %v", err)
	}

	port := newPort(ourMAC, cfg.Channel)
	if err := port.Init(); err != nil {
		logger.Fatalf("radio init: %v", err)
	}
	if err := port.RegisterPeer(wire.Broadcast, cfg.Channel); err != nil {
		logger.Fatalf("register broadcast peer: %v", err)
	}

	now := time.Now()
	svc, err := receiver.New(ourMAC, port, store, cfg, now, logger)
	if err != nil {
		logger.Fatalf("pairing service: %v", err)
	}
	svc.SetKeyboardSink(keyboard.LoggingSink{Log: logger})

	port.OnRecv(func(sender [6]byte, data []byte, channel uint8) {
		svc.HandleFrame(wire.MAC(sender), data, channel, time.Now())
	})

	logger.Info("receiver %s starting on channel %d", ourMAC, cfg.Channel)
	svc.PingKnownTransmittersOnBoot()
	svc.Drain()

	for {
		now := time.Now()

		if p, ok := port.(pollablePort); ok {
			p.Poll()
		}

		svc.Update(now)
		svc.Drain()
		time.Sleep(tickInterval)
	}
}
