// Package transmitter implements the transmitter side of the pairing
// protocol (§4.7): listening for beacons, requesting discovery, and
// reconnecting to a previously paired receiver. Grounded on
// shared/application/PairingService.cpp; every Send the original issues
// directly from its ESP-NOW receive callback is queued here instead and
// flushed by Drain, so this side keeps the same never-send-from-callback
// discipline the receiver does (§4.2, §5) even where the original does
// not.
package transmitter

import (
	"time"

	"github.com/openpedal/pedallink/config"
	"github.com/openpedal/pedallink/deferred"
	"github.com/openpedal/pedallink/internal/logging"
	"github.com/openpedal/pedallink/radio"
	"github.com/openpedal/pedallink/sleep"
	"github.com/openpedal/pedallink/wire"
)

// OnPaired is invoked once pairing with a receiver completes, when a
// DiscoveryResp answers a pending discovery request.
type OnPaired func(receiver wire.MAC)

// Service is the transmitter's pairing state machine.
type Service struct {
	ourMAC    wire.MAC
	pedalMode wire.PedalMode
	port      radio.Port
	queue     *deferred.Queue
	log       *logging.LeveledLogger
	onPaired  OnPaired
	activity  sleep.Scheduler

	discoveryResponseWait time.Duration

	discoveredReceiver       wire.MAC
	discoveredAvailableSlots uint8
	discoveredChannel        uint8

	pairedReceiver wire.MAC

	waitingForDiscoveryResponse bool
	discoveryRequestTime        time.Time
}

// New constructs a transmitter Service for the given pedal mode.
func New(ourMAC wire.MAC, mode wire.PedalMode, port radio.Port, cfg config.Device, onPaired OnPaired, log *logging.LeveledLogger) *Service {
	return &Service{
		ourMAC:                ourMAC,
		pedalMode:             mode,
		port:                  port,
		queue:                 deferred.New(),
		log:                   log,
		onPaired:              onPaired,
		activity:              sleep.NopScheduler{},
		discoveryResponseWait: cfg.DiscoveryResponseWait,
	}
}

// SetActivityScheduler wires the collaborator notified of every pedal or
// radio activity, for power management (§4.7's inactivity timeout).
// Defaults to sleep.NopScheduler.
func (s *Service) SetActivityScheduler(scheduler sleep.Scheduler) {
	if scheduler == nil {
		scheduler = sleep.NopScheduler{}
	}
	s.activity = scheduler
}

// SendPedalEvent queues a debounced pedal edge for delivery to the paired
// receiver. A no-op when not currently paired: PedalService.cpp only ever
// emits pedal events once pairingService_isPaired() is true.
func (s *Service) SendPedalEvent(key byte, pressed bool, now time.Time) {
	s.activity.NoteActivity(now.UnixMilli())
	if !s.IsPaired() {
		return
	}
	s.send(s.pairedReceiver, 0, wire.EncodePedalEvent(wire.PedalEventFrame{
		Key:       key,
		Pressed:   pressed,
		PedalMode: s.pedalMode,
	}))
}

func (s *Service) send(mac wire.MAC, channel uint8, frame []byte) {
	s.queue.Push(deferred.Action{Peer: mac, Channel: channel, Frame: frame})
}

func (s *Service) broadcast(frame []byte) {
	s.queue.Push(deferred.Action{Peer: wire.Broadcast, Frame: frame})
}

// Drain flushes every queued action through the radio port. Call once per
// main-loop tick.
func (s *Service) Drain() {
	for _, action := range s.queue.Drain() {
		if action.Peer != wire.Broadcast {
			s.port.RegisterPeer(action.Peer, action.Channel)
			s.port.Send(action.Peer, action.Frame)
			continue
		}
		s.port.Broadcast(action.Frame)
	}
}

// IsPaired reports whether the transmitter currently considers itself
// paired to a receiver.
func (s *Service) IsPaired() bool {
	return !s.pairedReceiver.IsZero()
}

// HandleFrame dispatches one decoded wire frame. Call from the radio
// callback.
func (s *Service) HandleFrame(sender wire.MAC, data []byte, channelHint uint8, now time.Time) {
	s.activity.NoteActivity(now.UnixMilli())

	kind, payload, err := wire.Decode(data)
	if err != nil {
		if s.log != nil {
			s.log.Warn("dropping invalid frame from %s: %v", sender, err)
		}
		return
	}

	switch kind {
	case wire.KindBeacon:
		beacon, err := wire.DecodeBeacon(payload)
		if err != nil {
			return
		}
		s.handleBeacon(beacon, now)
	case wire.KindDiscoveryResp:
		s.handleDiscoveryResp(sender, channelHint)
	case wire.KindAlive:
		s.handleAlive(sender, channelHint, now)
	case wire.KindPairingConfirmed:
		msg, err := wire.DecodePairingConfirmed(payload)
		if err != nil {
			return
		}
		s.handlePairingConfirmed(msg)
	}
}

func (s *Service) handleBeacon(beacon wire.BeaconFrame, now time.Time) {
	if !beacon.ReceiverMAC.Valid() {
		return
	}

	slotsNeeded := uint8(wire.SlotsFor(s.pedalMode))
	wasPreviouslyPaired := beacon.ReceiverMAC == s.pairedReceiver && !s.pairedReceiver.IsZero()

	if beacon.AvailableSlots < slotsNeeded {
		s.discoveredReceiver = wire.MAC{}
		return
	}

	s.discoveredReceiver = beacon.ReceiverMAC
	s.discoveredAvailableSlots = beacon.AvailableSlots
	s.discoveredChannel = 0

	if wasPreviouslyPaired && !s.IsPaired() {
		if s.log != nil {
			s.log.Debug("beacon from previously paired receiver %s, re-requesting discovery", beacon.ReceiverMAC)
		}
		s.InitiatePairing(beacon.ReceiverMAC, 0, now)
	}
}

// InitiatePairing sends a DiscoveryReq to receiver if it is currently the
// discovered receiver with enough free slots for this transmitter's pedal
// mode. Mirrors pairingService_initiatePairing.
func (s *Service) InitiatePairing(receiver wire.MAC, channel uint8, now time.Time) {
	if receiver != s.discoveredReceiver {
		return
	}
	slotsNeeded := uint8(wire.SlotsFor(s.pedalMode))
	if s.discoveredAvailableSlots < slotsNeeded {
		return
	}

	s.send(receiver, channel, wire.EncodeDiscoveryReq(wire.DiscoveryReqFrame{PedalMode: s.pedalMode}))
	s.waitingForDiscoveryResponse = true
	s.discoveryRequestTime = now
}

func (s *Service) handleDiscoveryResp(sender wire.MAC, channel uint8) {
	if !s.waitingForDiscoveryResponse {
		return
	}

	s.pairedReceiver = sender
	s.waitingForDiscoveryResponse = false
	s.discoveryRequestTime = time.Time{}

	s.broadcastPaired(sender)
	if s.onPaired != nil {
		s.onPaired(sender)
	}
}

func (s *Service) handleAlive(sender wire.MAC, channel uint8, now time.Time) {
	if s.IsPaired() {
		if sender == s.pairedReceiver {
			// Paired receiver requesting discovery: respond with
			// TransmitterOnline so it answers with PairingConfirmed.
			s.send(sender, channel, wire.EncodeTransmitterOnline(wire.TransmitterOnlineFrame{TransmitterMAC: s.ourMAC}))
			return
		}
		// A different receiver thinks we're paired to it; tell it to drop us.
		s.send(sender, channel, wire.EncodeDeleteRecord(wire.DeleteRecordFrame{}))
		return
	}

	// Not paired: this is a receiver requesting discovery.
	s.discoveredReceiver = sender
	s.discoveredAvailableSlots = uint8(wire.SlotsFor(wire.Dual)) // unknown, assume room until a beacon says otherwise
	s.discoveredChannel = channel
	s.waitingForDiscoveryResponse = true
	s.discoveryRequestTime = now
	s.InitiatePairing(sender, channel, now)
}

func (s *Service) handlePairingConfirmed(msg wire.PairingConfirmedFrame) {
	if msg.ReceiverMAC != s.pairedReceiver {
		return
	}
	if s.log != nil {
		s.log.Debug("pairing confirmed by %s", msg.ReceiverMAC)
	}
}

func (s *Service) broadcastOnline() {
	s.broadcast(wire.EncodeTransmitterOnline(wire.TransmitterOnlineFrame{TransmitterMAC: s.ourMAC}))
}

func (s *Service) broadcastPaired(receiver wire.MAC) {
	s.broadcast(wire.EncodeTransmitterPaired(wire.TransmitterPairedFrame{TransmitterMAC: s.ourMAC, ReceiverMAC: receiver}))
}

// BroadcastOnline announces this transmitter's presence to every receiver
// in range. Call once shortly after boot.
func (s *Service) BroadcastOnline() {
	s.broadcastOnline()
}

// CheckDiscoveryTimeout reports whether a pending discovery request has
// gone unanswered for longer than DiscoveryResponseWait, clearing the
// waiting state if so.
func (s *Service) CheckDiscoveryTimeout(now time.Time) bool {
	if !s.waitingForDiscoveryResponse {
		return false
	}
	if now.Sub(s.discoveryRequestTime) > s.discoveryResponseWait {
		s.waitingForDiscoveryResponse = false
		s.discoveryRequestTime = time.Time{}
		return true
	}
	return false
}
