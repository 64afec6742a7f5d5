// Package receiver implements the receiver side of the pairing protocol:
// Phase A (initial ping of known transmitters), Phase B (grace-period
// discovery window), Phase C (steady-state online/alive handling), and
// Phase D (full-receiver replacement probing), per §4.6. Grounded
// line-for-line on the original receiver/application/PairingService.cpp,
// translated from its millis()-based polling into time.Time/time.Duration
// and from its raw byte-array scans into txtable.Table/slot helpers.
package receiver

import (
	"time"

	"github.com/openpedal/pedallink/bond"
	"github.com/openpedal/pedallink/config"
	"github.com/openpedal/pedallink/deferred"
	"github.com/openpedal/pedallink/internal/logging"
	"github.com/openpedal/pedallink/keyboard"
	"github.com/openpedal/pedallink/radio"
	"github.com/openpedal/pedallink/slot"
	"github.com/openpedal/pedallink/txtable"
	"github.com/openpedal/pedallink/wire"
)

// Service is the receiver's pairing state machine. It owns the in-memory
// txtable.Table, persists it through a bond.Store, and talks over a
// radio.Port. HandleFrame is safe to call from the radio callback: it
// never calls the port synchronously, only queues actions for Drain to
// flush on the main loop (§4.2, §5).
type Service struct {
	ourMAC wire.MAC
	port   radio.Port
	store  bond.Store
	queue  *deferred.Queue
	log    *logging.LeveledLogger
	keys   keyboard.Sink

	table txtable.Table

	bootTime time.Time

	initialPingWait       time.Duration
	gracePeriod           time.Duration
	beaconInterval        time.Duration
	aliveResponseTimeout  time.Duration

	lastBeaconTime time.Time

	gracePeriodCheckDone bool
	gracePeriodSkipped   bool
	initialPingSent      bool
	slotReassignmentDone bool

	pendingNewTransmitter    wire.MAC
	waitingForAliveResponses bool
	aliveDeadline            time.Time
	transmitterResponded     [txtable.MaxSlots]bool
}

// New constructs a Service, loading any previously bonded transmitters
// from store. now is the boot timestamp every subsequent timer is
// measured against.
func New(ourMAC wire.MAC, port radio.Port, store bond.Store, cfg config.Device, now time.Time, log *logging.LeveledLogger) (*Service, error) {
	s := &Service{
		ourMAC:               ourMAC,
		port:                 port,
		store:                store,
		queue:                deferred.New(),
		log:                  log,
		keys:                 keyboard.NopSink{},
		bootTime:             now,
		initialPingWait:      cfg.InitialPingWait,
		gracePeriod:          cfg.GracePeriod,
		beaconInterval:       cfg.BeaconInterval,
		aliveResponseTimeout: cfg.AliveResponseTimeout,
	}

	records, count, err := store.LoadRecords()
	if err != nil {
		return nil, err
	}
	// §6: every loaded record starts with SeenOnBoot=false; liveness is
	// rebuilt from scratch by pinging known transmitters on boot. A
	// persisted config whose reserved slots exceed MAX_SLOTS (e.g. a
	// store edited out-of-band) must not be loaded past the budget: keep
	// earlier-indexed records and drop whatever would overflow I1.
	for i := 0; i < count && i < txtable.MaxSlots; i++ {
		if records[i].MAC.IsZero() {
			continue
		}
		if slot.Reserved(&s.table)+wire.SlotsFor(records[i].PedalMode) > txtable.MaxSlots {
			if s.log != nil {
				s.log.Warn("dropping bonded record for %s at load: exceeds MAX_SLOTS", records[i].MAC)
			}
			continue
		}
		s.table.Slots[i] = txtable.Record{MAC: records[i].MAC, PedalMode: records[i].PedalMode}
	}

	return s, nil
}

// SetKeyboardSink wires the collaborator PedalEvent frames are remapped
// and forwarded to (§4.8). Defaults to keyboard.NopSink.
func (s *Service) SetKeyboardSink(sink keyboard.Sink) {
	if sink == nil {
		sink = keyboard.NopSink{}
	}
	s.keys = sink
}

func (s *Service) persist() error {
	var records [bond.MaxRecords]bond.Record
	count := 0
	for i, r := range s.table.Slots {
		records[i] = bond.Record{MAC: r.MAC, PedalMode: r.PedalMode}
		if !r.MAC.IsZero() {
			count = i + 1
		}
	}
	return s.store.SaveRecords(records, count)
}

func (s *Service) send(mac wire.MAC, channel uint8, frame []byte) {
	s.queue.Push(deferred.Action{Peer: mac, Channel: channel, Frame: frame})
}

// Drain flushes every action HandleFrame/Update queued since the last
// call, registering peers and sending frames through the radio port. The
// main loop must call this once per tick after Update.
func (s *Service) Drain() {
	for _, action := range s.queue.Drain() {
		s.port.RegisterPeer(action.Peer, action.Channel)
		s.port.Send(action.Peer, action.Frame)
	}
}

// HandleFrame dispatches one decoded wire frame. Call this from the
// radio.RecvFunc callback.
func (s *Service) HandleFrame(sender wire.MAC, data []byte, channelHint uint8, now time.Time) {
	kind, payload, err := wire.Decode(data)
	if err != nil {
		if s.log != nil {
			s.log.Warn("dropping invalid frame from %s: %v", sender, err)
		}
		return
	}

	switch kind {
	case wire.KindDiscoveryReq:
		req, err := wire.DecodeDiscoveryReq(payload)
		if err != nil {
			return
		}
		s.handleDiscoveryRequest(sender, req.PedalMode, channelHint, now)
	case wire.KindTransmitterOnline:
		msg, err := wire.DecodeTransmitterOnline(payload)
		if err != nil {
			return
		}
		s.handleTransmitterOnline(msg.TransmitterMAC, channelHint, now)
	case wire.KindTransmitterPaired:
		msg, err := wire.DecodeTransmitterPaired(payload)
		if err != nil {
			return
		}
		s.handleTransmitterPaired(msg, now)
	case wire.KindAlive:
		s.handleAlive(sender, now)
	case wire.KindDeleteRecord:
		s.handleDeleteRecord(sender)
	case wire.KindPedalEvent:
		msg, err := wire.DecodePedalEvent(payload)
		if err != nil {
			return
		}
		s.handlePedalEvent(sender, msg)
	}
}

// handlePedalEvent remaps a bonded transmitter's raw pedal edge to its
// assigned keyboard key and forwards it. Frames from a transmitter that
// isn't in our table are dropped silently: only a bonded, known
// transmitter's pedals can ever reach the keyboard sink.
//
// A Dual-mode transmitter occupies a single table entry (costing both
// pedal slots) but exposes both pedals
// of that one physical unit directly ('1' -> left, '2' -> right); a
// Single-mode transmitter only ever reports '1', remapped per
// txtable.AssignedKey to whichever side its slot index owns.
func (s *Service) handlePedalEvent(sender wire.MAC, msg wire.PedalEventFrame) {
	idx := s.table.Find(sender)
	if idx < 0 {
		return
	}
	if s.table.Slots[idx].PedalMode == wire.Dual {
		if msg.Key == '2' {
			s.keys.Send('r', msg.Pressed)
		} else {
			s.keys.Send('l', msg.Pressed)
		}
		return
	}
	s.keys.Send(txtable.AssignedKey(idx), msg.Pressed)
}

func (s *Service) handleDiscoveryRequest(sender wire.MAC, mode wire.PedalMode, channel uint8, now time.Time) {
	if s.gracePeriodSkipped {
		return
	}

	knownIndex := s.table.Find(sender)
	isKnown := knownIndex >= 0

	sinceBoot := now.Sub(s.bootTime)
	if sinceBoot < s.initialPingWait && !isKnown {
		return
	}

	inDiscoveryPeriod := sinceBoot < s.gracePeriod
	if !inDiscoveryPeriod && !isKnown {
		return
	}

	slotsNeeded := wire.SlotsFor(mode)

	if isKnown {
		result := slot.CheckModeChange(&s.table, knownIndex, slotsNeeded)
		wasResponsive := s.table.Slots[knownIndex].SeenOnBoot
		if !wasResponsive {
			if !slot.CanFitNew(&s.table, slotsNeeded) {
				return
			}
		} else if !result.CanFit {
			return
		}
		s.table.Slots[knownIndex].PedalMode = mode
		s.table.MarkSeen(knownIndex, 0)
	} else if !slot.CanFitNew(&s.table, slotsNeeded) {
		return
	}

	s.send(sender, channel, wire.EncodeDiscoveryResp(wire.DiscoveryRespFrame{}))

	if isKnown {
		s.persist()
		return
	}

	// New transmitter: both branches below take the lowest-indexed empty
	// slot, so the first transmitter paired into an empty table lands in
	// slot 0 (the original's "first pedal gets slot 0" invariant); a slot
	// still held by an unresponsive bond is skipped, not reused.
	responsive := 0
	for i, r := range s.table.Slots {
		if !r.MAC.IsZero() && r.SeenOnBoot && i != knownIndex {
			responsive++
		}
	}
	if responsive == 0 {
		if idx := s.table.FirstEmpty(); idx >= 0 {
			s.table.Slots[idx] = txtable.Record{MAC: sender, PedalMode: mode, SeenOnBoot: true}
		}
	} else {
		s.table.Insert(sender, mode, 0)
	}
	s.persist()
}

func (s *Service) handleTransmitterOnline(sender wire.MAC, channel uint8, now time.Time) {
	idx := s.table.Find(sender)
	if idx >= 0 {
		if !s.table.Slots[idx].SeenOnBoot && !slot.CanFitNew(&s.table, wire.SlotsFor(s.table.Slots[idx].PedalMode)) {
			return
		}
		s.table.MarkSeen(idx, 0)
		s.send(sender, channel, wire.EncodePairingConfirmed(wire.PairingConfirmedFrame{ReceiverMAC: s.ourMAC}))
		if s.log != nil {
			s.log.Debug("paired transmitter %s came online, confirming pairing", sender)
		}
		return
	}

	// Unknown transmitter.
	sinceBoot := now.Sub(s.bootTime)
	graceEnded := sinceBoot >= s.gracePeriod

	if slot.Full(&s.table) {
		s.pendingNewTransmitter = sender
		for i := range s.transmitterResponded {
			s.transmitterResponded[i] = false
		}
		for _, r := range s.table.Slots {
			if r.MAC.IsZero() {
				continue
			}
			s.send(r.MAC, channel, wire.EncodeAlive(wire.AliveFrame{}))
		}
		s.waitingForAliveResponses = true
		s.aliveDeadline = now.Add(s.aliveResponseTimeout)
		return
	}

	if graceEnded {
		s.send(sender, channel, wire.EncodeAlive(wire.AliveFrame{}))
		if s.log != nil {
			s.log.Debug("unknown transmitter %s came online after grace period, requesting discovery", sender)
		}
	}
}

func (s *Service) handleTransmitterPaired(msg wire.TransmitterPairedFrame, now time.Time) {
	idx := s.table.Find(msg.TransmitterMAC)
	if idx < 0 {
		return
	}
	pairedWithUs := msg.ReceiverMAC == s.ourMAC
	if !pairedWithUs {
		// Paired with another receiver; leave it in our table, the
		// transmitter will send DeleteRecord if it wants removal (§7).
		return
	}
	if !s.gracePeriodCheckDone {
		s.table.MarkSeen(idx, 0)
		s.persist()
	}
}

func (s *Service) handleAlive(sender wire.MAC, now time.Time) {
	idx := s.table.Find(sender)
	if idx < 0 {
		return
	}
	wasSeen := s.table.Slots[idx].SeenOnBoot
	if s.waitingForAliveResponses {
		s.transmitterResponded[idx] = true
	}
	if !wasSeen {
		s.table.MarkSeen(idx, 0)
		s.persist()
	}
}

func (s *Service) handleDeleteRecord(sender wire.MAC) {
	if idx := s.table.Find(sender); idx >= 0 {
		s.table.Remove(idx)
		s.persist()
	}
}

func (s *Service) sendBeacon(now time.Time) {
	if now.Sub(s.bootTime) >= s.gracePeriod {
		return
	}
	if slot.Full(&s.table) {
		return
	}
	beacon := wire.BeaconFrame{
		ReceiverMAC:    s.ourMAC,
		AvailableSlots: uint8(slot.Available(&s.table)),
		TotalSlots:     txtable.MaxSlots,
	}
	s.queue.Push(deferred.Action{Peer: wire.Broadcast, Frame: wire.EncodeBeacon(beacon)})
}

// PingKnownTransmittersOnBoot sends Alive to every loaded record exactly
// once, to restore prior pairings before the grace period starts.
func (s *Service) PingKnownTransmittersOnBoot() {
	if s.initialPingSent {
		return
	}
	pinged := 0
	for _, r := range s.table.Slots {
		if r.MAC.IsZero() {
			continue
		}
		s.send(r.MAC, 0, wire.EncodeAlive(wire.AliveFrame{}))
		pinged++
	}
	if pinged > 0 {
		s.initialPingSent = true
	}
}

func (s *Service) pingKnownTransmitters(now time.Time) {
	if now.Sub(s.bootTime) >= s.gracePeriod {
		return
	}
	for _, r := range s.table.Slots {
		if r.MAC.IsZero() || r.SeenOnBoot {
			continue
		}
		s.send(r.MAC, 0, wire.EncodeAlive(wire.AliveFrame{}))
	}
}

// Update drives every time-based transition: slot reassignment after
// InitialPingWait, grace-period expiry or early skip, periodic beacons
// and pings, and the replacement-probe timeout. Call once per main-loop
// tick, followed by Drain.
func (s *Service) Update(now time.Time) {
	sinceBoot := now.Sub(s.bootTime)

	if !s.slotReassignmentDone && sinceBoot >= s.initialPingWait {
		s.slotReassignmentDone = true
		responsive := 0
		for _, r := range s.table.Slots {
			if !r.MAC.IsZero() && r.SeenOnBoot {
				responsive++
			}
		}
		if s.log != nil {
			s.log.Debug("slot reassignment check: %d transmitter(s) responded to initial ping", responsive)
		}
		// Responsive transmitters already occupy their correct slot
		// (insertion never reorders); nothing further to do here beyond
		// the logging the original performs for operator visibility.
	}

	if !s.gracePeriodCheckDone && sinceBoot >= s.initialPingWait {
		if slot.Full(&s.table) {
			s.gracePeriodCheckDone = true
			s.gracePeriodSkipped = true
			s.persist()
		} else if sinceBoot > s.gracePeriod {
			s.gracePeriodCheckDone = true
			s.persist()
		}
	}

	if !s.gracePeriodCheckDone && sinceBoot >= s.initialPingWait {
		if now.Sub(s.lastBeaconTime) > s.beaconInterval {
			s.pingKnownTransmitters(now)
			if !slot.Full(&s.table) {
				s.sendBeacon(now)
			}
			s.lastBeaconTime = now
		}
	}

	if s.waitingForAliveResponses && !now.Before(s.aliveDeadline) {
		if !slot.Full(&s.table) && !s.pendingNewTransmitter.IsZero() {
			s.send(s.pendingNewTransmitter, 0, wire.EncodeAlive(wire.AliveFrame{}))
		}
		s.waitingForAliveResponses = false
		s.pendingNewTransmitter = wire.MAC{}
		s.aliveDeadline = time.Time{}
	}
}

// Table exposes a read-only view of the current transmitter records, for
// the LED indicator and diagnostics.
func (s *Service) Table() txtable.Table {
	return s.table
}
