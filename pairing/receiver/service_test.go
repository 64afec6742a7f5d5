package receiver

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/openpedal/pedallink/bond/filestore"
	"github.com/openpedal/pedallink/config"
	"github.com/openpedal/pedallink/radio/stub"
	"github.com/openpedal/pedallink/wire"
)

func newTestService(t *testing.T) (*Service, *stub.Port, *stub.Network) {
	t.Helper()
	net := stub.NewNetwork()
	port := stub.New(wire.MAC{1, 1, 1, 1, 1, 1}, net)
	port.Init()
	port.RegisterPeer(wire.Broadcast, 1)

	store := filestore.New(filepath.Join(t.TempDir(), "bonds.gob"))
	cfg := config.Defaults()
	now := time.Unix(0, 0)

	svc, err := New(wire.MAC{1, 1, 1, 1, 1, 1}, port, store, cfg, now, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc, port, net
}

func TestDiscoveryRequestFromNewTransmitterIsAcceptedDuringGracePeriod(t *testing.T) {
	svc, port, _ := newTestService(t)
	now := time.Unix(0, 0).Add(2 * time.Second) // past InitialPingWait

	tx := wire.MAC{2, 2, 2, 2, 2, 2}
	svc.HandleFrame(tx, wire.EncodeDiscoveryReq(wire.DiscoveryReqFrame{PedalMode: wire.Single}), 1, now)
	svc.Drain()

	log := port.TxLog()
	if len(log) != 1 {
		t.Fatalf("expected one discovery response sent, got %d", len(log))
	}
	kind, _, err := wire.Decode(log[0])
	if err != nil || kind != wire.KindDiscoveryResp {
		t.Fatalf("expected DiscoveryResp, got kind=%v err=%v", kind, err)
	}
	if idx := svc.table.Find(tx); idx < 0 {
		t.Fatal("transmitter should now occupy a slot")
	}
}

func TestDiscoveryRequestRejectedDuringInitialPingWaitForUnknownTransmitter(t *testing.T) {
	svc, port, _ := newTestService(t)
	now := time.Unix(0, 0).Add(100 * time.Millisecond) // still within InitialPingWait

	tx := wire.MAC{3, 3, 3, 3, 3, 3}
	svc.HandleFrame(tx, wire.EncodeDiscoveryReq(wire.DiscoveryReqFrame{PedalMode: wire.Single}), 1, now)
	svc.Drain()

	if len(port.TxLog()) != 0 {
		t.Fatal("unknown transmitter should be rejected during the initial ping wait")
	}
}

func TestDiscoveryRequestRejectedWhenSlotsFull(t *testing.T) {
	svc, port, _ := newTestService(t)
	now := time.Unix(0, 0).Add(2 * time.Second)

	txA := wire.MAC{4, 4, 4, 4, 4, 1}
	txB := wire.MAC{4, 4, 4, 4, 4, 2}
	svc.HandleFrame(txA, wire.EncodeDiscoveryReq(wire.DiscoveryReqFrame{PedalMode: wire.Dual}), 1, now)
	svc.Drain()

	svc.HandleFrame(txB, wire.EncodeDiscoveryReq(wire.DiscoveryReqFrame{PedalMode: wire.Single}), 1, now)
	svc.Drain()

	if idx := svc.table.Find(txB); idx >= 0 {
		t.Fatal("second transmitter should have been rejected: a dual transmitter already fills both slots")
	}
	if len(port.TxLog()) != 1 {
		t.Fatalf("expected exactly one accepted discovery response, got %d", len(port.TxLog()))
	}
}

func TestAliveFromUnknownTransmitterIsIgnored(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.HandleFrame(wire.MAC{9, 9, 9, 9, 9, 9}, wire.EncodeAlive(wire.AliveFrame{}), 1, time.Unix(0, 0))
	svc.Drain()
	// No panic, no slot created: Alive only updates already-known transmitters.
	if idx := svc.table.Find(wire.MAC{9, 9, 9, 9, 9, 9}); idx >= 0 {
		t.Fatal("Alive from an unknown transmitter must not create a record")
	}
}

func TestDeleteRecordRemovesTransmitter(t *testing.T) {
	svc, _, _ := newTestService(t)
	now := time.Unix(0, 0).Add(2 * time.Second)
	tx := wire.MAC{5, 5, 5, 5, 5, 5}
	svc.HandleFrame(tx, wire.EncodeDiscoveryReq(wire.DiscoveryReqFrame{PedalMode: wire.Single}), 1, now)
	svc.Drain()

	if svc.table.Find(tx) < 0 {
		t.Fatal("setup: transmitter should be registered")
	}

	svc.HandleFrame(tx, wire.EncodeDeleteRecord(wire.DeleteRecordFrame{}), 1, now)
	if svc.table.Find(tx) >= 0 {
		t.Fatal("DeleteRecord should remove the transmitter's slot")
	}
}

func TestBeaconReflectsAvailableSlots(t *testing.T) {
	svc, port, _ := newTestService(t)
	now := time.Unix(0, 0).Add(2 * time.Second)
	svc.sendBeacon(now)
	svc.Drain()

	log := port.TxLog()
	if len(log) != 1 {
		t.Fatalf("expected one beacon, got %d", len(log))
	}
	_, payload, err := wire.Decode(log[0])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	beacon, err := wire.DecodeBeacon(payload)
	if err != nil {
		t.Fatalf("DecodeBeacon: %v", err)
	}
	if beacon.AvailableSlots != 2 || beacon.TotalSlots != 2 {
		t.Fatalf("got %+v, want 2/2 available on an empty table", beacon)
	}
}
