package stub

import (
	"testing"
)

func TestSendRequiresRegisteredPeer(t *testing.T) {
	net := NewNetwork()
	a := New([6]byte{1}, net)
	a.Init()

	if a.Send([6]byte{2}, []byte{0x01}) {
		t.Fatal("Send to unregistered peer should fail")
	}
}

func TestUnicastDelivery(t *testing.T) {
	net := NewNetwork()
	a := New([6]byte{1}, net)
	b := New([6]byte{2}, net)
	a.Init()
	b.Init()

	var got []byte
	b.OnRecv(func(sender [6]byte, data []byte, channel uint8) {
		got = data
		if sender != [6]byte{1} {
			t.Errorf("sender = %v, want {1}", sender)
		}
	})

	a.RegisterPeer([6]byte{2}, 7)
	if !a.Send([6]byte{2}, []byte{0xAB}) {
		t.Fatal("Send should succeed")
	}
	if len(got) != 1 || got[0] != 0xAB {
		t.Fatalf("got %v", got)
	}
}

func TestBroadcastRequiresRegisteredBroadcastAddress(t *testing.T) {
	net := NewNetwork()
	a := New([6]byte{1}, net)
	a.Init()
	if a.Broadcast([]byte{1}) {
		t.Fatal("Broadcast without registering broadcast MAC should fail")
	}
}

func TestBroadcastReachesAllOtherPeers(t *testing.T) {
	net := NewNetwork()
	a := New([6]byte{1}, net)
	b := New([6]byte{2}, net)
	c := New([6]byte{3}, net)
	a.Init()
	b.Init()
	c.Init()

	var bGot, cGot bool
	b.OnRecv(func([6]byte, []byte, uint8) { bGot = true })
	c.OnRecv(func([6]byte, []byte, uint8) { cGot = true })

	a.RegisterPeer(broadcastMAC, 7)
	a.Broadcast([]byte{1})

	if !bGot || !cGot {
		t.Fatalf("broadcast should reach every other node: b=%v c=%v", bGot, cGot)
	}
}

func TestRegisterPeerIsIdempotent(t *testing.T) {
	a := New([6]byte{1}, nil)
	if err := a.RegisterPeer([6]byte{2}, 1); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := a.RegisterPeer([6]byte{2}, 1); err != nil {
		t.Fatalf("second register (idempotent) should also succeed: %v", err)
	}
}

func TestDropNextSendStillReportsSuccess(t *testing.T) {
	net := NewNetwork()
	a := New([6]byte{1}, net)
	b := New([6]byte{2}, net)
	a.Init()
	b.Init()

	var delivered bool
	b.OnRecv(func([6]byte, []byte, uint8) { delivered = true })

	a.RegisterPeer([6]byte{2}, 0)
	a.DropNextSend()
	if !a.Send([6]byte{2}, []byte{1}) {
		t.Fatal("enqueue should still report success on a transient drop")
	}
	if delivered {
		t.Fatal("frame should not have been delivered")
	}
}
