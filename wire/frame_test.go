package wire

import "testing"

func mustMAC(b byte) MAC {
	return MAC{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, b}
}

func TestBeaconRoundTrip(t *testing.T) {
	want := BeaconFrame{ReceiverMAC: mustMAC(0x01), AvailableSlots: 2, TotalSlots: 2}
	data := EncodeBeacon(want)

	kind, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if kind != KindBeacon {
		t.Fatalf("kind = %v, want Beacon", kind)
	}
	got, err := DecodeBeacon(payload)
	if err != nil {
		t.Fatalf("DecodeBeacon: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDiscoveryReqRoundTrip(t *testing.T) {
	want := DiscoveryReqFrame{PedalMode: Dual}
	data := EncodeDiscoveryReq(want)

	kind, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if kind != KindDiscoveryReq {
		t.Fatalf("kind = %v, want DiscoveryReq", kind)
	}
	got, err := DecodeDiscoveryReq(payload)
	if err != nil {
		t.Fatalf("DecodeDiscoveryReq: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestPedalEventRoundTrip(t *testing.T) {
	for _, want := range []PedalEventFrame{
		{Key: '1', Pressed: true, PedalMode: Single},
		{Key: '2', Pressed: false, PedalMode: Dual},
	} {
		data := EncodePedalEvent(want)
		kind, payload, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if kind != KindPedalEvent {
			t.Fatalf("kind = %v, want PedalEvent", kind)
		}
		got, err := DecodePedalEvent(payload)
		if err != nil {
			t.Fatalf("DecodePedalEvent: %v", err)
		}
		if got != want {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	}
}

func TestDeleteRecordRoundTrip(t *testing.T) {
	data := EncodeDeleteRecord(DeleteRecordFrame{})
	kind, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if kind != KindDeleteRecord {
		t.Fatalf("kind = %v, want DeleteRecord", kind)
	}
	if len(payload) != 0 {
		t.Fatalf("payload = %v, want empty", payload)
	}
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	data := EncodeBeacon(BeaconFrame{ReceiverMAC: mustMAC(1), AvailableSlots: 1, TotalSlots: 2})
	if _, _, err := Decode(data[:len(data)-1]); err == nil {
		t.Fatal("expected error for truncated buffer")
	}
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	data := EncodeAlive(AliveFrame{})
	data[0] = 0x7F
	if _, _, err := Decode(data); err != ErrUnknownKind {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
}

func TestDecodeRejectsBadCRC(t *testing.T) {
	data := EncodeDiscoveryResp(DiscoveryRespFrame{})
	data[len(data)-1] ^= 0xFF
	if _, _, err := Decode(data); err != ErrBadCRC {
		t.Fatalf("err = %v, want ErrBadCRC", err)
	}
}

func TestDecodeRejectsZeroMAC(t *testing.T) {
	data := EncodeTransmitterOnline(TransmitterOnlineFrame{TransmitterMAC: Zero})
	_, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, err := DecodeTransmitterOnline(payload); err != ErrBadAddress {
		t.Fatalf("err = %v, want ErrBadAddress", err)
	}
}

func TestMACValidity(t *testing.T) {
	if Zero.Valid() {
		t.Fatal("zero MAC should be invalid")
	}
	if Broadcast.Valid() {
		t.Fatal("broadcast MAC should be invalid as a unicast address")
	}
	if !mustMAC(1).Valid() {
		t.Fatal("ordinary MAC should be valid")
	}
}

func TestSlotsFor(t *testing.T) {
	if SlotsFor(Dual) != 2 {
		t.Fatalf("SlotsFor(Dual) = %d, want 2", SlotsFor(Dual))
	}
	if SlotsFor(Single) != 1 {
		t.Fatalf("SlotsFor(Single) = %d, want 1", SlotsFor(Single))
	}
}
