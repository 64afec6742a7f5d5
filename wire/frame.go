package wire

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
)

var (
	// ErrTooShort is returned when a buffer is shorter than its kind's minimum size.
	ErrTooShort = errors.New("wire: frame too short")
	// ErrUnknownKind is returned for an unrecognised msg_type byte.
	ErrUnknownKind = errors.New("wire: unknown frame kind")
	// ErrBadCRC is returned when the trailing CRC32 does not match the payload.
	ErrBadCRC = errors.New("wire: crc mismatch")
	// ErrBadAddress is returned when an embedded MAC is zero or broadcast
	// but the kind requires a real address.
	ErrBadAddress = errors.New("wire: invalid embedded address")
)

// BeaconFrame is broadcast by a receiver during the grace period (§4.6 Phase C).
type BeaconFrame struct {
	ReceiverMAC    MAC
	AvailableSlots uint8
	TotalSlots     uint8
}

// DiscoveryReqFrame is unicast by a transmitter to request pairing.
type DiscoveryReqFrame struct {
	PedalMode PedalMode
}

// DiscoveryRespFrame is unicast by a receiver accepting a DiscoveryReq.
type DiscoveryRespFrame struct{}

// AliveFrame is a liveness ping/invitation, directed either way.
type AliveFrame struct{}

// TransmitterOnlineFrame is broadcast by a transmitter on boot/wake.
type TransmitterOnlineFrame struct {
	TransmitterMAC MAC
}

// TransmitterPairedFrame is broadcast by a transmitter after a successful handshake.
type TransmitterPairedFrame struct {
	TransmitterMAC MAC
	ReceiverMAC    MAC
}

// PedalEventFrame carries a debounced pedal edge to the bonded receiver.
type PedalEventFrame struct {
	Key       byte
	Pressed   bool
	PedalMode PedalMode
}

// DeleteRecordFrame asks the receiver to evict the sender's bond.
type DeleteRecordFrame struct{}

// PairingConfirmedFrame is the dedicated "you're paired" confirmation (§9
// newer variant), distinct from Alive so Alive can mean "invitation" only.
type PairingConfirmedFrame struct {
	ReceiverMAC MAC
}

func putMAC(dst []byte, m MAC) { copy(dst, m[:]) }
func getMAC(src []byte) MAC {
	var m MAC
	copy(m[:], src)
	return m
}

func encode(kind Kind, payload []byte) []byte {
	total := kindSize + len(payload) + crcSize
	data := make([]byte, total)
	data[0] = byte(kind)
	copy(data[kindSize:], payload)
	crc := crc32.ChecksumIEEE(data[:kindSize+len(payload)])
	binary.LittleEndian.PutUint32(data[kindSize+len(payload):], crc)
	return data
}

// EncodeBeacon serialises a Beacon frame.
func EncodeBeacon(f BeaconFrame) []byte {
	p := make([]byte, beaconPayloadSize)
	putMAC(p[0:6], f.ReceiverMAC)
	p[6] = f.AvailableSlots
	p[7] = f.TotalSlots
	return encode(KindBeacon, p)
}

// EncodeDiscoveryReq serialises a DiscoveryReq frame.
func EncodeDiscoveryReq(f DiscoveryReqFrame) []byte {
	p := make([]byte, discoveryReqPayloadSize)
	p[2] = byte(f.PedalMode)
	return encode(KindDiscoveryReq, p)
}

// EncodeDiscoveryResp serialises a DiscoveryResp frame.
func EncodeDiscoveryResp(DiscoveryRespFrame) []byte {
	return encode(KindDiscoveryResp, make([]byte, discoveryRespPayloadSize))
}

// EncodeAlive serialises an Alive frame.
func EncodeAlive(AliveFrame) []byte {
	return encode(KindAlive, make([]byte, alivePayloadSize))
}

// EncodeTransmitterOnline serialises a TransmitterOnline frame.
func EncodeTransmitterOnline(f TransmitterOnlineFrame) []byte {
	p := make([]byte, transmitterOnlinePayloadSize)
	putMAC(p, f.TransmitterMAC)
	return encode(KindTransmitterOnline, p)
}

// EncodeTransmitterPaired serialises a TransmitterPaired frame.
func EncodeTransmitterPaired(f TransmitterPairedFrame) []byte {
	p := make([]byte, transmitterPairedPayloadSize)
	putMAC(p[0:6], f.TransmitterMAC)
	putMAC(p[6:12], f.ReceiverMAC)
	return encode(KindTransmitterPaired, p)
}

// EncodePedalEvent serialises a PedalEvent frame.
func EncodePedalEvent(f PedalEventFrame) []byte {
	p := make([]byte, pedalEventPayloadSize)
	p[0] = f.Key
	if f.Pressed {
		p[1] = 1
	}
	p[2] = byte(f.PedalMode)
	return encode(KindPedalEvent, p)
}

// EncodeDeleteRecord serialises a DeleteRecord frame.
func EncodeDeleteRecord(DeleteRecordFrame) []byte {
	return encode(KindDeleteRecord, nil)
}

// EncodePairingConfirmed serialises a PairingConfirmed frame.
func EncodePairingConfirmed(f PairingConfirmedFrame) []byte {
	p := make([]byte, pairingConfirmedPayloadSize)
	putMAC(p, f.ReceiverMAC)
	return encode(KindPairingConfirmed, p)
}

func minSizeFor(kind Kind) (int, bool) {
	switch kind {
	case KindBeacon:
		return beaconPayloadSize, true
	case KindDiscoveryReq:
		return discoveryReqPayloadSize, true
	case KindDiscoveryResp:
		return discoveryRespPayloadSize, true
	case KindAlive:
		return alivePayloadSize, true
	case KindTransmitterOnline:
		return transmitterOnlinePayloadSize, true
	case KindTransmitterPaired:
		return transmitterPairedPayloadSize, true
	case KindPedalEvent:
		return pedalEventPayloadSize, true
	case KindDeleteRecord:
		return deleteRecordPayloadSize, true
	case KindPairingConfirmed:
		return pairingConfirmedPayloadSize, true
	default:
		return 0, false
	}
}

// Decode validates a received buffer's length and CRC, and returns its kind
// plus the raw payload (kind byte and CRC trailer stripped). Unknown kinds,
// short buffers, and CRC mismatches are reported as errors; callers that
// want spec §7's "drop silently" policy should treat any error as a drop.
func Decode(data []byte) (Kind, []byte, error) {
	if len(data) < kindSize+crcSize {
		return 0, nil, ErrTooShort
	}
	kind := Kind(data[0])
	minPayload, ok := minSizeFor(kind)
	if !ok {
		return 0, nil, ErrUnknownKind
	}
	want := kindSize + minPayload + crcSize
	if len(data) < want {
		return 0, nil, ErrTooShort
	}
	payload := data[kindSize : kindSize+minPayload]
	gotCRC := binary.LittleEndian.Uint32(data[kindSize+minPayload : want])
	wantCRC := crc32.ChecksumIEEE(data[:kindSize+minPayload])
	if gotCRC != wantCRC {
		return 0, nil, ErrBadCRC
	}
	return kind, payload, nil
}

// DecodeBeacon parses a Beacon payload previously returned by Decode.
func DecodeBeacon(payload []byte) (BeaconFrame, error) {
	f := BeaconFrame{
		ReceiverMAC:    getMAC(payload[0:6]),
		AvailableSlots: payload[6],
		TotalSlots:     payload[7],
	}
	if !f.ReceiverMAC.Valid() {
		return BeaconFrame{}, ErrBadAddress
	}
	return f, nil
}

// DecodeDiscoveryReq parses a DiscoveryReq payload.
func DecodeDiscoveryReq(payload []byte) (DiscoveryReqFrame, error) {
	return DiscoveryReqFrame{PedalMode: PedalMode(payload[2])}, nil
}

// DecodeTransmitterOnline parses a TransmitterOnline payload.
func DecodeTransmitterOnline(payload []byte) (TransmitterOnlineFrame, error) {
	f := TransmitterOnlineFrame{TransmitterMAC: getMAC(payload[0:6])}
	if !f.TransmitterMAC.Valid() {
		return TransmitterOnlineFrame{}, ErrBadAddress
	}
	return f, nil
}

// DecodeTransmitterPaired parses a TransmitterPaired payload.
func DecodeTransmitterPaired(payload []byte) (TransmitterPairedFrame, error) {
	f := TransmitterPairedFrame{
		TransmitterMAC: getMAC(payload[0:6]),
		ReceiverMAC:    getMAC(payload[6:12]),
	}
	if !f.TransmitterMAC.Valid() || !f.ReceiverMAC.Valid() {
		return TransmitterPairedFrame{}, ErrBadAddress
	}
	return f, nil
}

// DecodePedalEvent parses a PedalEvent payload.
func DecodePedalEvent(payload []byte) (PedalEventFrame, error) {
	return PedalEventFrame{
		Key:       payload[0],
		Pressed:   payload[1] != 0,
		PedalMode: PedalMode(payload[2]),
	}, nil
}

// DecodePairingConfirmed parses a PairingConfirmed payload.
func DecodePairingConfirmed(payload []byte) (PairingConfirmedFrame, error) {
	f := PairingConfirmedFrame{ReceiverMAC: getMAC(payload[0:6])}
	if !f.ReceiverMAC.Valid() {
		return PairingConfirmedFrame{}, ErrBadAddress
	}
	return f, nil
}
