package wire

// Kind identifies one of the on-air message kinds (§4.1). Every frame
// starts with a 1-byte Kind.
type Kind byte

const (
	KindBeacon             Kind = 1
	KindDiscoveryReq       Kind = 2
	KindDiscoveryResp      Kind = 3
	KindAlive              Kind = 4
	KindTransmitterOnline  Kind = 5
	KindTransmitterPaired  Kind = 6
	KindPedalEvent         Kind = 7
	KindDeleteRecord       Kind = 8
	// KindPairingConfirmed is the "newer variant" frame §9 recommends over
	// overloading Alive as both invitation and confirmation.
	KindPairingConfirmed Kind = 9
)

func (k Kind) String() string {
	switch k {
	case KindBeacon:
		return "Beacon"
	case KindDiscoveryReq:
		return "DiscoveryReq"
	case KindDiscoveryResp:
		return "DiscoveryResp"
	case KindAlive:
		return "Alive"
	case KindTransmitterOnline:
		return "TransmitterOnline"
	case KindTransmitterPaired:
		return "TransmitterPaired"
	case KindPedalEvent:
		return "PedalEvent"
	case KindDeleteRecord:
		return "DeleteRecord"
	case KindPairingConfirmed:
		return "PairingConfirmed"
	default:
		return "Unknown"
	}
}

const (
	kindSize = 1
	crcSize  = 4

	beaconPayloadSize            = 6 + 1 + 1 // receiver_mac, available_slots, total_slots
	discoveryReqPayloadSize      = 1 + 1 + 1 // reserved, reserved, pedal_mode
	discoveryRespPayloadSize     = 1 + 1 + 1
	alivePayloadSize             = 1 + 1 + 1
	transmitterOnlinePayloadSize = 6 // transmitter_mac
	transmitterPairedPayloadSize = 6 + 6
	pedalEventPayloadSize        = 1 + 1 + 1 // key, pressed, pedal_mode
	deleteRecordPayloadSize      = 0
	pairingConfirmedPayloadSize  = 6 // receiver_mac

	// MaxFrameSize bounds the largest encoded frame (TransmitterPaired + CRC).
	MaxFrameSize = kindSize + transmitterPairedPayloadSize + crcSize
)

// Timing constants (§4.6, §4.7), in milliseconds unless noted.
const (
	InitialPingWait       = 1000
	GracePeriod           = 30000
	BeaconInterval        = 2000
	AliveResponseTimeout  = 2000
	DiscoveryResponseWait = 5000
)
