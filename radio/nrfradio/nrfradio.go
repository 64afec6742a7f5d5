//go:build tinygo || baremetal

// Package nrfradio backs radio.Port with the nRF52 RADIO peripheral.
// Adapted from the teacher's driver/nrf package: that driver exposed a
// single-peer Tx/Rx pipe, while radio.Port needs a peer registry,
// broadcast, and an asynchronous receive callback. The register-level
// programming (HFCLK start, PCNF0/PCNF1, CRC, address base/prefix) is kept
// as-is; peer bookkeeping and the receive loop are new.
package nrfradio

import (
	"sync"
	"unsafe"

	"device/nrf"

	"github.com/openpedal/pedallink/radio"
)

const (
	maxFrameSize = 32 // generous upper bound on pedallink's largest wire frame

	defaultTxPower = nrf.RADIO_TXPOWER_TXPOWER_0dBm
	defaultMode    = nrf.RADIO_MODE_MODE_Nrf_1Mbit
)

// Driver is a radio.Port backed by real nRF52 radio hardware.
type Driver struct {
	mu      sync.Mutex
	address uint32
	prefix  byte
	channel uint8
	buffer  [maxFrameSize]byte

	peers map[[6]byte]uint8
	recv  radio.RecvFunc
}

// New creates an uninitialised nRF radio.Port. address/prefix/channel
// follow the same on-air addressing scheme as the teacher driver.
func New(address uint32, prefix byte, channel uint8) *Driver {
	return &Driver{
		address: address,
		prefix:  prefix,
		channel: channel,
		peers:   make(map[[6]byte]uint8),
	}
}

func (d *Driver) Init() error {
	startHFCLK()
	return configureRadio(d.address, d.prefix, d.channel)
}

func (d *Driver) RegisterPeer(mac [6]byte, channel uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.peers[mac] = channel
	return nil
}

func (d *Driver) Send(mac [6]byte, data []byte) bool {
	d.mu.Lock()
	_, known := d.peers[mac]
	d.mu.Unlock()
	if !known {
		return false
	}
	return d.transmit(data)
}

func (d *Driver) Broadcast(data []byte) bool {
	broadcast := [6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	d.mu.Lock()
	_, known := d.peers[broadcast]
	d.mu.Unlock()
	if !known {
		return false
	}
	return d.transmit(data)
}

func (d *Driver) OnRecv(cb radio.RecvFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recv = cb
}

// Poll drives one receive attempt and must be called from the main loop
// (never from an interrupt context); it dispatches to the registered
// callback when a frame arrives. The real hardware has no asynchronous
// receive interrupt wired up in this build, so the main loop is
// responsible for calling Poll on every iteration (§5).
func (d *Driver) Poll() {
	data, ok := d.receive()
	if !ok {
		return
	}
	d.mu.Lock()
	cb := d.recv
	d.mu.Unlock()
	if cb != nil {
		cb([6]byte{}, data, d.channel)
	}
}

func (d *Driver) transmit(data []byte) bool {
	if len(data) > maxFrameSize {
		return false
	}
	copy(d.buffer[:], data)

	nrf.RADIO.PACKETPTR.Set(uint32(uintptr(unsafe.Pointer(&d.buffer[0]))))
	nrf.RADIO.EVENTS_READY.Set(0)
	nrf.RADIO.EVENTS_END.Set(0)
	nrf.RADIO.TASKS_TXEN.Set(1)
	for nrf.RADIO.EVENTS_READY.Get() == 0 {
	}
	nrf.RADIO.TASKS_START.Set(1)
	for nrf.RADIO.EVENTS_END.Get() == 0 {
	}
	nrf.RADIO.TASKS_DISABLE.Set(1)
	for nrf.RADIO.STATE.Get() != nrf.RADIO_STATE_STATE_Disabled {
	}
	return true
}

func (d *Driver) receive() ([]byte, bool) {
	nrf.RADIO.PACKETPTR.Set(uint32(uintptr(unsafe.Pointer(&d.buffer[0]))))
	nrf.RADIO.EVENTS_READY.Set(0)
	nrf.RADIO.EVENTS_END.Set(0)
	nrf.RADIO.TASKS_RXEN.Set(1)
	for nrf.RADIO.EVENTS_READY.Get() == 0 {
	}
	nrf.RADIO.TASKS_START.Set(1)
	for nrf.RADIO.EVENTS_END.Get() == 0 {
	}
	nrf.RADIO.TASKS_DISABLE.Set(1)
	for nrf.RADIO.STATE.Get() != nrf.RADIO_STATE_STATE_Disabled {
	}
	out := make([]byte, maxFrameSize)
	copy(out, d.buffer[:])
	return out, true
}

func startHFCLK() {
	nrf.CLOCK.EVENTS_HFCLKSTARTED.Set(0)
	nrf.CLOCK.TASKS_HFCLKSTART.Set(1)
	for nrf.CLOCK.EVENTS_HFCLKSTARTED.Get() == 0 {
	}
}

func configureRadio(address uint32, prefix byte, channel uint8) error {
	nrf.RADIO.POWER.Set(1)
	nrf.RADIO.MODE.Set(defaultMode)
	nrf.RADIO.TXPOWER.Set(defaultTxPower)
	nrf.RADIO.FREQUENCY.Set(uint32(channel))

	nrf.RADIO.BASE0.Set(address)
	nrf.RADIO.PREFIX0.Set(uint32(prefix))
	nrf.RADIO.TXADDRESS.Set(0)
	nrf.RADIO.RXADDRESSES.Set(1)

	nrf.RADIO.PCNF0.Set(
		(8 << nrf.RADIO_PCNF0_LFLEN_Pos) |
			(0 << nrf.RADIO_PCNF0_S0LEN_Pos) |
			(0 << nrf.RADIO_PCNF0_S1LEN_Pos))

	nrf.RADIO.PCNF1.Set(
		(maxFrameSize << nrf.RADIO_PCNF1_MAXLEN_Pos) |
			(0 << nrf.RADIO_PCNF1_STATLEN_Pos) |
			(3 << nrf.RADIO_PCNF1_BALEN_Pos) |
			(nrf.RADIO_PCNF1_ENDIAN_Little << nrf.RADIO_PCNF1_ENDIAN_Pos))

	nrf.RADIO.CRCCNF.Set(1)
	nrf.RADIO.CRCINIT.Set(0xFF)
	nrf.RADIO.CRCPOLY.Set(0x107)

	return nil
}
