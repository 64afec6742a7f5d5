// Package stub provides an in-memory radio.Port backing for the host
// toolchain: unit tests and the host builds of cmd/transmitter and
// cmd/receiver.
// Grounded on the teacher's driver/stub.Driver ring-buffer design, adapted
// from a single-peer packet pipe to the peer-registry + broadcast shape
// radio.Port requires.
package stub

import (
	"sync"

	"github.com/openpedal/pedallink/radio"
)

// Network is a shared simulated air: every Port joined to the same Network
// can unicast or broadcast to every other joined Port.
type Network struct {
	mu    sync.Mutex
	nodes map[[6]byte]*Port
}

// NewNetwork creates an empty simulated air.
func NewNetwork() *Network {
	return &Network{nodes: make(map[[6]byte]*Port)}
}

func (n *Network) join(p *Port) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nodes[p.mac] = p
}

func (n *Network) lookup(mac [6]byte) *Port {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.nodes[mac]
}

func (n *Network) all() []*Port {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Port, 0, len(n.nodes))
	for _, p := range n.nodes {
		out = append(out, p)
	}
	return out
}

var broadcastMAC = [6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// Port is a host-side radio.Port backed by a Network (or standing alone,
// driven only by InjectRx, for codec-level tests that don't need a peer).
type Port struct {
	mu       sync.Mutex
	mac      [6]byte
	network  *Network
	peers    map[[6]byte]uint8
	recv     radio.RecvFunc
	txLog    [][]byte
	dropNext bool
}

// New creates a Port with the given node address. Pass a shared Network to
// let it exchange frames with other Ports, or nil for a standalone port
// driven purely by InjectRx/TxLog in unit tests.
func New(mac [6]byte, network *Network) *Port {
	return &Port{
		mac:     mac,
		network: network,
		peers:   make(map[[6]byte]uint8),
	}
}

func (p *Port) Init() error {
	if p.network != nil {
		p.network.join(p)
	}
	return nil
}

func (p *Port) RegisterPeer(mac [6]byte, channel uint8) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.peers[mac] = channel // idempotent: re-registering just overwrites the channel hint
	return nil
}

func (p *Port) Send(mac [6]byte, data []byte) bool {
	if mac == broadcastMAC {
		return p.Broadcast(data)
	}
	p.mu.Lock()
	if _, known := p.peers[mac]; !known {
		p.mu.Unlock()
		return false
	}
	channel := p.peers[mac]
	frame := append([]byte(nil), data...)
	p.txLog = append(p.txLog, frame)
	drop := p.dropNext
	p.dropNext = false
	p.mu.Unlock()

	if drop || p.network == nil {
		return true
	}
	target := p.network.lookup(mac)
	if target == nil {
		return true // enqueue succeeded even though nothing is listening
	}
	target.deliver(p.mac, frame, channel)
	return true
}

func (p *Port) Broadcast(data []byte) bool {
	p.mu.Lock()
	if _, known := p.peers[broadcastMAC]; !known {
		p.mu.Unlock()
		return false
	}
	channel := p.peers[broadcastMAC]
	frame := append([]byte(nil), data...)
	p.txLog = append(p.txLog, frame)
	p.mu.Unlock()

	if p.network == nil {
		return true
	}
	for _, other := range p.network.all() {
		if other.mac == p.mac {
			continue
		}
		other.deliver(p.mac, frame, channel)
	}
	return true
}

func (p *Port) OnRecv(cb radio.RecvFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recv = cb
}

func (p *Port) deliver(sender [6]byte, data []byte, channel uint8) {
	p.mu.Lock()
	cb := p.recv
	p.mu.Unlock()
	if cb != nil {
		cb(sender, data, channel)
	}
}

// InjectRx delivers a frame to this port as if it had arrived over the air,
// bypassing any Network. Useful for single-sided unit tests.
func (p *Port) InjectRx(sender [6]byte, data []byte, channel uint8) {
	p.deliver(sender, data, channel)
}

// TxLog returns a copy of every frame this port has sent, in send order.
func (p *Port) TxLog() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.txLog))
	for i, f := range p.txLog {
		out[i] = append([]byte(nil), f...)
	}
	return out
}

// DropNextSend makes the very next Send report success to the caller (an
// enqueue is not a delivery guarantee) without actually delivering the
// frame, for exercising §7's "transient send failure" policy.
func (p *Port) DropNextSend() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dropNext = true
}
