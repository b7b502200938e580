package tctlm

import (
	"time"

	"github.com/cubespace-aero/go-tctlm/errcode"
	"github.com/cubespace-aero/go-tctlm/link"
)

// mockClock is a fully manual clock.Clock: NowMS never advances on its own,
// only when the test calls advance or DelayMS is invoked.
type mockClock struct {
	now uint32
}

func (c *mockClock) NowMS() uint32     { return c.now }
func (c *mockClock) DelayMS(ms uint32) { c.now += ms }
func (c *mockClock) advance(ms uint32) { c.now += ms }

// mockCAN queues outbound packets it has sent and a scripted sequence of
// inbound packets to hand back from Rx, one per call. Once the queue is
// exhausted, Rx reports errcode.READ ("nothing available") forever, which
// lets a test drive the transport into a timeout.
type mockCAN struct {
	sent []link.CANPacket
	rx   []link.CANPacket
	clk  *mockClock
	tick uint32 // NowMS is advanced by this much on every empty Rx poll
}

func (c *mockCAN) RxFlush() {}

func (c *mockCAN) Rx(pkt *link.CANPacket) error {
	if len(c.rx) == 0 {
		if c.clk != nil {
			c.clk.advance(c.tick)
		}
		return errcode.New("mockCAN.Rx", errcode.READ)
	}
	*pkt = c.rx[0]
	c.rx = c.rx[1:]
	return nil
}

func (c *mockCAN) Tx(pkt *link.CANPacket) error {
	c.sent = append(c.sent, *pkt)
	return nil
}

// mockUART buffers everything written to it (Tx) and serves pre-loaded
// bytes back from Rx a few at a time, matching UARTHooks' "read < size is
// OK" contract.
type mockUART struct {
	tx    []byte
	rx    []byte
	clk   *mockClock
	tick  uint32
	chunk int // bytes served per Rx call; 0 means "serve everything at once"
}

func (u *mockUART) RxFlush() {}

func (u *mockUART) Rx(buf []byte, size int) (int, error) {
	if len(u.rx) == 0 {
		if u.clk != nil {
			u.clk.advance(u.tick)
		}
		return 0, nil
	}
	n := len(u.rx)
	if u.chunk > 0 && u.chunk < n {
		n = u.chunk
	}
	if n > size {
		n = size
	}
	copy(buf, u.rx[:n])
	u.rx = u.rx[n:]
	return n, nil
}

func (u *mockUART) Tx(buf []byte) error {
	u.tx = append(u.tx, buf...)
	return nil
}

var _ link.CANHooks = (*mockCAN)(nil)
var _ link.UARTHooks = (*mockUART)(nil)

func newTestMaster(clk *mockClock, can link.CANHooks, uart link.UARTHooks) *Master {
	return NewMaster(0x01, WithClock(clk), WithCAN(can), WithUART(uart))
}

// smallTimeout is used across tests to keep TOUT-triggering cases fast.
const smallTimeout = 50 * time.Millisecond
