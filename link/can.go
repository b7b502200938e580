package link

import "github.com/cubespace-aero/go-tctlm/errcode"

// CANPacket is one 29-bit extended-ID CAN frame (spec.md §3/§6). StdID is
// carried for completeness but unused by this library — every request the
// transport builds uses an extended identifier.
type CANPacket struct {
	ExtID    uint32 // 29 significant bits
	StdID    uint16 // 11 significant bits, unused
	Extended bool
	DLC      byte // 0..8
	Data     [8]byte
}

// CANHooks is the caller-supplied non-blocking CAN link. can_rx returning
// errcode.READ signals "no packet available right now" — the master
// transport's receive loop treats that as a reason to poll again, not a
// hard failure.
type CANHooks interface {
	// RxFlush discards any buffered/queued rx packets before a new
	// request begins.
	RxFlush()

	// Rx attempts to read one packet without blocking. Returns
	// errcode.READ when no packet is currently available.
	Rx(pkt *CANPacket) error

	// Tx transmits one packet, blocking until the bus driver accepts it.
	// Returns errcode.WRITE on failure.
	Tx(pkt *CANPacket) error
}

// NotImplementedCAN is the default CANHooks used when a build has no CAN
// driver wired in. Every call returns the distinguished not-implemented
// code so a partial build stays linkable but fails loudly at first use.
type NotImplementedCAN struct{}

func (NotImplementedCAN) RxFlush() {}

func (NotImplementedCAN) Rx(*CANPacket) error {
	return errcode.New("link.CAN.Rx", errcode.TCTLMNotImplemented)
}

func (NotImplementedCAN) Tx(*CANPacket) error {
	return errcode.New("link.CAN.Tx", errcode.TCTLMNotImplemented)
}
