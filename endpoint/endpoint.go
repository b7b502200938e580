// Package endpoint defines the value type that parameterises every
// outgoing TCTLM request (spec.md §3).
package endpoint

import (
	"time"

	"github.com/cubespace-aero/go-tctlm/errcode"
)

// NodeType enumerates the CubeSpace products this library can address.
// Transport policy (inter-packet pacing on CAN, §4.2) depends on it.
type NodeType int

const (
	NodeInvalid NodeType = iota
	NodeCubeComputer
	NodeCubeSense
	NodeCubeControl
	NodeCubeStar
	NodeCubeTorquer
	NodeBootloader
)

// Carrier enumerates the physical link a request travels over.
type Carrier int

const (
	CarrierInvalid Carrier = iota
	CarrierCAN
	CarrierUART
	CarrierI2C // reserved, unimplemented per spec.md §9 Open Question 3
)

// Protocol enumerates the framing used on top of Carrier.
type Protocol int

const (
	ProtocolNative Protocol = iota // CubeSpace-native framing
	ProtocolCSP                    // CSP, legal only on CarrierCAN
)

// Endpoint parameterises one TCTLM request. It is a value type: constructed
// and mutated by the caller, consumed per-request, never retained by the
// transport (spec.md §3 Lifecycles).
type Endpoint struct {
	NodeType NodeType
	Carrier  Carrier
	Protocol Protocol

	// PrimaryAddr is the destination address (CAN) — ignored on UART.
	PrimaryAddr byte
	// PassthroughAddr is the CAN-only subordinate-node address used when
	// Passthrough is set.
	PassthroughAddr byte
	// CSPSourcePort is this endpoint's CSP source port, used only when
	// Protocol == ProtocolCSP.
	CSPSourcePort byte

	// Timeout bounds one request/response round trip.
	Timeout time.Duration

	// Passthrough selects the alternate start-of-message bytes (UART) or
	// alternate destination address/port (CAN/CSP) that route the request
	// through CubeComputer to a subordinate node.
	Passthrough bool
}

// Validate enforces the invariants spec.md §3 documents:
//   - CSP passthrough is forbidden on UART (CSP is CAN-only in the first
//     place, and passthrough is a distinct selector on top of it).
//   - Address fields are meaningless on UART, but Validate does not treat a
//     nonzero address on UART as an error — it simply documents that the
//     transport ignores it (see tctlm/uart.go).
func (e Endpoint) Validate() error {
	if e.Carrier == CarrierUART && e.Protocol == ProtocolCSP {
		return errcode.New("endpoint.Validate", errcode.USAGE)
	}
	if e.Carrier == CarrierInvalid || e.NodeType == NodeInvalid {
		return errcode.New("endpoint.Validate", errcode.PARAM)
	}
	if e.Protocol == ProtocolCSP && e.Carrier != CarrierCAN {
		return errcode.New("endpoint.Validate", errcode.USAGE)
	}
	return nil
}

// DestAddr returns the address a request should target: PassthroughAddr
// when Passthrough is set, PrimaryAddr otherwise.
func (e Endpoint) DestAddr() byte {
	if e.Passthrough {
		return e.PassthroughAddr
	}
	return e.PrimaryAddr
}
