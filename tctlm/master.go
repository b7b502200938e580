package tctlm

import (
	"github.com/cubespace-aero/go-tctlm/clock"
	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/errcode"
	"github.com/cubespace-aero/go-tctlm/link"
	"github.com/cubespace-aero/go-tctlm/obclog"
)

// Master is the request/response transport. It is safe for concurrent use
// across endpoints on different carriers; two goroutines sharing a carrier
// must serialize their own calls (spec.md §5).
type Master struct {
	hostAddr byte
	clock    clock.Clock
	log      obclog.Logger

	can  link.CANHooks
	uart link.UARTHooks
	csp  link.CSPHooks

	canHandle  handle
	uartHandle handle
	cspHandle  handle
}

// Option configures a Master at construction time.
type Option func(*Master)

// WithCAN wires the CAN link driver.
func WithCAN(h link.CANHooks) Option { return func(m *Master) { m.can = h } }

// WithUART wires the UART link driver.
func WithUART(h link.UARTHooks) Option { return func(m *Master) { m.uart = h } }

// WithCSP wires the CSP link driver.
func WithCSP(h link.CSPHooks) Option { return func(m *Master) { m.csp = h } }

// WithClock overrides the default wall-clock time source. Tests use this to
// inject a fake clock.
func WithClock(c clock.Clock) Option { return func(m *Master) { m.clock = c } }

// WithLogger attaches a logger. The default is obclog.Nop().
func WithLogger(l obclog.Logger) Option { return func(m *Master) { m.log = l } }

// NewMaster constructs a Master addressed as hostAddr on the bus. Carriers
// left unconfigured fall back to link.NotImplemented* defaults, so a build
// exercising only UART need not touch CAN or CSP at all.
func NewMaster(hostAddr byte, opts ...Option) *Master {
	m := &Master{
		hostAddr: hostAddr,
		clock:    clock.Real(),
		log:      obclog.Nop(),
		can:      link.NotImplementedCAN{},
		uart:     link.NotImplementedUART{},
		csp:      link.NotImplementedCSP{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SendReceive sends a TCTLM request identified by tctlmID, carrying
// request, to ep, and returns the payload of the matching response.
//
// tctlmID < 128 is a telecommand; >= 128 is a telemetry. A NACK response
// surfaces as an *errcode.Error whose Code is the decoded TCTLM_* reason
// (errcode.NACKReason); a round trip that never completes surfaces as
// errcode.TOUT (spec.md §4.2, §7).
func (m *Master) SendReceive(ep endpoint.Endpoint, tctlmID byte, request []byte) ([]byte, error) {
	const op = "tctlm.Master.SendReceive"
	if err := ep.Validate(); err != nil {
		return nil, err
	}
	if len(request) > handleBufSize-8 {
		return nil, errcode.New(op, errcode.SIZE)
	}

	switch {
	case ep.Carrier == endpoint.CarrierCAN && ep.Protocol == endpoint.ProtocolCSP:
		return m.sendReceiveCSP(ep, tctlmID, request)
	case ep.Carrier == endpoint.CarrierCAN:
		return m.sendReceiveCAN(ep, tctlmID, request)
	case ep.Carrier == endpoint.CarrierUART:
		return m.sendReceiveUART(ep, tctlmID, request)
	default:
		return nil, errcode.New(op, errcode.TCTLMNotImplemented)
	}
}

// isTelecommand reports whether tctlmID addresses a telecommand (< 128, per
// spec.md §3) as opposed to a telemetry.
func isTelecommand(tctlmID byte) bool { return tctlmID < 128 }
