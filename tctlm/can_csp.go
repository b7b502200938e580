package tctlm

import (
	"github.com/cubespace-aero/go-tctlm/clock"
	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/errcode"
)

// CSP framing wraps the same TCTLM byte stream native CAN uses, but hands
// packetisation to the caller's CSP stack: the sub-header is [type:1 |
// tctlm_id:1] prepended to the payload, sent whole to cspPortTCTLM (or
// cspPortPassthrough), with no CAN-level fragmentation of our own (spec.md
// §4.2).
func (m *Master) sendReceiveCSP(ep endpoint.Endpoint, tctlmID byte, request []byte) ([]byte, error) {
	const op = "tctlm.sendReceiveCSP"
	h := &m.cspHandle
	h.reset(m.clock.NowMS())

	port := byte(cspPortTCTLM)
	if ep.Passthrough {
		port = cspPortPassthrough
	}

	tc := isTelecommand(tctlmID)
	reqType := typeTLM
	if tc {
		reqType = typeTC
	}

	frame := make([]byte, 2+len(request))
	frame[0] = byte(reqType)
	frame[1] = tctlmID
	copy(frame[2:], request)

	if err := m.csp.SendTo(ep.DestAddr(), port, ep.CSPSourcePort, frame, ep.Timeout); err != nil {
		return nil, errcode.Wrap(op, errcode.CSPSend, err)
	}

	deadline := h.busyStart
	for {
		n, err := m.csp.RecvFrom(ep.CSPSourcePort, h.buf[:], ep.Timeout)
		if err != nil {
			return nil, errcode.Wrap(op, errcode.CSPRecv, err)
		}
		if n < 2 {
			return nil, errcode.New(op, errcode.FRAME)
		}
		t := msgType(h.buf[0])
		payload := make([]byte, n-2)
		copy(payload, h.buf[2:n])

		switch t {
		case typeTCNack, typeTLMNack:
			if len(payload) < 1 {
				return nil, errcode.New(op, errcode.FRAME)
			}
			return nil, errcode.New(op, errcode.NACKReason(payload[0]))
		case typeTCResp, typeTLMResp:
			return payload, nil
		}

		if clock.Elapsed(m.clock.NowMS(), deadline) >= uint32(ep.Timeout.Milliseconds()) {
			return nil, errcode.New(op, errcode.TOUT)
		}
	}
}
