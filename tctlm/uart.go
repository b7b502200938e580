package tctlm

import (
	"github.com/cubespace-aero/go-tctlm/clock"
	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/errcode"
)

// UART framing has no CAN-style 8-byte packet ceiling, so a frame is just
//
//	0x1F <SOM> <tctlm_id> <escaped payload...> 0x1F 0xFF
//
// with every literal 0x1F inside the payload doubled to disambiguate it
// from the trailer (spec.md §6). The header carries no separate
// message-type field; SOM itself is the type: a request (host to device)
// uses the req/resp SOM, a successful reply uses the ack SOM, a failed one
// the nack SOM, and each of those has a normal and a passthrough variant.
// Event and unsolicited pushes get one SOM apiece, with no passthrough
// variant.
const (
	uartSOMReqRespNormal = 0x7F
	uartSOMReqRespPass   = 0x7E
	uartSOMAckNormal     = 0x07
	uartSOMAckPass       = 0x06
	uartSOMNackNormal    = 0x0F
	uartSOMNackPass      = 0x0E
	uartSOMEvent         = 0x2F
	uartSOMUnsolicited   = 0x4F
)

func uartRequestSOM(passthrough bool) byte {
	if passthrough {
		return uartSOMReqRespPass
	}
	return uartSOMReqRespNormal
}

// uartClassifySOM reports what kind of frame a received SOM introduces.
type uartFrameKind int

const (
	uartKindOther uartFrameKind = iota
	uartKindAck
	uartKindNack
)

func uartClassifySOM(som byte) uartFrameKind {
	switch som {
	case uartSOMAckNormal, uartSOMAckPass:
		return uartKindAck
	case uartSOMNackNormal, uartSOMNackPass:
		return uartKindNack
	default:
		return uartKindOther
	}
}

func (m *Master) sendReceiveUART(ep endpoint.Endpoint, tctlmID byte, request []byte) ([]byte, error) {
	const op = "tctlm.sendReceiveUART"
	h := &m.uartHandle
	h.reset(m.clock.NowMS())
	m.uart.RxFlush()

	som := uartRequestSOM(ep.Passthrough)
	frame := uartEncodeFrame(som, tctlmID, request)
	if err := m.uart.Tx(frame); err != nil {
		return nil, err
	}

	return m.uartReceive(op, h, uint32(ep.Timeout.Milliseconds()), tctlmID)
}

// uartEncodeFrame builds a complete on-wire frame: header, escape-doubled
// tctlm_id + payload, trailer.
func uartEncodeFrame(som, tctlmID byte, payload []byte) []byte {
	out := make([]byte, 0, len(payload)*2+6)
	out = append(out, uartEscape, som)
	out = uartAppendEscaped(out, tctlmID)
	for _, b := range payload {
		out = uartAppendEscaped(out, b)
	}
	out = append(out, uartEscape, uartTrailer)
	return out
}

func uartAppendEscaped(out []byte, b byte) []byte {
	if b == uartEscape {
		return append(out, uartEscape, uartEscape)
	}
	return append(out, b)
}

type uartDecodeState int

const (
	uartWaitEscape uartDecodeState = iota
	uartWaitSOM
	uartInFrame
	uartSawEscape // saw a 0x1F inside the frame body; next byte disambiguates
)

// uartFrameDecoder folds one incoming byte at a time into a decoded frame,
// mirroring how a bare UART Rx callback would be consumed against a
// protocol with no length prefix.
type uartFrameDecoder struct {
	state   uartDecodeState
	som     byte
	id      byte
	haveID  bool
	payload []byte
}

// event is what feed learned from the last byte.
type uartEvent int

const (
	uartNoEvent uartEvent = iota
	uartFrameDone
)

// feed processes one raw byte. On uartFrameDone, som/id/payload hold the
// completed frame and the decoder is already waiting for the next frame's
// escape byte; som/id/payload stay valid until the next SOM is fed.
func (d *uartFrameDecoder) feed(b byte) uartEvent {
	switch d.state {
	case uartWaitEscape:
		if b == uartEscape {
			d.state = uartWaitSOM
		}
		return uartNoEvent

	case uartWaitSOM:
		if !uartValidSOM[b] {
			d.state = uartWaitEscape
			return uartNoEvent
		}
		d.som = b
		d.haveID = false
		d.payload = d.payload[:0]
		d.state = uartInFrame
		return uartNoEvent

	case uartInFrame:
		if b == uartEscape {
			d.state = uartSawEscape
			return uartNoEvent
		}
		d.appendByte(b)
		return uartNoEvent

	case uartSawEscape:
		switch b {
		case uartTrailer:
			d.state = uartWaitEscape
			return uartFrameDone
		case uartEscape:
			d.appendByte(uartEscape)
			d.state = uartInFrame
			return uartNoEvent
		default:
			// Malformed: 0x1F not followed by itself or the trailer.
			// Resync on the next frame start.
			d.state = uartWaitEscape
			return uartNoEvent
		}
	}
	return uartNoEvent
}

func (d *uartFrameDecoder) appendByte(b byte) {
	if !d.haveID {
		d.id = b
		d.haveID = true
		return
	}
	d.payload = append(d.payload, b)
}

func (m *Master) uartReceive(op string, h *handle, timeoutMS uint32, wantID byte) ([]byte, error) {
	dec := &uartFrameDecoder{}

	for {
		n, err := m.uart.Rx(h.buf[:], len(h.buf))
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			if dec.feed(h.buf[i]) != uartFrameDone {
				continue
			}
			out, rerr := m.uartFinish(op, dec, wantID)
			if out != nil || rerr != nil {
				return out, rerr
			}
			// Not this request's response — an echo, an event, an
			// unsolicited push, or someone else's exchange. Keep
			// listening.
		}

		if clock.Elapsed(m.clock.NowMS(), h.busyStart) >= timeoutMS {
			return nil, errcode.New(op, errcode.TOUT)
		}
	}
}

// uartFinish interprets a fully-delimited frame: classifies SOM, confirms
// the tctlm_id matches the outstanding request, and extracts the payload or
// decodes the NACK reason. Returns (nil, nil) if the frame is not this
// request's response (caller keeps listening).
func (m *Master) uartFinish(op string, dec *uartFrameDecoder, wantID byte) ([]byte, error) {
	if !dec.haveID || dec.id != wantID {
		return nil, nil
	}
	switch uartClassifySOM(dec.som) {
	case uartKindNack:
		if len(dec.payload) < 1 {
			return nil, errcode.New(op, errcode.FRAME)
		}
		return nil, errcode.New(op, errcode.NACKReason(dec.payload[0]))
	case uartKindAck:
		out := make([]byte, len(dec.payload))
		copy(out, dec.payload)
		return out, nil
	default:
		return nil, nil
	}
}
