package tctlm

import (
	"github.com/cubespace-aero/go-tctlm/clock"
	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/errcode"
	"github.com/cubespace-aero/go-tctlm/link"
)

// buildExtID assembles the 29-bit extended identifier: [type:5 | id:8 |
// src:8 | dst:8] (spec.md §6).
func buildExtID(t msgType, tctlmID, src, dst byte) uint32 {
	return uint32(t)<<canIDTypeShift |
		uint32(tctlmID)<<canIDIDShift |
		uint32(src)<<canIDSrcShift |
		uint32(dst)<<canIDDstShift
}

func splitExtID(id uint32) (t msgType, tctlmID, src, dst byte) {
	t = msgType(id >> canIDTypeShift & 0x1F)
	tctlmID = byte(id >> canIDIDShift)
	src = byte(id >> canIDSrcShift)
	dst = byte(id >> canIDDstShift)
	return
}

// fragmentCount returns how many CAN packets a native-framed payload of n
// bytes needs once it no longer fits in a single 8-byte packet: 7 payload
// bytes per packet, the last one padded with a zero packets-left counter
// (spec.md §6, property P2).
func fragmentCount(n int) int {
	if n == 0 {
		return 1
	}
	return (n + canFragPayload - 1) / canFragPayload
}

func (m *Master) sendReceiveCAN(ep endpoint.Endpoint, tctlmID byte, request []byte) ([]byte, error) {
	const op = "tctlm.sendReceiveCAN"
	h := &m.canHandle
	h.reset(m.clock.NowMS())
	m.can.RxFlush()

	dst := ep.DestAddr()
	tc := isTelecommand(tctlmID)

	reqType := typeTLM
	if tc {
		if len(request) <= 8 {
			reqType = typeTC
		} else {
			reqType = typeTCExt
		}
	}

	pace := ep.NodeType == endpoint.NodeCubeComputer
	if err := m.canSend(reqType, tctlmID, dst, request, pace); err != nil {
		return nil, err
	}

	timeoutMS := uint32(ep.Timeout.Milliseconds())
	return m.canReceive(op, h, timeoutMS, tctlmID)
}

// canSend transmits the request; with pace set, it sleeps 1 ms between
// fragments of a multi-packet telecommand (CubeComputer needs the gap).
func (m *Master) canSend(t msgType, tctlmID, dst byte, payload []byte, pace bool) error {
	if t != typeTCExt {
		var pkt link.CANPacket
		pkt.Extended = true
		pkt.ExtID = buildExtID(t, tctlmID, m.hostAddr, dst)
		pkt.DLC = byte(len(payload))
		copy(pkt.Data[:], payload)
		return m.can.Tx(&pkt)
	}

	n := len(payload)
	packets := fragmentCount(n)
	off := 0
	for i := 0; i < packets; i++ {
		remaining := n - off
		chunk := canFragPayload
		if remaining < chunk {
			chunk = remaining
		}
		left := packets - i - 1

		var pkt link.CANPacket
		pkt.Extended = true
		pkt.ExtID = buildExtID(typeTCExt, tctlmID, m.hostAddr, dst)
		copy(pkt.Data[:chunk], payload[off:off+chunk])
		pkt.Data[chunk] = byte(left)
		pkt.DLC = byte(chunk + 1)
		if err := m.can.Tx(&pkt); err != nil {
			return err
		}
		off += chunk
		if pace && left > 0 {
			m.clock.DelayMS(1)
		}
	}
	return nil
}

// canReceive polls for the response, reassembling TLM_RESP_EXT fragments,
// until timeoutMS elapses since h.busyStart. Only the TCTLM id is checked
// against the outstanding request, matching the device-side master service:
// it ignores src/dst and lets a stray packet for a different id fall
// through to the next Rx.
func (m *Master) canReceive(op string, h *handle, timeoutMS uint32, wantID byte) ([]byte, error) {
	for {
		var pkt link.CANPacket
		err := m.can.Rx(&pkt)
		switch {
		case err == nil:
			t, id, _, _ := splitExtID(pkt.ExtID)
			if id != wantID {
				break
			}
			done, out, rerr := m.canConsume(h, t, pkt.Data[:pkt.DLC])
			if rerr != nil {
				return nil, rerr
			}
			if done {
				return out, nil
			}
		case errcode.CodeOf(err) == errcode.READ:
			// no packet yet; fall through to the timeout check below
		default:
			return nil, err
		}

		if clock.Elapsed(m.clock.NowMS(), h.busyStart) >= timeoutMS {
			return nil, errcode.New(op, errcode.TOUT)
		}
	}
}

// canConsume folds one received CAN packet into the handle's reassembly
// buffer, returning done=true once a complete response (or NACK) is ready.
func (m *Master) canConsume(h *handle, t msgType, data []byte) (done bool, out []byte, err error) {
	switch t {
	case typeTCNack, typeTLMNack:
		if len(data) < 1 {
			return false, nil, errcode.New("tctlm.canConsume", errcode.FRAME)
		}
		return true, nil, errcode.New("tctlm.canConsume", errcode.NACKReason(data[0]))

	case typeTLMRespExt:
		if len(data) == 0 {
			return false, nil, errcode.New("tctlm.canConsume", errcode.FRAME)
		}
		payload := data[:len(data)-1]
		left := data[len(data)-1]
		if h.usedLen+len(payload) > handleBufSize {
			return false, nil, errcode.New("tctlm.canConsume", errcode.OVRRUN)
		}
		copy(h.buf[h.usedLen:], payload)
		h.usedLen += len(payload)
		if left == 0 {
			out := make([]byte, h.usedLen)
			copy(out, h.buf[:h.usedLen])
			return true, out, nil
		}
		return false, nil, nil

	case typeTCResp, typeTLMResp:
		out := make([]byte, len(data))
		copy(out, data)
		return true, out, nil

	default:
		// A packet for a different exchange or an unrecognised type; the
		// caller keeps polling.
		return false, nil, nil
	}
}

