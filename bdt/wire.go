package bdt

import "github.com/cubespace-aero/go-tctlm/errcode"

// maxFrameSize is BDT_MAX_FRAME_SIZE: the largest payload one BDT frame
// carries.
const maxFrameSize = 256

// frameInfo mirrors the FrameInfo telemetry: the device's view of the
// frame cursor, whether this is the last frame of the transfer, whether it
// flagged an internal error, and the checksum of the last frame it
// received (meaningful only on upload).
type frameInfo struct {
	frameNumber uint16
	frameLast   bool
	frameError  bool
	checkSum    byte
}

// decodeFrameInfo parses a FrameInfo response: [number_lo, number_hi,
// flags, checksum], flags bit0 = last, bit1 = error.
func decodeFrameInfo(data []byte) (frameInfo, error) {
	if len(data) < 4 {
		return frameInfo{}, errcode.New("bdt.decodeFrameInfo", errcode.TLM_SIZE)
	}
	flags := data[2]
	return frameInfo{
		frameNumber: uint16(data[0]) | uint16(data[1])<<8,
		frameLast:   flags&0x01 != 0,
		frameError:  flags&0x02 != 0,
		checkSum:    data[3],
	}, nil
}

// encodeTransferFrame builds the TransferFrame(n) setter payload.
func encodeTransferFrame(n uint16) []byte {
	return []byte{byte(n), byte(n >> 8)}
}

// decodeFrame parses a Frame response: [size_lo, size_hi, bytes...].
func decodeFrame(data []byte) (size int, payload []byte, err error) {
	if len(data) < 2 {
		return 0, nil, errcode.New("bdt.decodeFrame", errcode.TLM_SIZE)
	}
	size = int(data[0]) | int(data[1])<<8
	if size > maxFrameSize {
		return 0, nil, errcode.New("bdt.decodeFrame", errcode.TLM_SIZE)
	}
	if len(data)-2 < size {
		return 0, nil, errcode.New("bdt.decodeFrame", errcode.TLM_SIZE)
	}
	return size, data[2 : 2+size], nil
}

// encodeFrame builds the Frame setter payload: [size_lo, size_hi, bytes...].
func encodeFrame(buf []byte) []byte {
	out := make([]byte, 2+len(buf))
	out[0] = byte(len(buf))
	out[1] = byte(len(buf) >> 8)
	copy(out[2:], buf)
	return out
}

// checksum is the BDT frame checksum: XOR over every payload byte, seeded
// 0xFF. It is named checkSum on the wire but is not a CRC; this is a
// literal reading of spec.md §9's note that the field name overstates what
// the algorithm actually does.
func checksum(buf []byte) byte {
	c := byte(0xFF)
	for _, b := range buf {
		c ^= b
	}
	return c
}
