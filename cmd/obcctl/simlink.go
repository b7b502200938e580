package main

import (
	"github.com/cubespace-aero/go-tctlm/endpoint"
)

// TCTLM ids mirrored from bdt/ids.go and ops/constants.go, which are
// unexported placeholders. simDevice is a stand-in for real hardware, so
// it has to agree with those same placeholder values to answer sensibly.
const (
	idTransferFrame     = 0x10
	idFrameInfo         = 0x90
	idFrame             = 0x11
	idSetWriteFileSetup = 0x20
	idBootloaderState   = 0x82
	idErrors            = 0x83
)

const stateBusyWaitFrame byte = 1

// simDevice is a minimal in-memory stand-in for a CubeComputer bootloader,
// just enough to drive one UploadToBootloader run end to end: the demo has
// no real CAN/UART hardware to talk to, in the spirit of the teacher's
// examples/with_progress MockDevice.
type simDevice struct {
	bootloaderAppState byte
	lastFrame          []byte
	frameNumber        uint16
}

func (d *simDevice) SendReceive(ep endpoint.Endpoint, tctlmID byte, request []byte) ([]byte, error) {
	switch tctlmID {
	case idSetWriteFileSetup:
		d.bootloaderAppState = stateBusyWaitFrame
		return []byte{}, nil

	case idBootloaderState:
		return []byte{d.bootloaderAppState, 0}, nil

	case idErrors:
		return []byte{0, 0, 0}, nil

	case idFrame:
		if len(request) < 2 {
			d.lastFrame = nil
			return []byte{}, nil
		}
		size := int(request[0]) | int(request[1])<<8
		d.lastFrame = append([]byte(nil), request[2:2+size]...)
		return []byte{}, nil

	case idFrameInfo:
		return []byte{
			byte(d.frameNumber), byte(d.frameNumber >> 8),
			0, // flags: not last, no frame error
			checksumOf(d.lastFrame),
		}, nil

	case idTransferFrame:
		if len(request) >= 2 {
			d.frameNumber = uint16(request[0]) | uint16(request[1])<<8
		}
		return []byte{}, nil

	default:
		return []byte{}, nil
	}
}

func checksumOf(buf []byte) byte {
	c := byte(0xFF)
	for _, b := range buf {
		c ^= b
	}
	return c
}
