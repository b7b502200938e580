package ops

import "github.com/cubespace-aero/go-tctlm/errcode"

// BootStatus mirrors CommonFramework1.BootStatus: the single state byte
// poll_boot_state compares against its target.
type BootStatus struct {
	State byte
}

func decodeBootStatus(data []byte) (BootStatus, error) {
	if len(data) < 1 {
		return BootStatus{}, errcode.New("ops.decodeBootStatus", errcode.TLM_SIZE)
	}
	return BootStatus{State: data[0]}, nil
}

// BootloaderState mirrors Bootloader5.State: the application state byte
// poll_bootloader_state compares, plus the device's internal result code
// spec.md §4.4 says this poller "also surfaces".
type BootloaderState struct {
	AppState byte
	Result   byte
}

func decodeBootloaderState(data []byte) (BootloaderState, error) {
	if len(data) < 2 {
		return BootloaderState{}, errcode.New("ops.decodeBootloaderState", errcode.TLM_SIZE)
	}
	return BootloaderState{AppState: data[0], Result: data[1]}, nil
}

// Errors mirrors the Errors telemetry read when a choreographer's status
// poll reveals a device-internal error bit.
type Errors struct {
	Code  uint16
	Flags byte
}

func decodeErrors(data []byte) (Errors, error) {
	if len(data) < 3 {
		return Errors{}, errcode.New("ops.decodeErrors", errcode.TLM_SIZE)
	}
	return Errors{
		Code:  uint16(data[0]) | uint16(data[1])<<8,
		Flags: data[2],
	}, nil
}

// FileTransferStatus mirrors FileTransferStatus: the state byte compared by
// poll_ftp_state/poll_ftp_upgrade_state and the device's error code.
type FileTransferStatus struct {
	State     byte
	ErrorCode byte
}

func decodeFileTransferStatus(data []byte) (FileTransferStatus, error) {
	if len(data) < 2 {
		return FileTransferStatus{}, errcode.New("ops.decodeFileTransferStatus", errcode.TLM_SIZE)
	}
	return FileTransferStatus{State: data[0], ErrorCode: data[1]}, nil
}

// encodeFileTransferSetup builds the FileTransferSetup.opCode=... telecommand
// payload, appending the caller-built filter/params bytes verbatim.
func encodeFileTransferSetup(opCode byte, params []byte) []byte {
	out := make([]byte, 1+len(params))
	out[0] = opCode
	copy(out[1:], params)
	return out
}

// ImageState mirrors ImageState: the state byte compared by
// poll_image_state and the device's error code.
type ImageState struct {
	State     byte
	ErrorCode byte
}

func decodeImageState(data []byte) (ImageState, error) {
	if len(data) < 2 {
		return ImageState{}, errcode.New("ops.decodeImageState", errcode.TLM_SIZE)
	}
	return ImageState{State: data[0], ErrorCode: data[1]}, nil
}

// encodeImageSetup builds the image capture/download setup telecommand
// payload, appending any caller params (e.g. a file handle) verbatim.
func encodeImageSetup(opCode byte, params []byte) []byte {
	out := make([]byte, 1+len(params))
	out[0] = opCode
	copy(out[1:], params)
	return out
}

// EventState mirrors the event/log download status telemetry poll_event_state
// reads while waiting for QDOWNLOAD.
type EventState struct {
	State byte
}

func decodeEventState(data []byte) (EventState, error) {
	if len(data) < 1 {
		return EventState{}, errcode.New("ops.decodeEventState", errcode.TLM_SIZE)
	}
	return EventState{State: data[0]}, nil
}

// TlmState mirrors the generic telemetry-download status telemetry
// poll_tlm_state reads. spec.md §4.4 names this poller alongside the other
// six but no §4.5 choreographer binds it to a specific sequence; it is
// exposed for callers composing their own telemetry-log downloads.
type TlmState struct {
	State byte
}

func decodeTlmState(data []byte) (TlmState, error) {
	if len(data) < 1 {
		return TlmState{}, errcode.New("ops.decodeTlmState", errcode.TLM_SIZE)
	}
	return TlmState{State: data[0]}, nil
}

// ImageFileInfo mirrors one entry of the image-info walk: a stored image's
// handle, size, and its position in the walk (first/last/valid).
type ImageFileInfo struct {
	FileHandle uint32
	Size       uint32
	First      bool
	Last       bool
	Valid      bool
}

const (
	imageInfoFlagFirst byte = 1 << 0
	imageInfoFlagLast  byte = 1 << 1
	imageInfoFlagValid byte = 1 << 2
)

func decodeImageFileInfo(data []byte) (ImageFileInfo, error) {
	if len(data) < 9 {
		return ImageFileInfo{}, errcode.New("ops.decodeImageFileInfo", errcode.TLM_SIZE)
	}
	flags := data[8]
	return ImageFileInfo{
		FileHandle: leUint32(data[0:4]),
		Size:       leUint32(data[4:8]),
		First:      flags&imageInfoFlagFirst != 0,
		Last:       flags&imageInfoFlagLast != 0,
		Valid:      flags&imageInfoFlagValid != 0,
	}, nil
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
