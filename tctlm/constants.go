package tctlm

// msgType is the 5-bit message type embedded in bits 28-24 of the CAN
// extended identifier, and (for UART/CSP) tracked alongside the frame it
// tags (spec.md §6).
type msgType byte

const (
	typeNone       msgType = 0
	typeTC         msgType = 1
	typeTCResp     msgType = 2
	typeTCNack     msgType = 3
	typeTLM        msgType = 4
	typeTLMResp    msgType = 5
	typeTLMNack    msgType = 6
	typeTCExt      msgType = 7
	typeTLMRespExt msgType = 8
	typeEvent      msgType = 9
	typeUSOLFirst  msgType = 10
	typeUSOLBody   msgType = 11
	typeUSOLLast   msgType = 12
)

// CAN extended identifier field widths (spec.md §6).
const (
	canIDTypeShift = 24
	canIDIDShift   = 16
	canIDSrcShift  = 8
	canIDDstShift  = 0

	canFragPayload = 7 // payload bytes per non-terminal fragment
)

// handleBufSize is the fixed scratch buffer every carrier handle owns.
// 512 bytes comfortably covers the largest telemetry response the spec
// describes (BDT frame info plus header) without a per-request allocation.
const handleBufSize = 512

// UART framing bytes (spec.md §6).
const (
	uartEscape  = 0x1F
	uartTrailer = 0xFF
)

// uartValidSOM is the set of legal start-of-message bytes; see
// uartSOMTable in uart.go for what each one encodes.
var uartValidSOM = map[byte]bool{
	0x7F: true, 0x7E: true, 0x07: true, 0x06: true,
	0x0F: true, 0x0E: true, 0x2F: true, 0x4F: true,
}

// CSP ports carrying TCTLM traffic over CAN (spec.md §4.2).
const (
	cspPortTCTLM       = 8
	cspPortPassthrough = 48
)
