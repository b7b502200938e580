// Package errcode defines the stable error taxonomy exposed at the API
// boundary (spec.md §6/§7) and the structured error type that carries it.
//
// Values are stable across releases: test vectors and callers depend on the
// numeric codes, not just the Go error string.
package errcode

// Code is a stable, small integer error taxonomy shared by every layer of
// the module: transport, BDT, and operation choreographers.
type Code uint16

const (
	OK             Code = 0
	NULLPTR        Code = 1
	SIZE           Code = 2
	SIZEL          Code = 3
	SIZEH          Code = 4
	OVRRUN         Code = 5
	PARAM          Code = 6
	TOUT           Code = 7
	NACK           Code = 8
	BUSY           Code = 9
	FRAME          Code = 10
	CRC            Code = 11
	READ           Code = 12
	WRITE          Code = 13
	CAN_ID         Code = 14
	CAN_ERR        Code = 15
	UKN_NACK       Code = 16
	NODE_TYPE      Code = 17
	FTP            Code = 18
	USAGE          Code = 19
	AUTOD          Code = 20
	IMG            Code = 21
	EXIST          Code = 22
	USER_DATA      Code = 23
	COMMIT         Code = 24
	TCTLM_PROTOCOL Code = 25
	UNKNOWN        Code = 26
	TLM_SIZE       Code = 27
	TCTLM_ID       Code = 28

	// TCTLM_* kinds (50-59) are NACK reasons decoded from the device's
	// single-byte NACK payload; see nack.go.
	TCTLMInvalidID      Code = 50
	TCTLMInvalidLength  Code = 51
	TCTLMInvalidParam   Code = 52
	TCTLMCRC            Code = 53
	TCTLMNotImplemented Code = 54
	TCTLMBusy           Code = 55
	TCTLMSequence       Code = 56
	TCTLMInternal       Code = 57
	TCTLMPassTimeout    Code = 58
	TCTLMPassTarget     Code = 59

	CSPSend Code = 70
	CSPRecv Code = 71

	TODO Code = 65535
)

var names = map[Code]string{
	OK:                  "OK",
	NULLPTR:             "NULLPTR",
	SIZE:                "SIZE",
	SIZEL:               "SIZEL",
	SIZEH:               "SIZEH",
	OVRRUN:              "OVRRUN",
	PARAM:               "PARAM",
	TOUT:                "TOUT",
	NACK:                "NACK",
	BUSY:                "BUSY",
	FRAME:               "FRAME",
	CRC:                 "CRC",
	READ:                "READ",
	WRITE:               "WRITE",
	CAN_ID:              "CAN_ID",
	CAN_ERR:             "CAN_ERR",
	UKN_NACK:            "UKN_NACK",
	NODE_TYPE:           "NODE_TYPE",
	FTP:                 "FTP",
	USAGE:               "USAGE",
	AUTOD:               "AUTOD",
	IMG:                 "IMG",
	EXIST:               "EXIST",
	USER_DATA:           "USER_DATA",
	COMMIT:              "COMMIT",
	TCTLM_PROTOCOL:      "TCTLM_PROTOCOL",
	UNKNOWN:             "UNKNOWN",
	TLM_SIZE:            "TLM_SIZE",
	TCTLM_ID:            "TCTLM_ID",
	TCTLMInvalidID:      "TCTLM_INVALID_ID",
	TCTLMInvalidLength:  "TCTLM_INVALID_LENGTH",
	TCTLMInvalidParam:   "TCTLM_INVALID_PARAM",
	TCTLMCRC:            "TCTLM_CRC",
	TCTLMNotImplemented: "TCTLM_NOT_IMPLEMENTED",
	TCTLMBusy:           "TCTLM_BUSY",
	TCTLMSequence:       "TCTLM_SEQUENCE",
	TCTLMInternal:       "TCTLM_INTERNAL",
	TCTLMPassTimeout:    "TCTLM_PASS_TIMEOUT",
	TCTLMPassTarget:     "TCTLM_PASS_TARGET",
	CSPSend:             "CSP_SEND",
	CSPRecv:             "CSP_RECV",
	TODO:                "TODO",
}

// String renders the code's symbolic name, falling back to its numeric
// value for anything outside the documented table.
func (c Code) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return "CODE_" + itoa(uint16(c))
}

func itoa(v uint16) string {
	if v == 0 {
		return "0"
	}
	var buf [5]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
