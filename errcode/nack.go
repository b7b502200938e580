package errcode

// NACKReason decodes the single-byte reason carried by a TC_NACK/TLM_NACK
// response (CAN native), a CSP NACK sub-header, or a UART NACK window, into
// the documented TCTLM_* code. Any value outside the exhaustive table below
// maps to UKN_NACK (spec.md §4.2, §7, property P7).
//
// The wire values are 1-based (0 is reserved for "no error" and never
// appears in a NACK payload): 1 is TCTLM_INVALID_ID through 10
// TCTLM_PASS_TARGET.
func NACKReason(v byte) Code {
	switch v {
	case 1:
		return TCTLMInvalidID
	case 2:
		return TCTLMInvalidLength
	case 3:
		return TCTLMInvalidParam
	case 4:
		return TCTLMCRC
	case 5:
		return TCTLMNotImplemented
	case 6:
		return TCTLMBusy
	case 7:
		return TCTLMSequence
	case 8:
		return TCTLMInternal
	case 9:
		return TCTLMPassTimeout
	case 10:
		return TCTLMPassTarget
	default:
		return UKN_NACK
	}
}
