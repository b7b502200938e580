package errcode

import "testing"

func TestNACKReasonExhaustive(t *testing.T) {
	want := map[byte]Code{
		1:  TCTLMInvalidID,
		2:  TCTLMInvalidLength,
		3:  TCTLMInvalidParam,
		4:  TCTLMCRC,
		5:  TCTLMNotImplemented,
		6:  TCTLMBusy,
		7:  TCTLMSequence,
		8:  TCTLMInternal,
		9:  TCTLMPassTimeout,
		10: TCTLMPassTarget,
	}

	for v, code := range want {
		if got := NACKReason(v); got != code {
			t.Errorf("NACKReason(%d) = %s, want %s", v, got, code)
		}
	}
}

func TestNACKReasonUnknown(t *testing.T) {
	for _, v := range []byte{0, 11, 200, 255} {
		if got := NACKReason(v); got != UKN_NACK {
			t.Errorf("NACKReason(%d) = %s, want UKN_NACK", v, got)
		}
	}
}
