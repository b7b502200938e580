package link

import (
	"time"

	"github.com/cubespace-aero/go-tctlm/errcode"
)

// CSPHooks is the caller-supplied CSP transport. Both calls block up to
// timeout; CSP routing and buffer management belong to the caller's CSP
// stack, not this library (spec.md §1 Deliberately out of scope).
type CSPHooks interface {
	// SendTo sends buf to dst/dstPort from srcPort, blocking up to
	// timeout.
	SendTo(dst byte, dstPort, srcPort byte, buf []byte, timeout time.Duration) error

	// RecvFrom blocks up to timeout waiting for a packet on port,
	// returning it in buf[:n].
	RecvFrom(port byte, buf []byte, timeout time.Duration) (n int, err error)
}

// NotImplementedCSP is the default CSPHooks for builds without a CSP stack
// wired in.
type NotImplementedCSP struct{}

func (NotImplementedCSP) SendTo(byte, byte, byte, []byte, time.Duration) error {
	return errcode.New("link.CSP.SendTo", errcode.TCTLMNotImplemented)
}

func (NotImplementedCSP) RecvFrom(byte, []byte, time.Duration) (int, error) {
	return 0, errcode.New("link.CSP.RecvFrom", errcode.TCTLMNotImplemented)
}
