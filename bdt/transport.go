package bdt

import (
	"github.com/cubespace-aero/go-tctlm/endpoint"
)

// Transport is the subset of *tctlm.Master the engine depends on. Accepting
// the interface rather than the concrete type keeps this package testable
// without a real link and keeps tctlm from becoming a hard dependency of
// every package that only needs request/response semantics.
type Transport interface {
	SendReceive(ep endpoint.Endpoint, tctlmID byte, request []byte) ([]byte, error)
}
