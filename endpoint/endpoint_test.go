package endpoint

import (
	"testing"
	"time"

	"github.com/cubespace-aero/go-tctlm/errcode"
)

func TestValidateCSPOnUARTForbidden(t *testing.T) {
	e := Endpoint{
		NodeType: NodeCubeComputer,
		Carrier:  CarrierUART,
		Protocol: ProtocolCSP,
		Timeout:  500 * time.Millisecond,
	}
	if err := e.Validate(); !errcode.Is(err, errcode.USAGE) {
		t.Fatalf("Validate() = %v, want USAGE", err)
	}
}

func TestValidateCSPRequiresCAN(t *testing.T) {
	e := Endpoint{
		NodeType: NodeCubeComputer,
		Carrier:  CarrierI2C,
		Protocol: ProtocolCSP,
		Timeout:  500 * time.Millisecond,
	}
	if err := e.Validate(); !errcode.Is(err, errcode.USAGE) {
		t.Fatalf("Validate() = %v, want USAGE", err)
	}
}

func TestValidateOK(t *testing.T) {
	e := Endpoint{
		NodeType:    NodeCubeComputer,
		Carrier:     CarrierCAN,
		Protocol:    ProtocolNative,
		PrimaryAddr: 2,
		Timeout:     500 * time.Millisecond,
	}
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestDestAddrPassthrough(t *testing.T) {
	e := Endpoint{PrimaryAddr: 2, PassthroughAddr: 9, Passthrough: true}
	if got := e.DestAddr(); got != 9 {
		t.Fatalf("DestAddr() = %d, want 9", got)
	}
	e.Passthrough = false
	if got := e.DestAddr(); got != 2 {
		t.Fatalf("DestAddr() = %d, want 2", got)
	}
}
