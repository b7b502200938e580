package ops

import (
	"fmt"

	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/errcode"
)

// Failure carries a domain error code alongside the last device status
// struct read before the choreographer gave up, satisfying spec.md §7's
// "device-internal errors are surfaced via both a domain error code *and*
// a filled-in status struct" propagation policy. Status is one of this
// package's telemetry types (BootloaderState, FileTransferStatus,
// ImageState, Errors, ...), whichever the failing choreographer last read.
type Failure struct {
	Code   errcode.Code
	Op     string
	Status interface{}
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s (status=%+v)", f.Op, f.Code, f.Status)
}

func newFailure(op string, code errcode.Code, status interface{}) *Failure {
	return &Failure{Op: op, Code: code, Status: status}
}

// NodeTypeError reports that an endpoint's NodeType is wrong for the
// operation being attempted (spec.md §7, NODE_TYPE).
type NodeTypeError struct {
	Op       string
	Got      endpoint.NodeType
	Expected endpoint.NodeType
}

func (e *NodeTypeError) Error() string {
	return fmt.Sprintf("%s: endpoint node type %v, expected %v", e.Op, e.Got, e.Expected)
}
