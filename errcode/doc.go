// Package errcode implements the error taxonomy and structured error type
// shared by link, tctlm, bdt, poll and ops.
//
// Use New/Wrap to construct an *Error, and Is/CodeOf to inspect one:
//
//	if errcode.Is(err, errcode.TOUT) {
//	    // retry or report a timeout
//	}
package errcode
