package errcode

import "fmt"

// Error is the structured error type returned across every layer of the
// module. It carries the stable Code (§6) plus the operation that failed
// and, optionally, a wrapped cause (a transport read/write error, a
// caller-hook error, ...).
//
// Error mirrors the teacher's ProtocolError (one status code + an
// operation label), generalized to the module's full taxonomy.
type Error struct {
	Code Code
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an *Error with no wrapped cause.
func New(op string, code Code) *Error {
	return &Error{Op: op, Code: code}
}

// Wrap builds an *Error wrapping a lower-layer cause.
func Wrap(op string, code Code, err error) *Error {
	return &Error{Op: op, Code: code, Err: err}
}

// Is reports whether err is an *Error carrying the given code.
func Is(err error, code Code) bool {
	var e *Error
	if !asError(err, &e) {
		return false
	}
	return e.Code == code
}

// CodeOf extracts the Code from err if it is (or wraps) an *Error,
// returning UNKNOWN otherwise.
func CodeOf(err error) Code {
	var e *Error
	if !asError(err, &e) {
		return UNKNOWN
	}
	return e.Code
}

// asError is a tiny local errors.As to avoid importing "errors" just for
// this one call site in every caller; it still honors Unwrap chains.
func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
