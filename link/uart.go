package link

import "github.com/cubespace-aero/go-tctlm/errcode"

// UARTHooks is the caller-supplied byte-stream link. Rx is non-blocking:
// read < size is not an error, it just means fewer bytes were available
// this call.
type UARTHooks interface {
	// RxFlush discards any buffered rx bytes before a new request begins.
	RxFlush()

	// Rx attempts to fill buf[:size] without blocking, reporting the
	// number of bytes actually read. read < size is OK.
	Rx(buf []byte, size int) (read int, err error)

	// Tx writes buf, blocking until accepted by the UART driver.
	Tx(buf []byte) error
}

// NotImplementedUART is the default UARTHooks for builds without a UART
// driver wired in.
type NotImplementedUART struct{}

func (NotImplementedUART) RxFlush() {}

func (NotImplementedUART) Rx([]byte, int) (int, error) {
	return 0, errcode.New("link.UART.Rx", errcode.TCTLMNotImplemented)
}

func (NotImplementedUART) Tx([]byte) error {
	return errcode.New("link.UART.Tx", errcode.TCTLMNotImplemented)
}
