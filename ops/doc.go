// Package ops implements the operation choreographers: the bootloader file
// upload, control-program file upload, event/telemetry log download, image
// capture and download, firmware upgrade, and image-info enumeration
// sequences that each compose a setup telecommand, a status poll, and
// (where the transfer is large) a bdt.Engine upload or download.
//
// # Overview
//
// A Client wires a transport, a BDT engine, and the ambient logging/
// progress hooks together once; each choreographer is then a single
// method call:
//
//	c := ops.NewClient(master, ops.WithLogger(myLogger))
//	err := c.UploadToBootloader(ep, buf, dataSize)
//
// # Device-internal errors
//
// A choreographer whose poll succeeds but whose status telemetry reports a
// device-internal error (non-zero errorCode/result) returns a *Failure
// carrying both the domain error code and the last-read status struct, so
// the caller can report the device's own reason alongside the library's
// classification. A frame_error during an upload is reported the same way
// when the follow-up status read succeeds; during a download it is returned
// as a plain errcode FRAME error.
package ops
