// Package iobuf adapts the standard io.Reader/io.Writer interfaces to
// bdt.BufferProvider, the frame-by-frame data source/sink the BDT engine
// borrows from during an upload or download (spec.md §4.3).
package iobuf
