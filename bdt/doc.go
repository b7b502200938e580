// Package bdt implements the Bulk Data Transfer engine: a frame-by-frame,
// windowless, polling-based reliable transfer riding on top of the TCTLM
// request/response transport, used for anything too large for a single
// TCTLM round trip (firmware images, logs, captured images).
package bdt
