// Package tctlm implements the request/response telecommand-and-telemetry
// transport: framing a request for one of three carriers (CAN native,
// CAN-over-CSP, UART), sending it, and collecting — reassembling, where the
// wire format fragments — the matching response or NACK.
//
// Master is the single entry point. It owns no session state across calls:
// every SendReceive is an independent round trip parameterised entirely by
// the endpoint.Endpoint passed in.
//
// # Wire formats
//
// CAN native uses a 29-bit extended identifier
// [type:5 | tctlm_id:8 | src:8 | dst:8]; payloads over 8 bytes fragment
// into 7-byte chunks with a descending packets-left counter in the last
// byte.
//
// CAN-over-CSP prepends a 2-byte [type, tctlm_id] sub-header to the payload
// and hands the whole thing to the caller's CSP stack; CSP does its own
// packetisation, so this layer never fragments.
//
// UART is a byte stream framed as 0x1F <SOM> <tctlm_id> <escaped
// payload...> 0x1F 0xFF, with every literal 0x1F in the payload doubled.
// SOM itself carries what the CAN ID's type field would: request, ack or
// nack, and passthrough. It does not distinguish telecommand from
// telemetry; the tctlm_id range does.
package tctlm
