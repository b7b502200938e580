// Package endpoint provides the Endpoint value type and its NodeType,
// Carrier and Protocol enumerations, matching spec.md §3's data model.
//
// An Endpoint is cheap to construct and is not retained by any layer that
// consumes it — callers may reuse or discard it freely after a call
// returns.
package endpoint
