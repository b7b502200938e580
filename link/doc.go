// Package link defines the abstract, caller-provided hook families the
// transport calls through: CAN, UART and CSP. None of them are implemented
// here — concrete drivers are external collaborators (spec.md §1) — only
// the interfaces and a not-implemented default for each, so a partial
// build stays linkable.
package link
