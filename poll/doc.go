// Package poll implements the single backoff-until-match loop shared by
// every status poller in ops: read a telemetry, compare one field against a
// target, and either stop or sleep and retry until a total time budget
// elapses (spec.md §4.4).
package poll
