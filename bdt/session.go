package bdt

// session is the ephemeral per-call state for one upload or download: the
// frame cursor and the timestamp of the last confirmed TransferFrame set.
// It never outlives the Upload/Download call that created it and has no
// wire representation — the device derives its own progress purely from
// the TransferFrame writes it receives (spec.md §4.1 BDT Session).
type session struct {
	frameNumber uint16
	lastSetOKMS uint32
}
