package bdt

// BufferProvider is the caller's data source/sink for one transfer. The
// engine borrows a buffer for exactly one frame at a time: GetFrameBuffer
// returns it, the engine fills it (download) or reads it (upload), and
// CommitFrameBuffer finalises it before the engine moves on to the next
// frame.
//
// GetFrameBuffer may be called again for the same frame before a commit —
// choreographers that need to peek at a file's header before committing to
// a full transfer rely on this (spec.md §4.5 #1): the provider must return
// the same bytes for repeated uncommitted calls against the same frame.
type BufferProvider interface {
	// GetFrameBuffer returns a buffer of exactly size bytes for the frame
	// currently in flight. On upload this is the data to send; on download
	// it is scratch space the engine will fill before committing it.
	GetFrameBuffer(size int) ([]byte, error)

	// CommitFrameBuffer finalises the buffer most recently returned by
	// GetFrameBuffer. On download, this persists the bytes the engine
	// filled in; on upload, it lets the provider advance past the bytes
	// that were just sent. Returning an error here surfaces as
	// errcode.COMMIT.
	CommitFrameBuffer(buf []byte) error
}
