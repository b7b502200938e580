package bdt

// Progress reports how far an Upload or Download has gotten, one call per
// completed frame.
type Progress struct {
	// Direction is "upload" or "download".
	Direction string

	// Frame is the frame number just completed.
	Frame uint16

	// BytesDone is the cumulative number of payload bytes transferred.
	BytesDone int

	// TotalBytes is the total expected on upload; 0 on download, since the
	// device — not the caller — determines when the transfer ends.
	TotalBytes int

	// Last is true for the final frame: on download, once the device has
	// signalled it; on upload, once no bytes remain to send.
	Last bool
}

// ProgressCallback is invoked after each frame commits. Implementations
// should return quickly.
type ProgressCallback func(Progress)

func (e *Engine) reportProgress(p Progress) {
	if e.progress != nil {
		e.progress(p)
	}
}
