package iobuf

import (
	"io"

	"github.com/cubespace-aero/go-tctlm/errcode"
)

// WriterProvider adapts an io.Writer to bdt.BufferProvider for downloads:
// GetFrameBuffer hands out scratch space, CommitFrameBuffer streams it out.
type WriterProvider struct {
	w io.Writer
}

// NewWriterProvider wraps w.
func NewWriterProvider(w io.Writer) *WriterProvider {
	return &WriterProvider{w: w}
}

// GetFrameBuffer returns fresh scratch space for the engine to fill.
func (p *WriterProvider) GetFrameBuffer(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// CommitFrameBuffer writes buf to the underlying writer.
func (p *WriterProvider) CommitFrameBuffer(buf []byte) error {
	n, err := p.w.Write(buf)
	if err != nil {
		return errcode.Wrap("iobuf.CommitFrameBuffer", errcode.UNKNOWN, err)
	}
	if n != len(buf) {
		return errcode.New("iobuf.CommitFrameBuffer", errcode.UNKNOWN)
	}
	return nil
}
