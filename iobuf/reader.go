package iobuf

import (
	"bufio"
	"io"

	"github.com/cubespace-aero/go-tctlm/errcode"
)

// defaultPeekBuf is large enough to cover one BDT max frame size plus a
// choreographer's metadata peek without a second underlying read.
const defaultPeekBuf = 512

// ReaderProvider adapts an io.Reader to bdt.BufferProvider for uploads and
// for choreographers that peek a size-prefixed metadata block ahead of the
// data proper (spec.md §4.5 #1). It reads ahead with bufio.Reader.Peek —
// the same sequential-consumption idiom the teacher's cyacd parser uses
// over bufio.Scanner — so repeated uncommitted GetFrameBuffer calls against
// growing sizes return the same leading bytes, and CommitFrameBuffer
// advances the stream with Discard.
type ReaderProvider struct {
	r *bufio.Reader
}

// NewReaderProvider wraps r. If r is already a *bufio.Reader with enough
// buffer capacity it is reused; otherwise a new one is allocated.
func NewReaderProvider(r io.Reader) *ReaderProvider {
	br, ok := r.(*bufio.Reader)
	if !ok || br.Size() < defaultPeekBuf {
		br = bufio.NewReaderSize(r, defaultPeekBuf)
	}
	return &ReaderProvider{r: br}
}

// GetFrameBuffer returns the next size bytes without consuming them.
func (p *ReaderProvider) GetFrameBuffer(size int) ([]byte, error) {
	buf, err := p.r.Peek(size)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errcode.New("iobuf.GetFrameBuffer", errcode.TLM_SIZE)
		}
		return nil, errcode.Wrap("iobuf.GetFrameBuffer", errcode.UNKNOWN, err)
	}
	out := make([]byte, size)
	copy(out, buf)
	return out, nil
}

// CommitFrameBuffer discards len(buf) bytes from the front of the stream,
// advancing past the data the engine just sent.
func (p *ReaderProvider) CommitFrameBuffer(buf []byte) error {
	n, err := p.r.Discard(len(buf))
	if err != nil {
		return errcode.Wrap("iobuf.CommitFrameBuffer", errcode.UNKNOWN, err)
	}
	if n != len(buf) {
		return errcode.New("iobuf.CommitFrameBuffer", errcode.UNKNOWN)
	}
	return nil
}
