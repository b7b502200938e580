package iobuf

import (
	"bytes"
	"testing"

	"github.com/cubespace-aero/go-tctlm/errcode"
)

func TestReaderProviderRepeatedPeekReturnsSamePrefix(t *testing.T) {
	p := NewReaderProvider(bytes.NewReader([]byte{1, 2, 3, 4, 5}))

	first, err := p.GetFrameBuffer(2)
	if err != nil {
		t.Fatalf("GetFrameBuffer(2) = %v", err)
	}
	second, err := p.GetFrameBuffer(4)
	if err != nil {
		t.Fatalf("GetFrameBuffer(4) = %v", err)
	}
	if !bytes.Equal(first, second[:2]) {
		t.Fatalf("second peek prefix = %v, want %v", second[:2], first)
	}
}

func TestReaderProviderCommitAdvancesStream(t *testing.T) {
	p := NewReaderProvider(bytes.NewReader([]byte{1, 2, 3, 4, 5}))

	buf, err := p.GetFrameBuffer(2)
	if err != nil {
		t.Fatalf("GetFrameBuffer(2) = %v", err)
	}
	if err := p.CommitFrameBuffer(buf); err != nil {
		t.Fatalf("CommitFrameBuffer() = %v", err)
	}

	next, err := p.GetFrameBuffer(3)
	if err != nil {
		t.Fatalf("GetFrameBuffer(3) = %v", err)
	}
	if !bytes.Equal(next, []byte{3, 4, 5}) {
		t.Fatalf("next = %v, want [3 4 5]", next)
	}
}

func TestReaderProviderShortReadIsTLMSize(t *testing.T) {
	p := NewReaderProvider(bytes.NewReader([]byte{1, 2}))

	_, err := p.GetFrameBuffer(5)
	if !errcode.Is(err, errcode.TLM_SIZE) {
		t.Fatalf("GetFrameBuffer() = %v, want TLM_SIZE", err)
	}
}
