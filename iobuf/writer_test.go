package iobuf

import (
	"bytes"
	"testing"
)

func TestWriterProviderCommitWritesThrough(t *testing.T) {
	var out bytes.Buffer
	p := NewWriterProvider(&out)

	buf, err := p.GetFrameBuffer(3)
	if err != nil {
		t.Fatalf("GetFrameBuffer(3) = %v", err)
	}
	copy(buf, []byte{9, 8, 7})
	if err := p.CommitFrameBuffer(buf); err != nil {
		t.Fatalf("CommitFrameBuffer() = %v", err)
	}

	if !bytes.Equal(out.Bytes(), []byte{9, 8, 7}) {
		t.Fatalf("out = %v, want [9 8 7]", out.Bytes())
	}
}

func TestWriterProviderMultipleFramesAppend(t *testing.T) {
	var out bytes.Buffer
	p := NewWriterProvider(&out)

	for _, data := range [][]byte{{1, 2}, {3, 4}} {
		buf, err := p.GetFrameBuffer(len(data))
		if err != nil {
			t.Fatalf("GetFrameBuffer() = %v", err)
		}
		copy(buf, data)
		if err := p.CommitFrameBuffer(buf); err != nil {
			t.Fatalf("CommitFrameBuffer() = %v", err)
		}
	}

	if !bytes.Equal(out.Bytes(), []byte{1, 2, 3, 4}) {
		t.Fatalf("out = %v, want [1 2 3 4]", out.Bytes())
	}
}
