package bdt

import (
	"bytes"
	"testing"
	"time"

	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/errcode"
)

// testClock is a manually-advanced clock.Clock for deterministic timeout
// tests; DelayMS advances the same counter NowMS reads.
type testClock struct {
	now uint32
}

func (c *testClock) NowMS() uint32     { return c.now }
func (c *testClock) DelayMS(ms uint32) { c.now += ms }

// step describes one scripted SendReceive call: what to hand back. The
// tctlmID of each call is recorded by fakeTransport but not checked.
type step struct {
	resp []byte
	err  error
}

// fakeTransport replays a scripted sequence of responses per call, indexed
// by call order, mirroring the teacher's MockDevice request queue.
type fakeTransport struct {
	steps []step
	calls []byte // tctlmID of each call, in order
}

func (f *fakeTransport) SendReceive(ep endpoint.Endpoint, tctlmID byte, request []byte) ([]byte, error) {
	f.calls = append(f.calls, tctlmID)
	if len(f.steps) == 0 {
		return nil, errcode.New("fakeTransport.SendReceive", errcode.UNKNOWN)
	}
	s := f.steps[0]
	f.steps = f.steps[1:]
	return s.resp, s.err
}

func testEndpoint() endpoint.Endpoint {
	return endpoint.Endpoint{
		NodeType:    endpoint.NodeCubeComputer,
		Carrier:     endpoint.CarrierCAN,
		Protocol:    endpoint.ProtocolNative,
		PrimaryAddr: 2,
		Timeout:     500 * time.Millisecond,
	}
}

func frameInfoBytes(n uint16, last, frameErr bool, cksum byte) []byte {
	flags := byte(0)
	if last {
		flags |= 0x01
	}
	if frameErr {
		flags |= 0x02
	}
	return []byte{byte(n), byte(n >> 8), flags, cksum}
}

// --- setFrameNumber ---

func TestSetFrameNumberImmediateSuccess(t *testing.T) {
	ft := &fakeTransport{steps: []step{{resp: []byte{}}}}
	e := NewEngine(ft, WithClock(&testClock{}))
	sess := &session{}
	if err := e.setFrameNumber(testEndpoint(), sess, 3); err != nil {
		t.Fatalf("setFrameNumber() = %v, want nil", err)
	}
}

func TestSetFrameNumberRetriesOnBusyThenSucceeds(t *testing.T) {
	ft := &fakeTransport{steps: []step{
		{err: errcode.New("x", errcode.TCTLMBusy)},
		{err: errcode.New("x", errcode.TCTLMBusy)},
		{resp: []byte{}},
	}}
	clk := &testClock{}
	e := NewEngine(ft, WithClock(clk))
	sess := &session{}
	if err := e.setFrameNumber(testEndpoint(), sess, 0); err != nil {
		t.Fatalf("setFrameNumber() = %v, want nil", err)
	}
	if len(ft.calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(ft.calls))
	}
	// two 5ms backoffs should have advanced the clock.
	if clk.now < 2*busyBackoffMS {
		t.Fatalf("clock advanced by %d, want >= %d", clk.now, 2*busyBackoffMS)
	}
}

func TestSetFrameNumberBusyAfterTimeoutInferredSuccess(t *testing.T) {
	ft := &fakeTransport{steps: []step{
		{err: errcode.New("x", errcode.TOUT)},
		{err: errcode.New("x", errcode.TCTLMBusy)},
	}}
	e := NewEngine(ft, WithClock(&testClock{}))
	sess := &session{}
	if err := e.setFrameNumber(testEndpoint(), sess, 1); err != nil {
		t.Fatalf("setFrameNumber() = %v, want nil (inferred success)", err)
	}
	if len(ft.calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(ft.calls))
	}
}

func TestSetFrameNumberInvalidParamAfterTimeoutInferredSuccess(t *testing.T) {
	ft := &fakeTransport{steps: []step{
		{err: errcode.New("x", errcode.TOUT)},
		{err: errcode.New("x", errcode.TCTLMInvalidParam)},
	}}
	e := NewEngine(ft, WithClock(&testClock{}))
	sess := &session{}
	if err := e.setFrameNumber(testEndpoint(), sess, 1); err != nil {
		t.Fatalf("setFrameNumber() = %v, want nil (inferred success)", err)
	}
}

func TestSetFrameNumberUnknownErrorIsTerminal(t *testing.T) {
	ft := &fakeTransport{steps: []step{
		{err: errcode.New("x", errcode.CAN_ERR)},
	}}
	e := NewEngine(ft, WithClock(&testClock{}))
	sess := &session{}
	err := e.setFrameNumber(testEndpoint(), sess, 0)
	if !errcode.Is(err, errcode.CAN_ERR) {
		t.Fatalf("setFrameNumber() = %v, want CAN_ERR", err)
	}
	if len(ft.calls) != 1 {
		t.Fatalf("calls = %d, want 1 (no retry on non-BUSY/non-TOUT)", len(ft.calls))
	}
}

// --- pollFrameNumber ---

func TestPollFrameNumberWaitsThenMatches(t *testing.T) {
	ft := &fakeTransport{steps: []step{
		{resp: frameInfoBytes(0, false, false, 0)},
		{resp: frameInfoBytes(1, false, false, 0)},
		{resp: frameInfoBytes(2, true, false, 0)},
	}}
	clk := &testClock{}
	e := NewEngine(ft, WithClock(clk))
	sess := &session{}
	last, frameErr, err := e.pollFrameNumber(testEndpoint(), sess, 2)
	if err != nil {
		t.Fatalf("pollFrameNumber() err = %v", err)
	}
	if !last || frameErr {
		t.Fatalf("pollFrameNumber() = (%v, %v), want (true, false)", last, frameErr)
	}
	if len(ft.calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(ft.calls))
	}
}

func TestPollFrameNumberFrameError(t *testing.T) {
	ft := &fakeTransport{steps: []step{
		{resp: frameInfoBytes(0, false, true, 0)},
	}}
	e := NewEngine(ft, WithClock(&testClock{}))
	sess := &session{}
	_, frameErr, err := e.pollFrameNumber(testEndpoint(), sess, 5)
	if err != nil {
		t.Fatalf("pollFrameNumber() err = %v", err)
	}
	if !frameErr {
		t.Fatalf("pollFrameNumber() frameErr = false, want true")
	}
}

func TestPollFrameNumberTimesOut(t *testing.T) {
	ft := &fakeTransport{steps: []step{
		{resp: frameInfoBytes(0, false, false, 0)},
	}}
	clk := &testClock{now: bdtTimeoutMS}
	e := NewEngine(ft, WithClock(clk))
	sess := &session{}
	_, _, err := e.pollFrameNumber(testEndpoint(), sess, 9)
	if !errcode.Is(err, errcode.TOUT) {
		t.Fatalf("pollFrameNumber() = %v, want TOUT", err)
	}
}

// --- fake BufferProvider ---

type fakeBuffer struct {
	data      []byte
	committed [][]byte
}

func (b *fakeBuffer) GetFrameBuffer(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (b *fakeBuffer) CommitFrameBuffer(buf []byte) error {
	cp := make([]byte, len(buf))
	copy(cp, buf)
	b.committed = append(b.committed, cp)
	b.data = append(b.data, buf...)
	return nil
}

// --- Download ---

func TestDownloadTwoFrames(t *testing.T) {
	frame0 := bytes.Repeat([]byte{0xAA}, 5)
	frame1 := bytes.Repeat([]byte{0xBB}, 3)

	ft := &fakeTransport{steps: []step{
		{resp: []byte{}},                         // setFrameNumber(0)
		{resp: frameInfoBytes(0, false, false, 0)}, // pollFrameNumber(0)
		{resp: encodeFrame(frame0)},               // getFrame
		{resp: []byte{}},                         // setFrameNumber(1)
		{resp: frameInfoBytes(1, true, false, 0)},  // pollFrameNumber(1)
		{resp: encodeFrame(frame1)},               // getFrame
	}}

	var progresses []Progress
	e := NewEngine(ft, WithClock(&testClock{}), WithProgressCallback(func(p Progress) {
		progresses = append(progresses, p)
	}))

	buf := &fakeBuffer{}
	if err := e.Download(testEndpoint(), buf); err != nil {
		t.Fatalf("Download() = %v, want nil", err)
	}

	want := append(append([]byte{}, frame0...), frame1...)
	if !bytes.Equal(buf.data, want) {
		t.Fatalf("downloaded = %x, want %x", buf.data, want)
	}

	if len(progresses) != 2 {
		t.Fatalf("progress calls = %d, want 2", len(progresses))
	}
	if progresses[0].BytesDone != len(frame0) {
		t.Fatalf("progresses[0].BytesDone = %d, want %d", progresses[0].BytesDone, len(frame0))
	}
	if progresses[1].BytesDone != len(frame0)+len(frame1) {
		t.Fatalf("progresses[1].BytesDone = %d, want cumulative %d", progresses[1].BytesDone, len(frame0)+len(frame1))
	}
	if !progresses[1].Last {
		t.Fatalf("progresses[1].Last = false, want true")
	}
}

func TestDownloadFrameErrorFails(t *testing.T) {
	ft := &fakeTransport{steps: []step{
		{resp: []byte{}},
		{resp: frameInfoBytes(0, false, true, 0)},
	}}
	e := NewEngine(ft, WithClock(&testClock{}))
	err := e.Download(testEndpoint(), &fakeBuffer{})
	if !errcode.Is(err, errcode.FRAME) {
		t.Fatalf("Download() = %v, want FRAME", err)
	}
}

func TestDownloadZeroSizeNotLastIsUnknown(t *testing.T) {
	ft := &fakeTransport{steps: []step{
		{resp: []byte{}},
		{resp: frameInfoBytes(0, false, false, 0)},
		{resp: encodeFrame(nil)},
	}}
	e := NewEngine(ft, WithClock(&testClock{}))
	err := e.Download(testEndpoint(), &fakeBuffer{})
	if !errcode.Is(err, errcode.UNKNOWN) {
		t.Fatalf("Download() = %v, want UNKNOWN", err)
	}
}

func TestDownloadZeroSizeLastSucceeds(t *testing.T) {
	ft := &fakeTransport{steps: []step{
		{resp: []byte{}},
		{resp: frameInfoBytes(0, true, false, 0)},
		{resp: encodeFrame(nil)},
	}}
	e := NewEngine(ft, WithClock(&testClock{}))
	if err := e.Download(testEndpoint(), &fakeBuffer{}); err != nil {
		t.Fatalf("Download() = %v, want nil", err)
	}
}

// --- Upload ---

// sizeTrackingBuffer records the size requested by each GetFrameBuffer call
// so tests can assert on the frame-size sequence (spec.md §4.3 property:
// ascending frame numbers from 0, sizes [256, 256, ..., N mod 256]).
type sizeTrackingBuffer struct {
	sizes []int
}

func (b *sizeTrackingBuffer) GetFrameBuffer(size int) ([]byte, error) {
	b.sizes = append(b.sizes, size)
	return make([]byte, size), nil
}

func (b *sizeTrackingBuffer) CommitFrameBuffer(buf []byte) error { return nil }

func TestUploadFrameSizeSequence(t *testing.T) {
	total := maxFrameSize*2 + 10 // => frames [256, 256, 10]
	zeroChecksum := checksum(make([]byte, maxFrameSize))
	lastChecksum := checksum(make([]byte, 10))

	ft := &fakeTransport{steps: []step{
		{resp: []byte{}}, {resp: frameInfoBytes(0, false, false, zeroChecksum)}, {resp: []byte{}}, {resp: frameInfoBytes(0, false, false, zeroChecksum)},
		{resp: []byte{}}, {resp: frameInfoBytes(0, false, false, zeroChecksum)}, {resp: []byte{}}, {resp: frameInfoBytes(1, false, false, zeroChecksum)},
		{resp: []byte{}}, {resp: frameInfoBytes(0, false, false, lastChecksum)}, {resp: []byte{}}, {resp: frameInfoBytes(2, true, false, lastChecksum)},
	}}

	e := NewEngine(ft, WithClock(&testClock{}))
	buf := &sizeTrackingBuffer{}
	if err := e.Upload(testEndpoint(), buf, total); err != nil {
		t.Fatalf("Upload() = %v, want nil", err)
	}

	want := []int{maxFrameSize, maxFrameSize, 10}
	if len(buf.sizes) != len(want) {
		t.Fatalf("frame sizes = %v, want %v", buf.sizes, want)
	}
	for i, w := range want {
		if buf.sizes[i] != w {
			t.Fatalf("frame[%d] size = %d, want %d", i, buf.sizes[i], w)
		}
	}
}

func TestUploadChecksumMismatchIsCRCError(t *testing.T) {
	ft := &fakeTransport{steps: []step{
		{resp: []byte{}},
		{resp: frameInfoBytes(0, false, false, 0x00)}, // wrong checksum for zeroed data
	}}
	e := NewEngine(ft, WithClock(&testClock{}))
	err := e.Upload(testEndpoint(), &fakeBuffer{}, 10)
	if !errcode.Is(err, errcode.CRC) {
		t.Fatalf("Upload() = %v, want CRC", err)
	}
}

func TestUploadSingleFrameSucceeds(t *testing.T) {
	size := 10
	data := make([]byte, size)
	cksum := checksum(data)

	ft := &fakeTransport{steps: []step{
		{resp: []byte{}},                             // SetFrame
		{resp: frameInfoBytes(0, false, false, cksum)}, // getFrameInfo
		{resp: []byte{}},                             // setFrameNumber
		{resp: frameInfoBytes(0, true, false, cksum)},  // pollFrameNumber
	}}

	var progresses []Progress
	e := NewEngine(ft, WithClock(&testClock{}), WithProgressCallback(func(p Progress) {
		progresses = append(progresses, p)
	}))

	buf := &fakeBuffer{}
	if err := e.Upload(testEndpoint(), buf, size); err != nil {
		t.Fatalf("Upload() = %v, want nil", err)
	}
	if len(buf.committed) != 1 {
		t.Fatalf("committed frames = %d, want 1", len(buf.committed))
	}
	if len(progresses) != 1 || progresses[0].BytesDone != size || !progresses[0].Last {
		t.Fatalf("progresses = %+v, want one frame with BytesDone=%d Last=true", progresses, size)
	}
}

func TestUploadFrameErrorFails(t *testing.T) {
	size := 10
	data := make([]byte, size)
	cksum := checksum(data)

	ft := &fakeTransport{steps: []step{
		{resp: []byte{}},
		{resp: frameInfoBytes(0, false, false, cksum)},
		{resp: []byte{}},
		{resp: frameInfoBytes(0, false, true, cksum)},
	}}
	e := NewEngine(ft, WithClock(&testClock{}))
	err := e.Upload(testEndpoint(), &fakeBuffer{}, size)
	if !errcode.Is(err, errcode.FRAME) {
		t.Fatalf("Upload() = %v, want FRAME", err)
	}
}
