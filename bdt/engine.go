package bdt

import (
	"github.com/cubespace-aero/go-tctlm/clock"
	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/errcode"
	"github.com/cubespace-aero/go-tctlm/obclog"
)

// bdtTimeoutMS is the fixed 1 s window set_frame_number and poll_frame_number
// each get, independent of the endpoint's own transport timeout.
const bdtTimeoutMS = 1000

// pollFrameIntervalMS is how often poll_frame_number re-reads FrameInfo.
const pollFrameIntervalMS = 10

// busyBackoffMS is the delay between set_frame_number retries after a
// TCTLM_BUSY NACK.
const busyBackoffMS = 5

// Engine drives BDT uploads and downloads over a Transport. It holds no
// state between calls; Upload and Download each create their own session.
type Engine struct {
	t        Transport
	clock    clock.Clock
	log      obclog.Logger
	progress ProgressCallback
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithClock overrides the default wall-clock time source.
func WithClock(c clock.Clock) Option { return func(e *Engine) { e.clock = c } }

// WithLogger attaches a logger. The default is obclog.Nop().
func WithLogger(l obclog.Logger) Option { return func(e *Engine) { e.log = l } }

// WithProgressCallback attaches a per-frame progress callback.
func WithProgressCallback(cb ProgressCallback) Option {
	return func(e *Engine) { e.progress = cb }
}

// NewEngine constructs an Engine that issues its TCTLM requests through t.
func NewEngine(t Transport, opts ...Option) *Engine {
	e := &Engine{t: t, clock: clock.Real(), log: obclog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// assumeFrameSetFromBusyAfterTimeout is the documented cross-layer
// inference in set_frame_number: if the previous attempt timed out and the
// device now reports BUSY or INVALID_PARAM, the write almost certainly
// landed and only its acknowledgement was lost, so the engine treats the
// attempt as successful rather than retrying forever.
func assumeFrameSetFromBusyAfterTimeout(prevTimedOut bool, code errcode.Code) bool {
	if !prevTimedOut {
		return false
	}
	return code == errcode.TCTLMBusy || code == errcode.TCTLMInvalidParam
}

// setFrameNumber issues TransferFrame(n), retrying within the BDT timeout
// per the rules in spec.md §4.3.
func (e *Engine) setFrameNumber(ep endpoint.Endpoint, sess *session, n uint16) error {
	const op = "bdt.setFrameNumber"
	start := e.clock.NowMS()
	prevTimedOut := false

	for {
		_, err := e.t.SendReceive(ep, idTransferFrame, encodeTransferFrame(n))
		if err == nil {
			sess.lastSetOKMS = e.clock.NowMS()
			return nil
		}

		code := errcode.CodeOf(err)
		if assumeFrameSetFromBusyAfterTimeout(prevTimedOut, code) {
			sess.lastSetOKMS = e.clock.NowMS()
			return nil
		}

		switch code {
		case errcode.TOUT:
			prevTimedOut = true
		case errcode.TCTLMBusy:
			prevTimedOut = false
			if clock.Elapsed(e.clock.NowMS(), start) >= bdtTimeoutMS {
				return err
			}
			e.clock.DelayMS(busyBackoffMS)
			continue
		case errcode.TCTLMInvalidParam:
			prevTimedOut = false
		default:
			return err
		}

		if clock.Elapsed(e.clock.NowMS(), start) >= bdtTimeoutMS {
			return errcode.New(op, errcode.TOUT)
		}
	}
}

// pollFrameNumber reads FrameInfo every 10 ms until frame_number == n,
// frame_error is set, or the BDT timeout elapses. Its 1 s window is measured
// from sess.lastSetOKMS, the moment setFrameNumber's write succeeded, rather
// than from its own entry; setFrameNumber's own retries are bounded by a
// separate 1 s window counted from its first attempt.
func (e *Engine) pollFrameNumber(ep endpoint.Endpoint, sess *session, n uint16) (last, frameErr bool, err error) {
	const op = "bdt.pollFrameNumber"

	for {
		e.clock.DelayMS(pollFrameIntervalMS)

		resp, err := e.t.SendReceive(ep, idFrameInfo, nil)
		if err != nil {
			return false, false, err
		}
		info, err := decodeFrameInfo(resp)
		if err != nil {
			return false, false, err
		}
		if info.frameNumber == n || info.frameError {
			return info.frameLast, info.frameError, nil
		}
		if clock.Elapsed(e.clock.NowMS(), sess.lastSetOKMS) >= bdtTimeoutMS {
			return false, false, errcode.New(op, errcode.TOUT)
		}
	}
}

// getFrame issues the Frame getter, retrying only on TOUT within the BDT
// timeout — spec.md §4.3 "accept only a single-shot success or hard
// timeout".
func (e *Engine) getFrame(ep endpoint.Endpoint) (size int, payload []byte, err error) {
	start := e.clock.NowMS()
	for {
		resp, err := e.t.SendReceive(ep, idFrameGetter, nil)
		if err == nil {
			return decodeFrame(resp)
		}
		if errcode.CodeOf(err) != errcode.TOUT {
			return 0, nil, err
		}
		if clock.Elapsed(e.clock.NowMS(), start) >= bdtTimeoutMS {
			return 0, nil, err
		}
	}
}

// getFrameInfo reads the FrameInfo telemetry once, used by Upload to check
// the device's checksum of the frame it just received.
func (e *Engine) getFrameInfo(ep endpoint.Endpoint) (frameInfo, error) {
	resp, err := e.t.SendReceive(ep, idFrameInfo, nil)
	if err != nil {
		return frameInfo{}, err
	}
	return decodeFrameInfo(resp)
}

// Download runs the BDT download loop, writing received bytes into buf
// frame by frame until the device signals the last frame.
func (e *Engine) Download(ep endpoint.Endpoint, buf BufferProvider) error {
	sess := &session{}
	var n uint16
	var bytesDone int

	for {
		if err := e.setFrameNumber(ep, sess, n); err != nil {
			return err
		}
		last, frameErr, err := e.pollFrameNumber(ep, sess, n)
		if err != nil {
			return err
		}
		if frameErr {
			return errcode.New("bdt.Download", errcode.FRAME)
		}

		size, payload, err := e.getFrame(ep)
		if err != nil {
			return err
		}
		if size == 0 {
			if !last {
				return errcode.New("bdt.Download", errcode.UNKNOWN)
			}
			return nil
		}

		dst, err := buf.GetFrameBuffer(size)
		if err != nil {
			return err
		}
		copy(dst, payload)
		if err := buf.CommitFrameBuffer(dst); err != nil {
			return errcode.Wrap("bdt.Download", errcode.COMMIT, err)
		}

		bytesDone += size
		e.log.Debug("bdt frame received", "direction", "download", "frame", n, "size", size, "last", last)
		e.reportProgress(Progress{Direction: "download", Frame: n, BytesDone: bytesDone, Last: last})

		if last {
			return nil
		}
		n++
	}
}

// Upload runs the BDT upload loop, reading totalBytes from buf frame by
// frame and writing each to the device.
func (e *Engine) Upload(ep endpoint.Endpoint, buf BufferProvider, totalBytes int) error {
	sess := &session{}
	var n uint16
	remaining := totalBytes
	bytesDone := 0

	for remaining > 0 {
		frameSize := remaining
		if frameSize > maxFrameSize {
			frameSize = maxFrameSize
		}

		data, err := buf.GetFrameBuffer(frameSize)
		if err != nil {
			return err
		}

		if _, err := e.t.SendReceive(ep, idFrame, encodeFrame(data)); err != nil {
			return err
		}

		info, err := e.getFrameInfo(ep)
		if err != nil {
			return err
		}
		if info.checkSum != checksum(data) {
			return errcode.New("bdt.Upload", errcode.CRC)
		}

		if err := e.setFrameNumber(ep, sess, n); err != nil {
			return err
		}
		_, frameErr, err := e.pollFrameNumber(ep, sess, n)
		if err != nil {
			return err
		}
		if frameErr {
			return errcode.New("bdt.Upload", errcode.FRAME)
		}

		if err := buf.CommitFrameBuffer(data); err != nil {
			return errcode.Wrap("bdt.Upload", errcode.COMMIT, err)
		}

		remaining -= frameSize
		bytesDone += frameSize
		e.log.Debug("bdt frame sent", "direction", "upload", "frame", n, "size", frameSize, "remaining", remaining)
		e.reportProgress(Progress{Direction: "upload", Frame: n, BytesDone: bytesDone, TotalBytes: totalBytes, Last: remaining == 0})

		n++
	}
	return nil
}
