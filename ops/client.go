package ops

import (
	"time"

	"github.com/cubespace-aero/go-tctlm/bdt"
	"github.com/cubespace-aero/go-tctlm/clock"
	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/obclog"
	"github.com/cubespace-aero/go-tctlm/poll"
)

// Client composes a TCTLM transport and a BDT engine into the operation
// choreographers spec.md §4.5 names. Construct one per session with
// NewClient; a Client is safe for reuse across endpoints but, like the
// transport it wraps, serialises one request at a time per endpoint.
type Client struct {
	t          bdt.Transport
	engine     *bdt.Engine
	clock      clock.Clock
	log        obclog.Logger
	progress   ProgressCallback
	engineOpts []bdt.Option
}

// NewClient constructs a Client issuing its TCTLM requests through t and
// running BDT transfers over the same transport.
func NewClient(t bdt.Transport, opts ...Option) *Client {
	c := &Client{t: t, clock: clock.Real(), log: obclog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	engineOpts := append([]bdt.Option{bdt.WithClock(c.clock), bdt.WithLogger(c.log)}, c.engineOpts...)
	c.engine = bdt.NewEngine(t, engineOpts...)
	return c
}

func (c *Client) logDebug(msg string, kv ...interface{}) { c.log.Debug(msg, kv...) }
func (c *Client) logInfo(msg string, kv ...interface{})  { c.log.Info(msg, kv...) }
func (c *Client) logError(msg string, kv ...interface{}) { c.log.Error(msg, kv...) }

// pollStatus reads tctlmID repeatedly via poll.Until, feeding each response
// to matcher, and returns the last response body read regardless of
// outcome. The pollers in pollers.go ignore it and keep their own decoded
// copy from matcher instead.
func (c *Client) pollStatus(ep endpoint.Endpoint, tctlmID byte, backoff, total time.Duration, op string, matcher func(resp []byte) (bool, error)) ([]byte, error) {
	var last []byte
	err := poll.Until(c.clock, uint32(backoff.Milliseconds()), uint32(total.Milliseconds()), op, func() (bool, error) {
		resp, err := c.t.SendReceive(ep, tctlmID, nil)
		if err != nil {
			return false, err
		}
		last = resp
		return matcher(resp)
	})
	return last, err
}

// peekMetadata reads a 2-byte size prefix and then the metadata block from
// buffer-provider frame 0, without an intervening commit — spec.md §4.5
// choreographer 1's requirement that the provider return the same bytes
// for two successive uncommitted GetFrameBuffer calls against one frame.
// The caller commits the returned buffer once it has consumed it.
func peekMetadata(buf bdt.BufferProvider) ([]byte, error) {
	sizePeek, err := buf.GetFrameBuffer(2)
	if err != nil {
		return nil, err
	}
	metaSize := int(sizePeek[0]) | int(sizePeek[1])<<8

	meta, err := buf.GetFrameBuffer(2 + metaSize)
	if err != nil {
		return nil, err
	}
	return meta, nil
}
