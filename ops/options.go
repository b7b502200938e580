package ops

import (
	"github.com/cubespace-aero/go-tctlm/bdt"
	"github.com/cubespace-aero/go-tctlm/clock"
	"github.com/cubespace-aero/go-tctlm/obclog"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithLogger attaches a logger. The default is obclog.Nop().
func WithLogger(l obclog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithProgressCallback attaches a per-phase progress callback.
func WithProgressCallback(cb ProgressCallback) Option {
	return func(c *Client) { c.progress = cb }
}

// WithClock overrides the default wall-clock time source, used by every
// poller this package builds on top of poll.Until.
func WithClock(clk clock.Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// WithEngineOptions forwards options to the bdt.Engine the client builds
// internally, e.g. to share a clock or wire a BDT-level progress callback
// distinct from this package's own.
func WithEngineOptions(opts ...bdt.Option) Option {
	return func(c *Client) { c.engineOpts = append(c.engineOpts, opts...) }
}
