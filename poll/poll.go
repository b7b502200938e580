package poll

import (
	"github.com/cubespace-aero/go-tctlm/clock"
	"github.com/cubespace-aero/go-tctlm/errcode"
)

// Read performs one status check, reporting whether the awaited condition
// currently holds. A non-nil error short-circuits the poll — pollers never
// retry a transport failure themselves (spec.md §4.4).
type Read func() (match bool, err error)

// Until runs read, sleeping backoffMS between attempts, until it reports a
// match, returns an error, or totalMS of elapsed time have passed without a
// match (errcode.TOUT). c is the clock used for both the elapsed-time check
// and the sleep, so tests can drive it deterministically.
func Until(c clock.Clock, backoffMS, totalMS uint32, op string, read Read) error {
	var elapsed uint32
	for {
		match, err := read()
		if err != nil {
			return err
		}
		if match {
			return nil
		}
		if elapsed >= totalMS {
			return errcode.New(op, errcode.TOUT)
		}
		c.DelayMS(backoffMS)
		elapsed += backoffMS
	}
}
