package poll

import (
	"testing"

	"github.com/cubespace-aero/go-tctlm/errcode"
)

type fakeClock struct{ now uint32 }

func (c *fakeClock) NowMS() uint32     { return c.now }
func (c *fakeClock) DelayMS(ms uint32) { c.now += ms }

func TestUntilMatchesImmediately(t *testing.T) {
	c := &fakeClock{}
	err := Until(c, 10, 1000, "test.op", func() (bool, error) { return true, nil })
	if err != nil {
		t.Fatalf("Until() = %v, want nil", err)
	}
}

func TestUntilMatchesAfterRetries(t *testing.T) {
	c := &fakeClock{}
	attempts := 0
	err := Until(c, 10, 1000, "test.op", func() (bool, error) {
		attempts++
		return attempts == 3, nil
	})
	if err != nil {
		t.Fatalf("Until() = %v, want nil", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
	if c.now != 20 {
		t.Fatalf("clock advanced by %d, want 20 (two 10ms backoffs)", c.now)
	}
}

func TestUntilPropagatesReadError(t *testing.T) {
	c := &fakeClock{}
	want := errcode.New("test.op", errcode.READ)
	err := Until(c, 10, 1000, "test.op", func() (bool, error) { return false, want })
	if err != want {
		t.Fatalf("Until() = %v, want %v", err, want)
	}
}

func TestUntilTimesOut(t *testing.T) {
	c := &fakeClock{}
	err := Until(c, 10, 25, "test.op", func() (bool, error) { return false, nil })
	if !errcode.Is(err, errcode.TOUT) {
		t.Fatalf("Until() = %v, want TOUT", err)
	}
}
