package obclog_test

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cubespace-aero/go-tctlm/obclog"
)

func TestNopSwallowsEverything(t *testing.T) {
	l := obclog.Nop()
	l.Debug("x")
	l.Info("x", "k", "v")
	l.Error("x", "k")
}

func TestFromLogrusOddKeyValues(t *testing.T) {
	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)
	l := obclog.FromLogrus(base)

	// odd-length kv list should not panic; the last value falls into "extra".
	l.Info("odd", "k1", "v1", "dangling")
}
