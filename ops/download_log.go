package ops

import (
	"github.com/cubespace-aero/go-tctlm/bdt"
	"github.com/cubespace-aero/go-tctlm/endpoint"
)

// DownloadLog runs choreographer 3: set a caller-built filter transfer
// setup, poll for QDOWNLOAD, then run the BDT download loop into buf. The
// filter payload's shape (which events/telemetries, time range, ...) is
// entirely caller-defined; this choreographer only frames it as the setup
// telecommand's payload.
func (c *Client) DownloadLog(ep endpoint.Endpoint, filter []byte, buf bdt.BufferProvider) error {
	const op = "ops.DownloadLog"

	if _, err := c.t.SendReceive(ep, idLogFilterSetup, filter); err != nil {
		return err
	}
	c.logDebug("log filter setup sent", "filter_len", len(filter))

	c.reportProgress(Progress{Operation: op, Phase: "poll", Detail: "QDOWNLOAD"})
	if _, err := c.pollEventState(ep, stateQDownload, logDownloadPollBackoff, logDownloadPollTotal); err != nil {
		return err
	}

	c.reportProgress(Progress{Operation: op, Phase: "transfer"})
	if err := c.engine.Download(ep, buf); err != nil {
		return err
	}

	c.reportProgress(Progress{Operation: op, Phase: "complete"})
	c.logInfo("log download complete")
	return nil
}
