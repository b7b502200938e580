package ops

import (
	"github.com/cubespace-aero/go-tctlm/bdt"
	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/errcode"
)

func leBytes32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// CaptureAndStoreImage runs choreographer 4: trigger a capture-and-store,
// confirm the device entered BUSY_STORE within 5 s, then wait up to 120 s
// for it to return to IDLE.
func (c *Client) CaptureAndStoreImage(ep endpoint.Endpoint) error {
	const op = "ops.CaptureAndStoreImage"

	if _, err := c.t.SendReceive(ep, idImageSetup, encodeImageSetup(opCaptureStore, nil)); err != nil {
		return err
	}

	c.reportProgress(Progress{Operation: op, Phase: "poll", Detail: "BUSY_STORE"})
	if _, err := c.pollImageState(ep, stateCaptureBusy, imageCapturePollBackoff, imageCaptureConfirmTotal); err != nil {
		return err
	}

	c.reportProgress(Progress{Operation: op, Phase: "poll", Detail: "IDLE"})
	status, err := c.pollImageState(ep, stateIdle, imageCapturePollBackoff, imageCaptureIdleTotal)
	if err != nil {
		return err
	}
	if status.ErrorCode != 0 {
		return newFailure(op, errcode.IMG, status)
	}

	c.reportProgress(Progress{Operation: op, Phase: "complete"})
	c.logInfo("image capture complete")
	return nil
}

// DownloadImageDirect runs choreographer 5's direct-download variant: set
// the direct-download setup, confirm BUSY_DOWNLOAD within 5 s, then run the
// BDT download loop.
func (c *Client) DownloadImageDirect(ep endpoint.Endpoint, buf bdt.BufferProvider) error {
	return c.downloadImage(ep, encodeImageSetup(opDownloadDirect, nil), buf, "ops.DownloadImageDirect")
}

// DownloadImageStored runs choreographer 5's stored-image variant: like
// DownloadImageDirect but selecting a previously captured image by handle.
func (c *Client) DownloadImageStored(ep endpoint.Endpoint, fileHandle uint32, buf bdt.BufferProvider) error {
	setup := encodeImageSetup(opDownloadStored, leBytes32(fileHandle))
	return c.downloadImage(ep, setup, buf, "ops.DownloadImageStored")
}

func (c *Client) downloadImage(ep endpoint.Endpoint, setup []byte, buf bdt.BufferProvider, op string) error {
	if _, err := c.t.SendReceive(ep, idImageSetup, setup); err != nil {
		return err
	}

	c.reportProgress(Progress{Operation: op, Phase: "poll", Detail: "BUSY_DOWNLOAD"})
	status, err := c.pollImageState(ep, stateBusyDownload, imageDownloadPollBackoff, imageDownloadConfirmTotal)
	if err != nil {
		return err
	}
	if status.ErrorCode != 0 {
		return newFailure(op, errcode.IMG, status)
	}

	c.reportProgress(Progress{Operation: op, Phase: "transfer"})
	if err := c.engine.Download(ep, buf); err != nil {
		return err
	}

	c.reportProgress(Progress{Operation: op, Phase: "complete"})
	c.logInfo("image download complete")
	return nil
}
