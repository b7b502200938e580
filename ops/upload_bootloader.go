package ops

import (
	"github.com/cubespace-aero/go-tctlm/bdt"
	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/errcode"
)

// readErrors reads the Errors telemetry, used to populate a *Failure's
// status struct once a choreographer has already decided the transfer
// failed.
func (c *Client) readErrors(ep endpoint.Endpoint) (Errors, error) {
	resp, err := c.t.SendReceive(ep, idErrors, nil)
	if err != nil {
		return Errors{}, err
	}
	return decodeErrors(resp)
}

// readFtpState reads FileTransferStatus once, outside of any poll target,
// used to snapshot the device's status after a BDT-level failure.
func (c *Client) readFtpState(ep endpoint.Endpoint) (FileTransferStatus, error) {
	resp, err := c.t.SendReceive(ep, idFileTransferStatus, nil)
	if err != nil {
		return FileTransferStatus{}, err
	}
	return decodeFileTransferStatus(resp)
}

// UploadToBootloader runs choreographer 1: upload a firmware file to a
// device's bootloader for internal-flash programming. buf must return, for
// frame 0, a 2-byte size prefix followed by that many metadata bytes
// (peeked twice, uncommitted, before the setup command is issued); dataSize
// is the total byte count of the firmware payload that follows.
func (c *Client) UploadToBootloader(ep endpoint.Endpoint, buf bdt.BufferProvider, dataSize int) error {
	const op = "ops.UploadToBootloader"

	c.reportProgress(Progress{Operation: op, Phase: "meta"})
	meta, err := peekMetadata(buf)
	if err != nil {
		return err
	}
	if err := buf.CommitFrameBuffer(meta); err != nil {
		return errcode.Wrap(op, errcode.COMMIT, err)
	}

	if _, err := c.t.SendReceive(ep, idSetWriteFileSetup, meta); err != nil {
		return err
	}
	c.logDebug("bootloader write-file setup sent", "meta_len", len(meta))

	c.reportProgress(Progress{Operation: op, Phase: "poll", Detail: "BUSY_WAIT_FRAME"})
	state, err := c.pollBootloaderState(ep, stateBusyWaitFrame, bootloaderPollBackoff, bootloaderPollTotal)
	if err != nil {
		return err
	}
	if state.Result != 0 {
		errs, readErr := c.readErrors(ep)
		if readErr != nil {
			return readErr
		}
		return newFailure(op, errcode.FTP, errs)
	}

	c.reportProgress(Progress{Operation: op, Phase: "transfer"})
	if err := c.engine.Upload(ep, buf, dataSize); err != nil {
		errs, readErr := c.readErrors(ep)
		if readErr != nil {
			return err
		}
		if errcode.Is(err, errcode.FRAME) {
			return newFailure(op, errcode.FRAME, errs)
		}
		return err
	}

	c.reportProgress(Progress{Operation: op, Phase: "complete"})
	c.logInfo("bootloader upload complete", "bytes", dataSize)
	return nil
}
