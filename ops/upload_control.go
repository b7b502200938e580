package ops

import (
	"github.com/cubespace-aero/go-tctlm/bdt"
	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/errcode"
)

// UploadToControlProgram runs choreographer 2: upload a file to a device's
// control-program flash area via FileTransferSetup.opCode=FTP_UPLOAD. Same
// metadata-peek shape as UploadToBootloader, but polls FileTransferStatus
// to BUSY with a 1 s window instead of Bootloader5.State.
func (c *Client) UploadToControlProgram(ep endpoint.Endpoint, buf bdt.BufferProvider, dataSize int) error {
	const op = "ops.UploadToControlProgram"

	c.reportProgress(Progress{Operation: op, Phase: "meta"})
	meta, err := peekMetadata(buf)
	if err != nil {
		return err
	}
	if err := buf.CommitFrameBuffer(meta); err != nil {
		return errcode.Wrap(op, errcode.COMMIT, err)
	}

	setup := encodeFileTransferSetup(opFTPUpload, meta)
	if _, err := c.t.SendReceive(ep, idFileTransferSetup, setup); err != nil {
		return err
	}
	c.logDebug("control-program file-transfer setup sent", "meta_len", len(meta))

	c.reportProgress(Progress{Operation: op, Phase: "poll", Detail: "BUSY"})
	status, err := c.pollFtpState(ep, stateBusy, ftpUploadPollBackoff, ftpUploadPollTotal)
	if err != nil {
		return err
	}
	if status.ErrorCode != 0 {
		return newFailure(op, errcode.FTP, status)
	}

	c.reportProgress(Progress{Operation: op, Phase: "transfer"})
	if err := c.engine.Upload(ep, buf, dataSize); err != nil {
		if errcode.Is(err, errcode.FRAME) {
			if final, readErr := c.readFtpState(ep); readErr == nil {
				return newFailure(op, errcode.FRAME, final)
			}
		}
		return err
	}

	c.reportProgress(Progress{Operation: op, Phase: "complete"})
	c.logInfo("control-program upload complete", "bytes", dataSize)
	return nil
}
