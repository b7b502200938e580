package ops

import (
	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/errcode"
)

// Upgrade runs choreographer 6: trigger FTP_UPGRADE — the device activates
// a previously uploaded image — and wait up to 120 s for it to report
// UPGRADE_IDLE. forcePort selects an alternate hardware port on the target
// bootloader and is only meaningful when upgrading a subordinate node
// through passthrough; it is rejected for a CubeComputer self-upgrade.
func (c *Client) Upgrade(ep endpoint.Endpoint, forcePort bool) error {
	const op = "ops.Upgrade"

	if ep.NodeType != endpoint.NodeCubeComputer {
		return &NodeTypeError{Op: op, Got: ep.NodeType, Expected: endpoint.NodeCubeComputer}
	}
	if forcePort && !ep.Passthrough {
		return errcode.New(op, errcode.USAGE)
	}

	forcePortByte := byte(0)
	if forcePort {
		forcePortByte = 1
	}
	setup := encodeFileTransferSetup(opFTPUpgrade, []byte{forcePortByte})
	if _, err := c.t.SendReceive(ep, idFileTransferSetup, setup); err != nil {
		return err
	}
	c.logDebug("upgrade triggered", "force_port", forcePort)

	c.reportProgress(Progress{Operation: op, Phase: "poll", Detail: "UPGRADE_IDLE"})
	status, err := c.pollFtpUpgradeState(ep, stateUpgradeIdle, upgradePollBackoff, upgradePollTotal)
	if err != nil {
		return err
	}
	if status.ErrorCode != 0 {
		return newFailure(op, errcode.FTP, status)
	}

	c.reportProgress(Progress{Operation: op, Phase: "complete"})
	c.logInfo("upgrade complete")
	return nil
}
