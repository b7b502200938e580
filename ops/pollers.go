package ops

import (
	"time"

	"github.com/cubespace-aero/go-tctlm/endpoint"
)

// pollBootState polls CommonFramework1.BootStatus until its state matches
// targetState (or, when notState is true, until it stops matching).
func (c *Client) pollBootState(ep endpoint.Endpoint, targetState byte, backoff, total time.Duration, notState bool) (BootStatus, error) {
	var status BootStatus
	_, err := c.pollStatus(ep, idBootStatus, backoff, total, "ops.pollBootState", func(resp []byte) (bool, error) {
		s, decErr := decodeBootStatus(resp)
		if decErr != nil {
			return false, decErr
		}
		status = s
		matches := s.State == targetState
		if notState {
			matches = !matches
		}
		return matches, nil
	})
	return status, err
}

// pollBootloaderState polls Bootloader5.State until its application state
// matches targetState, surfacing the device's internal result code
// alongside it either way.
func (c *Client) pollBootloaderState(ep endpoint.Endpoint, targetState byte, backoff, total time.Duration) (BootloaderState, error) {
	var status BootloaderState
	_, err := c.pollStatus(ep, idBootloaderState, backoff, total, "ops.pollBootloaderState", func(resp []byte) (bool, error) {
		s, decErr := decodeBootloaderState(resp)
		if decErr != nil {
			return false, decErr
		}
		status = s
		return s.AppState == targetState, nil
	})
	return status, err
}

// pollFtpState polls FileTransferStatus until its state matches
// targetState.
func (c *Client) pollFtpState(ep endpoint.Endpoint, targetState byte, backoff, total time.Duration) (FileTransferStatus, error) {
	var status FileTransferStatus
	_, err := c.pollStatus(ep, idFileTransferStatus, backoff, total, "ops.pollFtpState", func(resp []byte) (bool, error) {
		s, decErr := decodeFileTransferStatus(resp)
		if decErr != nil {
			return false, decErr
		}
		status = s
		return s.State == targetState, nil
	})
	return status, err
}

// pollFtpUpgradeState polls the upgrade-specific FTP state telemetry until
// its state matches targetState.
func (c *Client) pollFtpUpgradeState(ep endpoint.Endpoint, targetState byte, backoff, total time.Duration) (FileTransferStatus, error) {
	var status FileTransferStatus
	_, err := c.pollStatus(ep, idFtpUpgradeState, backoff, total, "ops.pollFtpUpgradeState", func(resp []byte) (bool, error) {
		s, decErr := decodeFileTransferStatus(resp)
		if decErr != nil {
			return false, decErr
		}
		status = s
		return s.State == targetState, nil
	})
	return status, err
}

// pollImageState polls ImageState until its state matches targetState.
func (c *Client) pollImageState(ep endpoint.Endpoint, targetState byte, backoff, total time.Duration) (ImageState, error) {
	var status ImageState
	_, err := c.pollStatus(ep, idImageState, backoff, total, "ops.pollImageState", func(resp []byte) (bool, error) {
		s, decErr := decodeImageState(resp)
		if decErr != nil {
			return false, decErr
		}
		status = s
		return s.State == targetState, nil
	})
	return status, err
}

// pollEventState polls the event/log download status telemetry until its
// state matches targetState (e.g. QDOWNLOAD).
func (c *Client) pollEventState(ep endpoint.Endpoint, targetState byte, backoff, total time.Duration) (EventState, error) {
	var status EventState
	_, err := c.pollStatus(ep, idEventState, backoff, total, "ops.pollEventState", func(resp []byte) (bool, error) {
		s, decErr := decodeEventState(resp)
		if decErr != nil {
			return false, decErr
		}
		status = s
		return s.State == targetState, nil
	})
	return status, err
}

// pollTlmState polls the generic telemetry-download status telemetry until
// its state matches targetState. spec.md §4.4 names this poller alongside
// the other six without binding it to a numbered §4.5 choreographer; it
// is exported indirectly through PollTlmState for callers composing their
// own telemetry-log download sequences on top of this package's transport.
func (c *Client) pollTlmState(ep endpoint.Endpoint, targetState byte, backoff, total time.Duration) (TlmState, error) {
	var status TlmState
	_, err := c.pollStatus(ep, idTlmState, backoff, total, "ops.pollTlmState", func(resp []byte) (bool, error) {
		s, decErr := decodeTlmState(resp)
		if decErr != nil {
			return false, decErr
		}
		status = s
		return s.State == targetState, nil
	})
	return status, err
}

// PollTlmState is the exported form of pollTlmState, for callers who need
// the generic telemetry-state poller directly rather than through one of
// the named choreographers.
func (c *Client) PollTlmState(ep endpoint.Endpoint, targetState byte, backoff, total time.Duration) (TlmState, error) {
	return c.pollTlmState(ep, targetState, backoff, total)
}

// PollBootState is the exported form of pollBootState. Like PollTlmState,
// spec.md §4.4 names this poller without binding it to a numbered §4.5
// choreographer, so it is exposed directly for callers building their own
// boot-state wait on top of this package's transport.
func (c *Client) PollBootState(ep endpoint.Endpoint, targetState byte, backoff, total time.Duration, notState bool) (BootStatus, error) {
	return c.pollBootState(ep, targetState, backoff, total, notState)
}
