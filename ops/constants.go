package ops

import "time"

// TCTLM ids for the setup telecommands and status telemetries the
// choreographers drive. Like bdt/ids.go, real per-product id assignment is
// out of scope for this library; these are internally consistent
// placeholders that every choreographer in this package shares, so
// renumbering to match a real product touches only this file (plus the
// demo device in cmd/obcctl, which mirrors some of the values).
const (
	idSetWriteFileSetup = 0x20 // telecommand: bootloader file-upload setup
	idBootStatus         = 0x81 // telemetry: CommonFramework1.BootStatus
	idBootloaderState    = 0x82 // telemetry: Bootloader5.State
	idErrors             = 0x83 // telemetry: Errors

	idFileTransferSetup  = 0x21 // telecommand: FileTransferSetup
	idFileTransferStatus = 0x84 // telemetry: FileTransferStatus

	idFtpUpgradeState = 0x85 // telemetry: upgrade-specific FTP state

	idImageSetup = 0x22 // telecommand: image capture/download setup
	idImageState = 0x86 // telemetry: ImageState

	idEventState = 0x87 // telemetry: EventState (log/event download)
	idTlmState   = 0x88 // telemetry: generic telemetry-download state

	idInfoReset     = 0x23 // telecommand: reset the image-info walk cursor
	idImageFileInfo = 0x89 // telemetry: next ImageFileInfo entry

	idLogFilterSetup = 0x24 // telecommand: event/telemetry log download filter setup
)

// Bootloader / FTP state values polled by the choreographers. Named per
// spec.md §4.5's literal state names; concrete numeric values are this
// library's own placeholder encoding (see the id constants above).
const (
	stateBusyWaitFrame byte = 1 // Bootloader5.State.appState while awaiting BDT frames
	stateBusy          byte = 2 // FileTransferStatus.state during FTP_UPLOAD
	stateQDownload     byte = 3 // EventState/TlmState while queued for download
	stateCaptureBusy   byte = 4 // ImageState.state == BUSY_STORE
	stateIdle          byte = 5 // ImageState.state == IDLE
	stateBusyDownload  byte = 6 // ImageState.state == BUSY_DOWNLOAD
	stateUpgradeIdle   byte = 7 // FileTransferStatus.state == UPGRADE_IDLE after FTP_UPGRADE
)

// FileTransferSetup opcodes.
const (
	opFTPUpload  byte = 1
	opFTPUpgrade byte = 2
)

// Image setup opcodes.
const (
	opCaptureStore   byte = 1
	opDownloadDirect byte = 2
	opDownloadStored byte = 3
)

// Image-info walk reset value, written via idInfoReset.
const infoReset byte = 1

// Poll windows and backoffs named directly from spec.md §4.5.
const (
	bootloaderPollTotal   = 30 * time.Second
	bootloaderPollBackoff = 200 * time.Millisecond

	ftpUploadPollTotal   = 1 * time.Second
	ftpUploadPollBackoff = 50 * time.Millisecond

	logDownloadPollTotal   = 10 * time.Second
	logDownloadPollBackoff = 200 * time.Millisecond

	imageCaptureConfirmTotal = 5 * time.Second
	imageCaptureIdleTotal    = 120 * time.Second
	imageCapturePollBackoff  = 200 * time.Millisecond

	imageDownloadConfirmTotal = 5 * time.Second
	imageDownloadPollBackoff  = 200 * time.Millisecond

	upgradePollTotal   = 120 * time.Second
	upgradePollBackoff = 500 * time.Millisecond

	imageInfoRetries = 10
	imageInfoBackoff = 50 * time.Millisecond
)
