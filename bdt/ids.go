package bdt

// These TCTLM ids identify the four primitives the BDT engine issues.
// Real CubeSpace products generate their ids per-product from a register
// map; picking the concrete values is out of scope for this library (the
// caller's endpoint already carries enough information for the transport,
// and a real integration would source these from generated product
// headers). The values below are internally consistent placeholders used
// so the engine has something concrete to send — every choreographer in
// ops/ reaches them through Engine, so renumbering them to match a real
// product happens in this one file (plus the demo device in cmd/obcctl,
// which mirrors the values).
const (
	idTransferFrame = 0x10 // telecommand: TransferFrame(n uint16) setter
	idFrameInfo     = 0x90 // telemetry: FrameInfo getter
	idFrame         = 0x11 // telecommand: Frame setter (upload)
	idFrameGetter   = 0x91 // telemetry: Frame getter (download)
)
