package tctlm

// Version is a Major.Minor.Patch triple, matching the CubeObc__Version
// layout (vMajor, vMinor U8; vPatch U16).
type Version struct {
	Major byte
	Minor byte
	Patch uint16
}

// libraryVersion and systemVersion are this module's counterparts to
// cubeObc_getVersion/cubeObc_getSystemVersion: the former is this
// transport's own release, the latter the TCTLM/BDT protocol revision it
// implements against the device firmware.
var (
	libraryVersion = Version{Major: 1, Minor: 0, Patch: 0}
	systemVersion  = Version{Major: 1, Minor: 0, Patch: 0}
)

// LibraryVersion returns this module's own version.
func LibraryVersion() Version { return libraryVersion }

// SystemVersion returns the TCTLM/BDT protocol revision this module
// implements.
func SystemVersion() Version { return systemVersion }

// HostAddr returns the address m was constructed with.
func (m *Master) HostAddr() byte { return m.hostAddr }
