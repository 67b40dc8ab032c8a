// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package protocol

// Version enums.
var (
	Version1_0 = Version{Major: 0x03, Minor: 0x01} //nolint:gochecknoglobals
	Version1_2 = Version{Major: 0x03, Minor: 0x03} //nolint:gochecknoglobals
)

// Version is the legacy_record_version field of the record header. TLS 1.3
// ossified it: every record carries 0x0303 (TLS 1.2), except that an initial
// ClientHello may carry 0x0301 so that inspecting middleboxes keep working.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-5.1
type Version struct {
	Major, Minor uint8
}

// Equal determines if two protocol versions are equal.
func (v Version) Equal(x Version) bool {
	return v.Major == x.Major && v.Minor == x.Minor
}

// IsInitialCompatible returns true if the value is tolerable on the first
// record of a connection. Deployed middleboxes emit anything in the 0x03XX
// range there, so only the major byte is pinned.
func (v Version) IsInitialCompatible() bool {
	return v.Major == 0x03
}
