// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package protocol

// Record size limits.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-5.1
// https://datatracker.ietf.org/doc/html/rfc8446#section-5.2
const (
	// MaxPlaintextFragment is the largest plaintext fragment a single record
	// may carry, 2^14 bytes.
	MaxPlaintextFragment = 1 << 14

	// MaxCiphertextExpansion is the headroom a protected record is allowed on
	// top of the plaintext limit for the content type byte, padding and the
	// authentication tag.
	MaxCiphertextExpansion = 256

	// MaxCiphertextFragment is the largest payload a protected record may
	// declare.
	MaxCiphertextFragment = MaxPlaintextFragment + MaxCiphertextExpansion
)
