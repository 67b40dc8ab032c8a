// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package recordlayer

import (
	"golang.org/x/crypto/cryptobyte"

	"github.com/streamsec/tls13/pkg/protocol"
)

// HeaderSize is the fixed size of the record header on the wire.
const HeaderSize = 5

// Header is the record header shared by TLSPlaintext and TLSCiphertext:
// 1 byte content type, 2 bytes legacy version, 2 bytes big-endian length.
//
// https://datatracker.ietf.org/doc/html/rfc8446#section-5.1
type Header struct {
	ContentType protocol.ContentType
	Version     protocol.Version
	Length      uint16
}

// Marshal encodes the header to binary.
func (h *Header) Marshal() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint8(uint8(h.ContentType))
	b.AddUint8(h.Version.Major)
	b.AddUint8(h.Version.Minor)
	b.AddUint16(h.Length)

	return b.Bytes()
}

// Unmarshal populates the header from binary.
func (h *Header) Unmarshal(data []byte) error {
	str := cryptobyte.String(data)

	var contentType uint8
	if !str.ReadUint8(&contentType) ||
		!str.ReadUint8(&h.Version.Major) ||
		!str.ReadUint8(&h.Version.Minor) ||
		!str.ReadUint16(&h.Length) {
		return ErrBufferTooSmall
	}

	h.ContentType = protocol.ContentType(contentType)
	if !h.ContentType.IsValid() {
		return ErrInvalidContentType
	}

	return nil
}
