// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package recordlayer

import "errors"

// All of these are fatal to the connection; none are retried locally. The
// caller is expected to tear the connection down and notify the peer.
var (
	// ErrBufferTooSmall is returned by Header.Unmarshal when fewer than
	// HeaderSize bytes are supplied.
	ErrBufferTooSmall = errors.New("buffer is too small")

	// ErrInvalidContentType is returned for a content type byte this
	// implementation does not carry.
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrRecordOverflow is returned when a record declares, or decrypts to,
	// a payload above the protocol maximum.
	ErrRecordOverflow = errors.New("record payload exceeds maximum size")

	// ErrUnsupportedProtocolVersion is returned when a non-initial record does
	// not carry the ossified 0x0303 version sentinel.
	ErrUnsupportedProtocolVersion = errors.New("unsupported protocol version")

	// ErrDecryptFailed covers both AEAD rejection and content type recovery
	// failure. The two are deliberately not told apart to keep decode failures
	// free of oracle value.
	ErrDecryptFailed = errors.New("failed to decrypt record")

	// ErrUnencryptedRecord is returned when a plaintext record other than
	// change_cipher_spec arrives while a cipher state is supplied.
	ErrUnencryptedRecord = errors.New("unencrypted record received while encryption is active")

	// ErrInvalidChangeCipherSpec is returned for a change_cipher_spec record
	// whose body is not the single byte 0x01.
	ErrInvalidChangeCipherSpec = errors.New("invalid change_cipher_spec record")

	// ErrBufferOverflow is returned when the unconsumed accumulation buffer
	// outgrows its hard cap.
	ErrBufferOverflow = errors.New("unprocessed receive buffer limit exceeded")

	// ErrSequenceNumberOverflow is returned instead of wrapping a sequence
	// number, which would reuse an AEAD nonce.
	ErrSequenceNumberOverflow = errors.New("sequence number overflow")

	errSealedLengthMismatch = errors.New("sealed record length does not match cipher overhead")
)
