// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

// Package ciphersuite provides the record protection crypto consumed by the
// record layer: AEAD seal/open keyed by a per-record sequence number.
package ciphersuite

import (
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"fmt"
)

// nonceLength is shared by every TLS 1.3 AEAD (RFC 8446 section 5.3).
const nonceLength = 12

var (
	errAuthenticationFailed = errors.New("record authentication failed")
	errInvalidIVLength      = errors.New("write IV must be exactly the AEAD nonce length")
)

// aead is the shared TLS 1.3 AEAD core. Seal uses the local half and Open the
// remote half, so one value serves both pipeline directions of a connection.
type aead struct {
	localAEAD     cipher.AEAD
	remoteAEAD    cipher.AEAD
	localWriteIV  []byte
	remoteWriteIV []byte
}

func newAEADPair(local, remote cipher.AEAD, localWriteIV, remoteWriteIV []byte) (*aead, error) {
	if len(localWriteIV) != nonceLength || len(remoteWriteIV) != nonceLength {
		return nil, errInvalidIVLength
	}

	return &aead{
		localAEAD:     local,
		remoteAEAD:    remote,
		localWriteIV:  localWriteIV,
		remoteWriteIV: remoteWriteIV,
	}, nil
}

// nonce implements RFC 8446 section 5.3: the big-endian sequence number,
// left-padded to IV size, XORed with the write IV. Unique per record as long
// as the sequence number never repeats under one key.
func nonce(writeIV []byte, sequenceNumber uint64) []byte {
	out := make([]byte, nonceLength)
	copy(out, writeIV)

	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], sequenceNumber)
	for i := 0; i < 8; i++ {
		out[nonceLength-8+i] ^= seq[i]
	}

	return out
}

// Seal protects plaintext under the local write key.
func (a *aead) Seal(sequenceNumber uint64, additionalData, plaintext []byte) ([]byte, error) {
	return a.localAEAD.Seal(nil, nonce(a.localWriteIV, sequenceNumber), plaintext, additionalData), nil
}

// Open authenticates and decrypts ciphertext under the remote write key.
func (a *aead) Open(sequenceNumber uint64, additionalData, ciphertext []byte) ([]byte, error) {
	plaintext, err := a.remoteAEAD.Open(nil, nonce(a.remoteWriteIV, sequenceNumber), ciphertext, additionalData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errAuthenticationFailed, err) //nolint:errorlint
	}

	return plaintext, nil
}

// Overhead is the number of bytes Seal adds on top of the plaintext.
func (a *aead) Overhead() int {
	return a.localAEAD.Overhead()
}
