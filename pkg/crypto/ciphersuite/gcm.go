// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package ciphersuite

import (
	"crypto/aes"
	"crypto/cipher"
	"hash"

	"github.com/streamsec/tls13/pkg/crypto/hkdf13"
)

// GCM is the AES-GCM record protection of TLS 1.3. The key length selects
// AES-128 or AES-256.
type GCM struct {
	*aead
}

// NewGCM creates a GCM cipher state from raw keys and write IVs.
func NewGCM(localKey, localWriteIV, remoteKey, remoteWriteIV []byte) (*GCM, error) {
	local, err := newGCMAEAD(localKey)
	if err != nil {
		return nil, err
	}
	remote, err := newGCMAEAD(remoteKey)
	if err != nil {
		return nil, err
	}

	core, err := newAEADPair(local, remote, localWriteIV, remoteWriteIV)
	if err != nil {
		return nil, err
	}

	return &GCM{aead: core}, nil
}

// NewGCMWithTrafficSecrets creates a GCM cipher state by expanding a traffic
// secret per direction into its key and IV.
func NewGCMWithTrafficSecrets(
	hashFunc func() hash.Hash, localSecret, remoteSecret []byte, keyLen int,
) (*GCM, error) {
	localKey, localWriteIV, err := hkdf13.TrafficKey(hashFunc, localSecret, keyLen, nonceLength)
	if err != nil {
		return nil, err
	}
	remoteKey, remoteWriteIV, err := hkdf13.TrafficKey(hashFunc, remoteSecret, keyLen, nonceLength)
	if err != nil {
		return nil, err
	}

	return NewGCM(localKey, localWriteIV, remoteKey, remoteWriteIV)
}

func newGCMAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}
