// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package ciphersuite

import (
	"hash"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/streamsec/tls13/pkg/crypto/hkdf13"
)

// ChaCha20Poly1305 is the ChaCha20-Poly1305 record protection of TLS 1.3.
type ChaCha20Poly1305 struct {
	*aead
}

// NewChaCha20Poly1305 creates a ChaCha20-Poly1305 cipher state from raw keys
// and write IVs.
func NewChaCha20Poly1305(localKey, localWriteIV, remoteKey, remoteWriteIV []byte) (*ChaCha20Poly1305, error) {
	local, err := chacha20poly1305.New(localKey)
	if err != nil {
		return nil, err
	}
	remote, err := chacha20poly1305.New(remoteKey)
	if err != nil {
		return nil, err
	}

	core, err := newAEADPair(local, remote, localWriteIV, remoteWriteIV)
	if err != nil {
		return nil, err
	}

	return &ChaCha20Poly1305{aead: core}, nil
}

// NewChaCha20Poly1305WithTrafficSecrets creates a ChaCha20-Poly1305 cipher
// state by expanding a traffic secret per direction into its key and IV.
func NewChaCha20Poly1305WithTrafficSecrets(
	hashFunc func() hash.Hash, localSecret, remoteSecret []byte,
) (*ChaCha20Poly1305, error) {
	localKey, localWriteIV, err := hkdf13.TrafficKey(hashFunc, localSecret, chacha20poly1305.KeySize, nonceLength)
	if err != nil {
		return nil, err
	}
	remoteKey, remoteWriteIV, err := hkdf13.TrafficKey(hashFunc, remoteSecret, chacha20poly1305.KeySize, nonceLength)
	if err != nil {
		return nil, err
	}

	return NewChaCha20Poly1305(localKey, localWriteIV, remoteKey, remoteWriteIV)
}
