// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package hkdf13

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandLabelDeterministic(t *testing.T) {
	secret := bytes.Repeat([]byte{0xab}, 32)

	first, err := ExpandLabel(sha256.New, secret, "key", nil, 16)
	require.NoError(t, err)
	second, err := ExpandLabel(sha256.New, secret, "key", nil, 16)
	require.NoError(t, err)

	assert.Len(t, first, 16)
	assert.Equal(t, first, second)
}

func TestExpandLabelSensitivity(t *testing.T) {
	secret := bytes.Repeat([]byte{0xab}, 32)

	base, err := ExpandLabel(sha256.New, secret, "key", nil, 16)
	require.NoError(t, err)

	// Every input is bound into the expansion.
	otherLabel, err := ExpandLabel(sha256.New, secret, "iv", nil, 16)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherLabel)

	otherContext, err := ExpandLabel(sha256.New, secret, "key", []byte{0x01}, 16)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherContext)

	otherSecret, err := ExpandLabel(sha256.New, bytes.Repeat([]byte{0xba}, 32), "key", nil, 16)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherSecret)

	otherHash, err := ExpandLabel(sha512.New384, secret, "key", nil, 16)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherHash)

	// The requested length is part of the HkdfLabel, not just a truncation.
	longer, err := ExpandLabel(sha256.New, secret, "key", nil, 32)
	require.NoError(t, err)
	assert.NotEqual(t, base, longer[:16])
}

func TestExpandLabelErrors(t *testing.T) {
	secret := bytes.Repeat([]byte{0xab}, 32)

	_, err := ExpandLabel(nil, secret, "key", nil, 16)
	assert.ErrorIs(t, err, errMissingHashFunction)

	_, err = ExpandLabel(sha256.New, secret, strings.Repeat("x", 250), nil, 16)
	assert.ErrorIs(t, err, errLabelTooBig)

	_, err = ExpandLabel(sha256.New, secret, "key", make([]byte, 256), 16)
	assert.ErrorIs(t, err, errContextTooBig)

	_, err = ExpandLabel(sha256.New, secret, "key", nil, -1)
	assert.ErrorIs(t, err, errLengthOutOfRange)

	_, err = ExpandLabel(sha256.New, secret, "key", nil, 1<<16)
	assert.ErrorIs(t, err, errLengthOutOfRange)
}

func TestExpandLabelBoundaries(t *testing.T) {
	secret := bytes.Repeat([]byte{0xab}, 32)

	out, err := ExpandLabel(sha256.New, secret, "key", nil, 0)
	require.NoError(t, err)
	assert.Empty(t, out)

	// 249 label characters plus the "tls13 " prefix is exactly 255.
	_, err = ExpandLabel(sha256.New, secret, strings.Repeat("x", 249), nil, 16)
	assert.NoError(t, err)

	_, err = ExpandLabel(sha256.New, secret, "key", make([]byte, 255), 16)
	assert.NoError(t, err)
}

func TestTrafficKey(t *testing.T) {
	secret := bytes.Repeat([]byte{0x77}, 32)

	key, iv, err := TrafficKey(sha256.New, secret, 16, 12)
	require.NoError(t, err)
	assert.Len(t, key, 16)
	assert.Len(t, iv, 12)
	assert.NotEqual(t, key[:12], iv)

	// The two outputs are the "key" and "iv" expansions of the secret.
	wantKey, err := ExpandLabel(sha256.New, secret, "key", nil, 16)
	require.NoError(t, err)
	wantIV, err := ExpandLabel(sha256.New, secret, "iv", nil, 12)
	require.NoError(t, err)
	assert.Equal(t, wantKey, key)
	assert.Equal(t, wantIV, iv)

	_, _, err = TrafficKey(nil, secret, 16, 12)
	assert.ErrorIs(t, err, errMissingHashFunction)
}
