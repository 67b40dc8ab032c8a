// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

// Package hkdf13 implements the TLS 1.3 key expansion that turns traffic
// secrets into record protection keys
// https://tools.ietf.org/html/rfc8446#section-7.1
package hkdf13

import (
	"errors"
	"hash"
	"io"
	"math"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/hkdf"
)

// labelPrefix disambiguates TLS 1.3 expansions from every other HKDF user.
const labelPrefix = "tls13 "

var (
	errMissingHashFunction = errors.New("expand-label expected a non-nil hash function")
	errLabelTooBig         = errors.New("expand-label expected a label with length <= 255")
	errContextTooBig       = errors.New("expand-label expected a context with length <= 255")
	errLengthOutOfRange    = errors.New("expand-label expected an output length that fits a uint16")
)

// ExpandLabel implements HKDF-Expand-Label from RFC 8446 section 7.1: an
// HKDF-Expand call whose info is the serialized HkdfLabel structure.
func ExpandLabel(hashFunc func() hash.Hash, secret []byte, label string, context []byte, length int) ([]byte, error) {
	if hashFunc == nil {
		return nil, errMissingHashFunction
	}

	fullLabel := labelPrefix + label
	if len(fullLabel) > math.MaxUint8 {
		return nil, errLabelTooBig
	}
	if len(context) > math.MaxUint8 {
		return nil, errContextTooBig
	}
	if length < 0 || length > math.MaxUint16 {
		return nil, errLengthOutOfRange
	}

	// The HkdfLabel structure (RFC 8446 section 7.1).
	var builder cryptobyte.Builder
	builder.AddUint16(uint16(length))
	builder.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes([]byte(fullLabel))
	})
	builder.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(context)
	})
	info, err := builder.Bytes()
	if err != nil {
		return nil, err
	}

	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.Expand(hashFunc, secret, info), out); err != nil {
		return nil, err
	}

	return out, nil
}

// TrafficKey derives the record protection key and IV from a traffic secret
// (RFC 8446 section 7.3). Deriving the secret itself is the key schedule's
// job, not ours.
func TrafficKey(hashFunc func() hash.Hash, secret []byte, keyLen, ivLen int) (key, iv []byte, err error) {
	if key, err = ExpandLabel(hashFunc, secret, "key", nil, keyLen); err != nil {
		return nil, nil, err
	}
	if iv, err = ExpandLabel(hashFunc, secret, "iv", nil, ivLen); err != nil {
		return nil, nil, err
	}

	return key, iv, nil
}
