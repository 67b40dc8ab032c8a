// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

// Package protocol provides the TLS 1.3 wire format constants shared by the
// record layer and the crypto packages.
package protocol

import "fmt"

// ContentType is the type tag carried in the first byte of every record.
//
// https://datatracker.ietf.org/doc/html/rfc8446#appendix-B.1
type ContentType uint8

// ContentType enums.
const (
	ContentTypeChangeCipherSpec ContentType = 20
	ContentTypeAlert            ContentType = 21
	ContentTypeHandshake        ContentType = 22
	ContentTypeApplicationData  ContentType = 23
	ContentTypeHeartbeat        ContentType = 24
)

// IsValid returns true if the value is a content type this implementation
// knows how to carry.
func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeChangeCipherSpec, ContentTypeAlert, ContentTypeHandshake,
		ContentTypeApplicationData, ContentTypeHeartbeat:
		return true
	default:
		return false
	}
}

func (c ContentType) String() string {
	switch c {
	case ContentTypeChangeCipherSpec:
		return "ChangeCipherSpec"
	case ContentTypeAlert:
		return "Alert"
	case ContentTypeHandshake:
		return "Handshake"
	case ContentTypeApplicationData:
		return "ApplicationData"
	case ContentTypeHeartbeat:
		return "Heartbeat"
	default:
		return fmt.Sprintf("Unknown ContentType: %d", uint8(c))
	}
}
