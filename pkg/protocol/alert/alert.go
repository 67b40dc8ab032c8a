// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

// Package alert implements the TLS alert content type
// https://tools.ietf.org/html/rfc8446#section-6
package alert

import (
	"errors"
	"fmt"
)

var errBufferTooSmall = errors.New("buffer is too small")

// Level is the severity of an alert.
type Level uint8

// Level enums. TLS 1.3 derives the real severity from the description; the
// level byte is kept on the wire for compatibility.
const (
	Warning Level = 1
	Fatal   Level = 2
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "Warning"
	case Fatal:
		return "Fatal"
	default:
		return "Invalid Level"
	}
}

// Description is the reason the alert was sent.
type Description uint8

// Description enums.
const (
	CloseNotify           Description = 0
	UnexpectedMessage     Description = 10
	BadRecordMac          Description = 20
	RecordOverflow        Description = 22
	HandshakeFailure      Description = 40
	IllegalParameter      Description = 47
	DecodeError           Description = 50
	DecryptError          Description = 51
	ProtocolVersion       Description = 70
	InsufficientSecurity  Description = 71
	InternalError         Description = 80
	UserCanceled          Description = 90
	MissingExtension      Description = 109
	UnsupportedExtension  Description = 110
	UnrecognizedName      Description = 112
	CertificateRequired   Description = 116
	NoApplicationProtocol Description = 120
)

func (d Description) String() string {
	switch d {
	case CloseNotify:
		return "CloseNotify"
	case UnexpectedMessage:
		return "UnexpectedMessage"
	case BadRecordMac:
		return "BadRecordMac"
	case RecordOverflow:
		return "RecordOverflow"
	case HandshakeFailure:
		return "HandshakeFailure"
	case IllegalParameter:
		return "IllegalParameter"
	case DecodeError:
		return "DecodeError"
	case DecryptError:
		return "DecryptError"
	case ProtocolVersion:
		return "ProtocolVersion"
	case InsufficientSecurity:
		return "InsufficientSecurity"
	case InternalError:
		return "InternalError"
	case UserCanceled:
		return "UserCanceled"
	case MissingExtension:
		return "MissingExtension"
	case UnsupportedExtension:
		return "UnsupportedExtension"
	case UnrecognizedName:
		return "UnrecognizedName"
	case CertificateRequired:
		return "CertificateRequired"
	case NoApplicationProtocol:
		return "NoApplicationProtocol"
	default:
		return "Invalid Description"
	}
}

// Alert conveys the severity of the message and a description of the alert.
// Fatal alerts result in the immediate termination of the connection.
type Alert struct {
	Level       Level
	Description Description
}

// Marshal encodes the alert to its two byte wire format.
func (a *Alert) Marshal() ([]byte, error) {
	return []byte{byte(a.Level), byte(a.Description)}, nil
}

// Unmarshal populates the alert from binary.
func (a *Alert) Unmarshal(data []byte) error {
	if len(data) != 2 {
		return errBufferTooSmall
	}

	a.Level = Level(data[0])
	a.Description = Description(data[1])

	return nil
}

func (a *Alert) String() string {
	return fmt.Sprintf("Alert %s: %s", a.Level, a.Description)
}
