// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package tls13

import (
	"errors"
	"fmt"

	"github.com/streamsec/tls13/pkg/protocol/alert"
)

// Typed errors.
var (
	// ErrConnClosed is returned when operating on a Conn after Close.
	ErrConnClosed = errors.New("conn is closed")

	errNoConfigProvided = errors.New("no config provided")
	errNilNextConn      = errors.New("conn can not be created with a nil nextConn")
)

// AlertError is returned by Read when the peer terminates the connection with
// an alert other than close_notify.
type AlertError struct {
	Alert alert.Alert
}

func (e *AlertError) Error() string {
	return fmt.Sprintf("received alert: %s %s", e.Alert.Level, e.Alert.Description)
}
