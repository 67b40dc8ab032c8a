// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package tls13

import (
	"github.com/pion/logging"

	"github.com/streamsec/tls13/pkg/protocol/recordlayer"
)

// Config is used to configure a record transport Conn.
// After a Config is passed to Client or Server it must not be modified.
type Config struct {
	// CipherState protects outgoing records and opens incoming ones. Keys are
	// established elsewhere; the Conn only moves records. Nil runs the
	// connection in plaintext record mode, the state of a direction before
	// encryption is activated.
	CipherState recordlayer.CipherState

	// OnHandshakeFragment, when set, receives the fragment of every handshake
	// record read from the peer, such as post-handshake NewSessionTicket or
	// KeyUpdate messages. A returned error is surfaced by Read. Without the
	// callback those records are dropped.
	OnHandshakeFragment func(fragment []byte) error

	// LoggerFactory is used to produce the Conn's leveled logger. Defaults to
	// logging.NewDefaultLoggerFactory().
	LoggerFactory logging.LoggerFactory
}
