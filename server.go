// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package tls13

import (
	"net"

	"github.com/streamsec/tls13/pkg/protocol"
)

// Server creates a record transport Conn for the responding side of nextConn.
func Server(nextConn net.Conn, config *Config) (*Conn, error) {
	return createConn(nextConn, protocol.SideServer, config)
}
