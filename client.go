// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package tls13

import (
	"net"

	"github.com/streamsec/tls13/pkg/protocol"
)

// Client creates a record transport Conn for the initiating side of nextConn.
func Client(nextConn net.Conn, config *Config) (*Conn, error) {
	return createConn(nextConn, protocol.SideClient, config)
}
