// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package protocol

// Side marks which end of the connection an instance belongs to. It is fixed
// at construction and only influences legacy version framing.
type Side uint8

// Side enums.
const (
	SideClient Side = iota + 1
	SideServer
)

func (s Side) String() string {
	switch s {
	case SideClient:
		return "client"
	case SideServer:
		return "server"
	default:
		return "unknown side"
	}
}
