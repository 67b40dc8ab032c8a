// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

//go:build !js
// +build !js

package tls13

import (
	"bytes"
	"crypto/sha256"
	"net"
	"testing"
	"time"

	"github.com/pion/transport/v3/test"
	"golang.org/x/net/nettest"

	"github.com/streamsec/tls13/pkg/crypto/ciphersuite"
)

func TestNetTest(t *testing.T) {
	lim := test.TimeOut(time.Minute*1 + time.Second*10)
	defer lim.Stop()

	nettest.TestConn(t, func() (c1, c2 net.Conn, stop func(), err error) {
		clientSecret := bytes.Repeat([]byte{0xc1}, 32)
		serverSecret := bytes.Repeat([]byte{0x51}, 32)

		clientCipher, err := ciphersuite.NewGCMWithTrafficSecrets(sha256.New, clientSecret, serverSecret, 16)
		if err != nil {
			return nil, nil, nil, err
		}
		serverCipher, err := ciphersuite.NewGCMWithTrafficSecrets(sha256.New, serverSecret, clientSecret, 16)
		if err != nil {
			return nil, nil, nil, err
		}

		ca, cb := net.Pipe()
		client, err := Client(ca, &Config{CipherState: clientCipher})
		if err != nil {
			return nil, nil, nil, err
		}
		server, err := Server(cb, &Config{CipherState: serverCipher})
		if err != nil {
			return nil, nil, nil, err
		}

		stop = func() {
			_ = client.Close()
			_ = server.Close()
		}

		return client, server, stop, nil
	})
}
