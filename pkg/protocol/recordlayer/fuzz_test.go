// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package recordlayer

import (
	"testing"

	"github.com/streamsec/tls13/pkg/protocol"
)

func FuzzNextRecord(f *testing.F) {
	f.Add([]byte{0x16, 0x03, 0x01, 0x00, 0x03, 0x0a, 0x0b, 0x0c})
	f.Add([]byte{0x17, 0x03, 0x03, 0xff, 0xff})
	f.Add([]byte{0x14, 0x03, 0x03, 0x00, 0x01, 0x01})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		layer := New(protocol.SideServer)
		layer.Ingest(data)

		for {
			res, err := layer.NextRecord(nil)
			if err != nil {
				return
			}
			if res.Record == nil {
				if res.BytesNeeded <= 0 {
					t.Fatal("no record and no forward progress demanded")
				}

				return
			}
			if len(res.Record.Fragment) > protocol.MaxPlaintextFragment {
				t.Fatalf("fragment exceeds limit: %d", len(res.Record.Fragment))
			}
		}
	})
}
