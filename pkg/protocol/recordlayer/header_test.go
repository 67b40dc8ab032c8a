// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

package recordlayer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/streamsec/tls13/pkg/protocol"
)

func TestHeaderRoundTrip(t *testing.T) {
	for _, test := range []struct {
		Name               string
		Data               []byte
		Want               Header
		WantUnmarshalError error
	}{
		{
			Name: "Handshake",
			Data: []byte{0x16, 0x03, 0x01, 0x01, 0x42},
			Want: Header{
				ContentType: protocol.ContentTypeHandshake,
				Version:     protocol.Version1_0,
				Length:      0x0142,
			},
		},
		{
			Name: "ApplicationData",
			Data: []byte{0x17, 0x03, 0x03, 0x40, 0x11},
			Want: Header{
				ContentType: protocol.ContentTypeApplicationData,
				Version:     protocol.Version1_2,
				Length:      0x4011,
			},
		},
		{
			Name: "Alert, zero length",
			Data: []byte{0x15, 0x03, 0x03, 0x00, 0x00},
			Want: Header{
				ContentType: protocol.ContentTypeAlert,
				Version:     protocol.Version1_2,
			},
		},
		{
			Name:               "Truncated",
			Data:               []byte{0x16, 0x03, 0x03},
			WantUnmarshalError: ErrBufferTooSmall,
		},
		{
			Name:               "Unknown content type",
			Data:               []byte{0x19, 0x03, 0x03, 0x00, 0x00},
			WantUnmarshalError: ErrInvalidContentType,
		},
	} {
		var hdr Header
		assert.ErrorIs(t, hdr.Unmarshal(test.Data), test.WantUnmarshalError, "unmarshal: %s", test.Name)
		if test.WantUnmarshalError != nil {
			continue
		}
		assert.Equal(t, test.Want, hdr, "unmarshal: %s", test.Name)

		data, err := hdr.Marshal()
		assert.NoError(t, err, "marshal: %s", test.Name)
		assert.Equal(t, test.Data, data, "marshal: %s", test.Name)
	}
}

func TestHeaderMarshalSize(t *testing.T) {
	hdr := Header{
		ContentType: protocol.ContentTypeApplicationData,
		Version:     protocol.Version1_2,
		Length:      protocol.MaxCiphertextFragment,
	}

	data, err := hdr.Marshal()
	assert.NoError(t, err)
	assert.Len(t, data, HeaderSize)
}
