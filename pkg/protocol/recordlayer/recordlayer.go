// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

// Package recordlayer implements the TLS 1.3 record protection layer
// https://tools.ietf.org/html/rfc8446#section-5
//
// The layer transforms bytes received from the peer into discrete,
// authenticated records and serializes outgoing plaintext into the wire
// format. It sits between the transport and the handshake/connection logic:
// all socket I/O and all key management belong to the caller.
package recordlayer

import (
	"math"

	"github.com/streamsec/tls13/pkg/protocol"
)

// CipherState is the capability the record layer consumes from the key
// schedule: authenticated seal/open keyed by a per-record sequence number.
// The record layer never sees keys, it only draws sequence numbers and
// invokes these operations. Open must return plaintext the caller may keep.
type CipherState interface {
	Seal(sequenceNumber uint64, additionalData, plaintext []byte) ([]byte, error)
	Open(sequenceNumber uint64, additionalData, ciphertext []byte) ([]byte, error)

	// Overhead is the number of bytes Seal adds on top of the plaintext. It is
	// needed up front because the declared ciphertext length is itself part of
	// the record's associated data.
	Overhead() int
}

// Record is one decoded unit of protocol content: the TLSPlaintext of RFC
// 8446 section 5.1 minus the ossified wire fields.
type Record struct {
	ContentType protocol.ContentType
	Fragment    []byte

	// SequenceNumber is the nonce counter consumed to open the record. It is
	// only meaningful when Protected is true; records exchanged before
	// encryption is enabled carry none.
	SequenceNumber uint64
	Protected      bool
}

// ReadResult is the outcome of one NextRecord attempt. Exactly one variant is
// set: either Record holds a fully decoded record, or BytesNeeded is the
// minimum number of additional bytes the caller must ingest before another
// attempt can make progress.
type ReadResult struct {
	Record      *Record
	BytesNeeded int
}

const (
	// maxWireRecord is a full protected record including its header.
	maxWireRecord = HeaderSize + protocol.MaxCiphertextFragment

	// maxBuffered caps unconsumed ingested bytes at a small multiple of the
	// largest legal record, bounding memory under adversarial input. Callers
	// are expected to drain NextRecord between ingests.
	maxBuffered = 8 * maxWireRecord
)

// RecordLayer owns the accumulation buffer of one connection and the
// per-direction record sequence numbers. A single instance serves both
// pipelines of the connection; it is not safe for concurrent use and is meant
// to be driven by one connection loop.
type RecordLayer struct {
	side protocol.Side

	// Accumulation buffer: appended by Ingest, consumed from the front by
	// NextRecord through an index window to avoid per-record reallocation.
	buf []byte
	off int

	readSeq  uint64
	writeSeq uint64

	initialRead  bool
	initialWrite bool
}

// New creates a RecordLayer for the given connection side.
func New(side protocol.Side) *RecordLayer {
	return &RecordLayer{side: side, initialRead: true, initialWrite: true}
}

// Ingest appends data received from the peer to the accumulation buffer for
// processing by NextRecord. No parsing happens here and the call never fails;
// bounding of the buffer is enforced during decode.
func (r *RecordLayer) Ingest(data []byte) {
	if r.off == len(r.buf) {
		r.buf = r.buf[:0]
		r.off = 0
	}
	r.buf = append(r.buf, data...)
}

// Buffered returns the number of ingested bytes not yet consumed.
func (r *RecordLayer) Buffered() int {
	return len(r.buf) - r.off
}

// NextRecord parses one record off the accumulation buffer.
//
// With a nil cipherState the payload is taken as plaintext, which is how
// records are processed before encryption is activated on the receive
// direction. With a cipher state supplied, application data records are
// authenticated-opened with the next receive sequence number and
// change_cipher_spec records pass through unprotected; any other plaintext
// content type is fatal.
//
// Any returned error is fatal to the connection.
func (r *RecordLayer) NextRecord(cipherState CipherState) (ReadResult, error) {
	if r.Buffered() > maxBuffered {
		return ReadResult{}, ErrBufferOverflow
	}

	pending := r.buf[r.off:]
	if len(pending) < HeaderSize {
		return ReadResult{BytesNeeded: HeaderSize - len(pending)}, nil
	}

	var hdr Header
	if err := hdr.Unmarshal(pending[:HeaderSize]); err != nil {
		return ReadResult{}, err
	}
	if err := r.checkVersion(hdr.Version); err != nil {
		return ReadResult{}, err
	}

	maxLength := protocol.MaxPlaintextFragment
	if cipherState != nil && hdr.ContentType == protocol.ContentTypeApplicationData {
		maxLength = protocol.MaxCiphertextFragment
	}
	if int(hdr.Length) > maxLength {
		// Never treated as shortfall: an oversized declaration cannot become
		// valid with more data.
		return ReadResult{}, ErrRecordOverflow
	}

	total := HeaderSize + int(hdr.Length)
	if len(pending) < total {
		return ReadResult{BytesNeeded: total - len(pending)}, nil
	}

	header := pending[:HeaderSize]
	payload := pending[HeaderSize:total]

	var rec *Record
	switch {
	case hdr.ContentType == protocol.ContentTypeChangeCipherSpec:
		// Legal in the clear even under an active cipher (middlebox
		// compatibility) and consumes no sequence number.
		if len(payload) != 1 || payload[0] != 0x01 {
			return ReadResult{}, ErrInvalidChangeCipherSpec
		}
		rec = &Record{ContentType: hdr.ContentType, Fragment: cloneBytes(payload)}
	case cipherState == nil:
		rec = &Record{ContentType: hdr.ContentType, Fragment: cloneBytes(payload)}
	case hdr.ContentType == protocol.ContentTypeApplicationData:
		var err error
		if rec, err = r.openRecord(cipherState, header, payload); err != nil {
			return ReadResult{}, err
		}
	default:
		return ReadResult{}, ErrUnencryptedRecord
	}

	r.off += total
	r.compact()
	r.initialRead = false

	return ReadResult{Record: rec}, nil
}

// PrepareRecords serializes data of the given content type into one or more
// wire records, fragmenting so that no record carries more than 2^14 bytes of
// plaintext. With a cipher state supplied each fragment is sealed under its
// own sequence number inside an opaque application data envelope;
// change_cipher_spec is always framed in the clear. The concatenated wire
// encoding of all records is returned; the accumulation buffer is untouched.
func (r *RecordLayer) PrepareRecords(
	contentType protocol.ContentType, data []byte, cipherState CipherState,
) ([]byte, error) {
	if !contentType.IsValid() {
		return nil, ErrInvalidContentType
	}
	if contentType == protocol.ContentTypeChangeCipherSpec {
		cipherState = nil
	}

	var out []byte
	for first := true; first || len(data) > 0; first = false {
		n := len(data)
		if n > protocol.MaxPlaintextFragment {
			n = protocol.MaxPlaintextFragment
		}
		fragment := data[:n]
		data = data[n:]

		var err error
		if cipherState != nil {
			out, err = r.appendProtected(out, contentType, fragment, cipherState)
		} else {
			out, err = r.appendPlaintext(out, contentType, fragment)
		}
		if err != nil {
			return nil, err
		}
		r.initialWrite = false
	}

	return out, nil
}

func (r *RecordLayer) checkVersion(version protocol.Version) error {
	if version.Equal(protocol.Version1_2) {
		return nil
	}
	if r.initialRead && version.IsInitialCompatible() {
		return nil
	}

	return ErrUnsupportedProtocolVersion
}

// openRecord authenticates and decrypts one protected payload, recovering the
// real content type from the padded inner plaintext.
func (r *RecordLayer) openRecord(cipherState CipherState, header, ciphertext []byte) (*Record, error) {
	if r.readSeq == math.MaxUint64 {
		return nil, ErrSequenceNumberOverflow
	}

	inner, err := cipherState.Open(r.readSeq, header, ciphertext)
	if err != nil {
		// Collapsed with the padding failure below so the two are
		// indistinguishable on the wire.
		return nil, ErrDecryptFailed
	}

	// The real content type is the last non-zero byte of the inner plaintext;
	// everything behind it is padding.
	last := len(inner) - 1
	for last >= 0 && inner[last] == 0 {
		last--
	}
	if last < 0 {
		return nil, ErrDecryptFailed
	}

	contentType := protocol.ContentType(inner[last])
	if !contentType.IsValid() || contentType == protocol.ContentTypeChangeCipherSpec {
		return nil, ErrInvalidContentType
	}

	fragment := inner[:last]
	if len(fragment) > protocol.MaxPlaintextFragment {
		return nil, ErrRecordOverflow
	}

	sequenceNumber := r.readSeq
	r.readSeq++

	return &Record{
		ContentType:    contentType,
		Fragment:       fragment,
		SequenceNumber: sequenceNumber,
		Protected:      true,
	}, nil
}

func (r *RecordLayer) appendPlaintext(
	out []byte, contentType protocol.ContentType, fragment []byte,
) ([]byte, error) {
	version := protocol.Version1_2
	if r.initialWrite && r.side == protocol.SideClient {
		// The record carrying the initial ClientHello advertises 0x0301 for
		// middlebox compatibility.
		version = protocol.Version1_0
	}

	hdr := Header{ContentType: contentType, Version: version, Length: uint16(len(fragment))}
	raw, err := hdr.Marshal()
	if err != nil {
		return nil, err
	}

	out = append(out, raw...)

	return append(out, fragment...), nil
}

func (r *RecordLayer) appendProtected(
	out []byte, contentType protocol.ContentType, fragment []byte, cipherState CipherState,
) ([]byte, error) {
	if r.writeSeq == math.MaxUint64 {
		return nil, ErrSequenceNumberOverflow
	}

	inner := make([]byte, 0, len(fragment)+1)
	inner = append(inner, fragment...)
	inner = append(inner, byte(contentType))

	length := len(inner) + cipherState.Overhead()
	if length > protocol.MaxCiphertextFragment {
		return nil, ErrRecordOverflow
	}

	hdr := Header{
		ContentType: protocol.ContentTypeApplicationData,
		Version:     protocol.Version1_2,
		Length:      uint16(length), //nolint:gosec // bounded by MaxCiphertextFragment
	}
	raw, err := hdr.Marshal()
	if err != nil {
		return nil, err
	}

	ciphertext, err := cipherState.Seal(r.writeSeq, raw, inner)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) != length {
		return nil, errSealedLengthMismatch
	}
	r.writeSeq++

	out = append(out, raw...)

	return append(out, ciphertext...), nil
}

// compact keeps consume-from-front cheap on long-lived connections: the
// consumed prefix is dropped once it outgrows a full record instead of the
// buffer reallocating per record.
func (r *RecordLayer) compact() {
	switch {
	case r.off == len(r.buf):
		r.buf = r.buf[:0]
		r.off = 0
	case r.off > maxWireRecord:
		n := copy(r.buf, r.buf[r.off:])
		r.buf = r.buf[:n]
		r.off = 0
	}
}

func cloneBytes(in []byte) []byte {
	out := make([]byte, len(in))
	copy(out, in)

	return out
}
