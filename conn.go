// SPDX-FileCopyrightText: 2026 The streamsec authors
// SPDX-License-Identifier: MIT

// Package tls13 moves application data over a stream transport as TLS 1.3
// records. The heavy lifting lives in pkg/protocol/recordlayer; the Conn here
// is the connection-processing loop that feeds it transport bytes and drains
// decoded records. Handshaking and key establishment are out of scope: the
// caller supplies a ready CipherState (or none, for plaintext records).
package tls13

import (
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pion/logging"

	"github.com/streamsec/tls13/pkg/protocol"
	"github.com/streamsec/tls13/pkg/protocol/alert"
	"github.com/streamsec/tls13/pkg/protocol/recordlayer"
)

// closeNotifyTimeout bounds the best-effort close_notify write so Close never
// blocks on an unresponsive peer.
const closeNotifyTimeout = 250 * time.Millisecond

// Conn represents a record transport connection. It implements net.Conn.
type Conn struct {
	nextConn net.Conn // typically a TCP conn we read/write from
	log      logging.LeveledLogger

	cipher      recordlayer.CipherState
	onHandshake func([]byte) error

	// layerMu serializes access to the record layer, which is non-reentrant.
	// It is never held across transport I/O.
	layerMu sync.Mutex
	layer   *recordlayer.RecordLayer

	readMu   sync.Mutex // one reader drives the ingest/decode loop at a time
	writeMu  sync.Mutex
	leftover []byte // undelivered tail of the last application data fragment
	recvBuf  []byte

	closed       atomic.Bool
	remoteClosed atomic.Bool
	closeOnce    sync.Once
	closeErr     error
}

func createConn(nextConn net.Conn, side protocol.Side, config *Config) (*Conn, error) {
	if config == nil {
		return nil, errNoConfigProvided
	}
	if nextConn == nil {
		return nil, errNilNextConn
	}

	loggerFactory := config.LoggerFactory
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}

	return &Conn{
		nextConn:    nextConn,
		log:         loggerFactory.NewLogger("tls13"),
		cipher:      config.CipherState,
		onHandshake: config.OnHandshakeFragment,
		layer:       recordlayer.New(side),
		recvBuf:     make([]byte, recordlayer.HeaderSize+protocol.MaxCiphertextFragment),
	}, nil
}

// Read returns application data received from the peer, one record fragment
// at a time. Non application data records are consumed internally: handshake
// fragments go to the configured callback, close_notify maps to io.EOF, any
// other alert to an AlertError, change_cipher_spec and heartbeat records are
// skipped.
func (c *Conn) Read(p []byte) (int, error) { //nolint:cyclop
	c.readMu.Lock()
	defer c.readMu.Unlock()

	if len(c.leftover) > 0 {
		n := copy(p, c.leftover)
		c.leftover = c.leftover[n:]

		return n, nil
	}

	for {
		switch {
		case c.closed.Load():
			return 0, ErrConnClosed
		case c.remoteClosed.Load():
			return 0, io.EOF
		}

		c.layerMu.Lock()
		res, err := c.layer.NextRecord(c.cipher)
		c.layerMu.Unlock()
		if err != nil {
			c.notifyPeerOfError(err)

			return 0, err
		}

		if res.Record == nil {
			if err := c.ingestFromTransport(res.BytesNeeded); err != nil {
				return 0, err
			}

			continue
		}

		done, n, err := c.handleRecord(res.Record, p)
		if done || err != nil {
			return n, err
		}
	}
}

// ingestFromTransport blocks on the wrapped transport until at least one byte
// arrives, then hands everything read to the record layer.
func (c *Conn) ingestFromTransport(bytesNeeded int) error {
	c.log.Tracef("record incomplete, need %d more bytes", bytesNeeded)

	n, err := c.nextConn.Read(c.recvBuf)
	if n > 0 {
		c.layerMu.Lock()
		c.layer.Ingest(c.recvBuf[:n])
		c.layerMu.Unlock()
	}
	if err != nil && n == 0 {
		return err
	}

	return nil
}

// handleRecord dispatches one decoded record. done reports that Read should
// return with the given result; otherwise the caller keeps decoding.
func (c *Conn) handleRecord(rec *recordlayer.Record, p []byte) (done bool, n int, err error) {
	switch rec.ContentType {
	case protocol.ContentTypeApplicationData:
		if len(rec.Fragment) == 0 && len(p) > 0 {
			// Padding-only record, nothing to deliver.
			return false, 0, nil
		}
		n = copy(p, rec.Fragment)
		c.leftover = rec.Fragment[n:]

		return true, n, nil
	case protocol.ContentTypeAlert:
		return c.handleAlert(rec.Fragment)
	case protocol.ContentTypeHandshake:
		if c.onHandshake == nil {
			c.log.Debugf("dropping handshake record (%d bytes), no handler configured", len(rec.Fragment))

			return false, 0, nil
		}
		if err := c.onHandshake(rec.Fragment); err != nil {
			return true, 0, err
		}

		return false, 0, nil
	case protocol.ContentTypeChangeCipherSpec:
		c.log.Trace("ignoring change_cipher_spec record")

		return false, 0, nil
	case protocol.ContentTypeHeartbeat:
		c.log.Debug("ignoring heartbeat record")

		return false, 0, nil
	default:
		// Unreachable, the record layer rejects unknown content types.
		return true, 0, recordlayer.ErrInvalidContentType
	}
}

func (c *Conn) handleAlert(fragment []byte) (bool, int, error) {
	var a alert.Alert
	if err := a.Unmarshal(fragment); err != nil {
		c.notifyPeerOfError(err)

		return true, 0, err
	}

	if a.Description == alert.CloseNotify {
		c.log.Trace("received close_notify")
		c.remoteClosed.Store(true)

		return true, 0, io.EOF
	}

	c.log.Warnf("received alert: %s", a.String())

	return true, 0, &AlertError{Alert: a}
}

// Write sends application data to the peer, fragmenting it into protected
// records as needed.
func (c *Conn) Write(p []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed.Load() {
		return 0, ErrConnClosed
	}

	c.layerMu.Lock()
	wire, err := c.layer.PrepareRecords(protocol.ContentTypeApplicationData, p, c.cipher)
	c.layerMu.Unlock()
	if err != nil {
		return 0, err
	}

	if _, err := c.nextConn.Write(wire); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Close sends a best-effort close_notify and closes the wrapped transport.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)

		_ = c.nextConn.SetWriteDeadline(time.Now().Add(closeNotifyTimeout))
		if err := c.sendAlert(alert.Warning, alert.CloseNotify); err != nil {
			c.log.Tracef("close_notify not delivered: %v", err)
		}

		c.closeErr = c.nextConn.Close()
	})

	return c.closeErr
}

// sendAlert frames and transmits one alert record.
func (c *Conn) sendAlert(level alert.Level, desc alert.Description) error {
	a := alert.Alert{Level: level, Description: desc}
	payload, err := a.Marshal()
	if err != nil {
		return err
	}

	c.layerMu.Lock()
	wire, err := c.layer.PrepareRecords(protocol.ContentTypeAlert, payload, c.cipher)
	c.layerMu.Unlock()
	if err != nil {
		return err
	}

	_, err = c.nextConn.Write(wire)

	return err
}

// notifyPeerOfError maps a fatal record layer error onto its alert class and
// sends it best effort before the connection goes down.
func (c *Conn) notifyPeerOfError(err error) {
	_ = c.nextConn.SetWriteDeadline(time.Now().Add(closeNotifyTimeout))
	if sendErr := c.sendAlert(alert.Fatal, alertDescription(err)); sendErr != nil {
		c.log.Tracef("fatal alert not delivered: %v", sendErr)
	}
}

func alertDescription(err error) alert.Description {
	switch {
	case errors.Is(err, recordlayer.ErrDecryptFailed):
		return alert.BadRecordMac
	case errors.Is(err, recordlayer.ErrRecordOverflow),
		errors.Is(err, recordlayer.ErrBufferOverflow):
		return alert.RecordOverflow
	case errors.Is(err, recordlayer.ErrUnsupportedProtocolVersion):
		return alert.ProtocolVersion
	case errors.Is(err, recordlayer.ErrInvalidContentType),
		errors.Is(err, recordlayer.ErrBufferTooSmall):
		return alert.DecodeError
	case errors.Is(err, recordlayer.ErrUnencryptedRecord),
		errors.Is(err, recordlayer.ErrInvalidChangeCipherSpec):
		return alert.UnexpectedMessage
	default:
		return alert.InternalError
	}
}

// LocalAddr implements net.Conn.LocalAddr.
func (c *Conn) LocalAddr() net.Addr {
	return c.nextConn.LocalAddr()
}

// RemoteAddr implements net.Conn.RemoteAddr.
func (c *Conn) RemoteAddr() net.Addr {
	return c.nextConn.RemoteAddr()
}

// SetDeadline implements net.Conn.SetDeadline.
func (c *Conn) SetDeadline(t time.Time) error {
	return c.nextConn.SetDeadline(t)
}

// SetReadDeadline implements net.Conn.SetReadDeadline.
func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.nextConn.SetReadDeadline(t)
}

// SetWriteDeadline implements net.Conn.SetWriteDeadline.
func (c *Conn) SetWriteDeadline(t time.Time) error {
	return c.nextConn.SetWriteDeadline(t)
}
