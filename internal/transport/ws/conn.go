// Package ws adapts websocket connections to the chat.Conn interface using
// gobwas/ws. Binary websocket messages carry the same bytes as the raw TCP
// transport, so framing and condition-based reads behave identically.
package ws

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"framechat/pkg/wire"
)

type side int

const (
	serverSide side = iota
	clientSide
)

// Conn reads and writes chat traffic over websocket binary messages.
// Message payloads are buffered internally so a condition match may span
// websocket message boundaries.
type Conn struct {
	raw io.Closer
	// rw carries the websocket frames. It differs from the raw connection
	// when handshake bytes were read through a buffered reader.
	rw         io.ReadWriter
	side       side
	reader     *wire.Reader
	pending    []byte
	remoteAddr string
	// writeMu keeps outgoing frames whole: a concurrent close frame must
	// not interleave with an in-flight data frame.
	writeMu   sync.Mutex
	closeOnce sync.Once
}

func newConn(raw io.Closer, rw io.ReadWriter, s side, addr string) *Conn {
	c := &Conn{raw: raw, rw: rw, side: s, remoteAddr: addr}
	c.reader = wire.NewReader((*messageStream)(c))
	return c
}

// NewServerConn wraps an upgraded server-side connection. rw must be the
// stream the handshake was performed on.
func NewServerConn(raw io.Closer, rw io.ReadWriter, remoteAddr string) *Conn {
	return newConn(raw, rw, serverSide, remoteAddr)
}

// NewClientConn wraps a dialed client-side connection.
func NewClientConn(raw io.Closer, rw io.ReadWriter, remoteAddr string) *Conn {
	return newConn(raw, rw, clientSide, remoteAddr)
}

// messageStream surfaces whole websocket messages as a plain byte stream
// for the accumulation reader.
type messageStream Conn

func (m *messageStream) Read(p []byte) (int, error) {
	if len(m.pending) == 0 {
		var (
			data []byte
			err  error
		)
		if m.side == serverSide {
			data, err = wsutil.ReadClientBinary(m.rw)
		} else {
			data, err = wsutil.ReadServerBinary(m.rw)
		}
		if err != nil {
			return 0, err
		}
		m.pending = data
	}
	n := copy(p, m.pending)
	m.pending = m.pending[n:]
	return n, nil
}

// ReadUntil implements chat.Conn.
func (c *Conn) ReadUntil(ctx context.Context, match wire.MatchFunc) ([]byte, error) {
	return c.reader.ReadUntil(match)
}

// Write implements chat.Conn. The buffer goes out as one binary message.
func (c *Conn) Write(ctx context.Context, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.side == serverSide {
		return wsutil.WriteServerBinary(c.rw, data)
	}
	return wsutil.WriteClientBinary(c.rw, data)
}

// Close sends a close frame and releases the underlying connection.
// Failures are logged, not propagated.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		var err error
		if c.side == serverSide {
			err = wsutil.WriteServerMessage(c.rw, ws.OpClose, nil)
		} else {
			err = wsutil.WriteClientMessage(c.rw, ws.OpClose, nil)
		}
		c.writeMu.Unlock()
		if err != nil {
			log.Printf("Close frame to %s failed: %v", c.remoteAddr, err)
		}
		if err := c.raw.Close(); err != nil {
			log.Printf("Close of %s failed: %v", c.remoteAddr, err)
		}
	})
	return nil
}

// RemoteAddr implements chat.Conn.
func (c *Conn) RemoteAddr() string {
	return c.remoteAddr
}
