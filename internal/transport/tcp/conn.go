// Package tcp adapts raw TCP connections to the chat.Conn interface.
package tcp

import (
	"context"
	"io"
	"log"
	"net"
	"sync"

	"framechat/pkg/wire"
)

// Conn wraps a net.Conn with the accumulation buffer that condition-based
// reads require.
type Conn struct {
	conn      net.Conn
	reader    *wire.Reader
	closeOnce sync.Once
}

// NewConn wraps conn.
func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: conn, reader: wire.NewReader(conn)}
}

// NewConnWithReader wraps conn but reads through src, which may hold bytes
// already pulled off the socket during protocol detection.
func NewConnWithReader(conn net.Conn, src io.Reader) *Conn {
	return &Conn{conn: conn, reader: wire.NewReader(src)}
}

// ReadUntil implements chat.Conn.
func (c *Conn) ReadUntil(ctx context.Context, match wire.MatchFunc) ([]byte, error) {
	return c.reader.ReadUntil(match)
}

// Write implements chat.Conn.
func (c *Conn) Write(ctx context.Context, data []byte) error {
	_, err := c.conn.Write(data)
	return err
}

// Close attempts a graceful shutdown of the write side before releasing the
// socket. Failures are logged, not propagated: the peer state is unknown at
// that point either way.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		if tc, ok := c.conn.(*net.TCPConn); ok {
			if err := tc.CloseWrite(); err != nil {
				log.Printf("Shutdown of %s failed: %v", c.RemoteAddr(), err)
			}
		}
		if err := c.conn.Close(); err != nil {
			log.Printf("Close of %s failed: %v", c.RemoteAddr(), err)
		}
	})
	return nil
}

// RemoteAddr implements chat.Conn.
func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
