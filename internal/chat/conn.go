// Package chat provides the relay's core domain logic shared by all
// transports: the connection abstraction, the client registry, and the
// per-client message loop.
package chat

import (
	"context"

	"framechat/pkg/wire"
)

// DefaultPort is the fixed TCP port the relay listens on.
const DefaultPort = 8888

// Conn abstracts a bidirectional connection for both TCP and WebSocket.
// This interface isolates transport details from chat logic.
type Conn interface {
	// ReadUntil blocks until the accumulated inbound bytes satisfy match
	// and returns exactly the matched prefix. Returns io.EOF when the peer
	// closes. At most one ReadUntil may be outstanding per connection.
	ReadUntil(ctx context.Context, match wire.MatchFunc) ([]byte, error)

	// Write sends the whole buffer. The buffer must stay unmodified until
	// Write returns.
	Write(ctx context.Context, data []byte) error

	// Close shuts the connection down. Safe to call more than once.
	Close() error

	// RemoteAddr returns the remote address for logging.
	RemoteAddr() string
}
