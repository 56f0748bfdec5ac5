package chat_test

import (
	"context"
	"io"
	"sync"

	"framechat/internal/chat"
	"framechat/pkg/wire"
)

// mockConn is a scriptable chat.Conn. Tests feed inbound bytes through a
// pipe so reads see the same chunking behavior as a real stream, and
// capture everything written.
type mockConn struct {
	reader *wire.Reader
	feed   *io.PipeWriter

	writtenMu sync.Mutex
	written   [][]byte
	writeErr  error

	closeOnce sync.Once
	closed    chan struct{}

	remoteAddr string
}

func newMockConn(addr string) *mockConn {
	pr, pw := io.Pipe()
	return &mockConn{
		reader:     wire.NewReader(pr),
		feed:       pw,
		closed:     make(chan struct{}),
		remoteAddr: addr,
	}
}

func (m *mockConn) ReadUntil(ctx context.Context, match wire.MatchFunc) ([]byte, error) {
	return m.reader.ReadUntil(match)
}

func (m *mockConn) Write(ctx context.Context, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writtenMu.Lock()
	defer m.writtenMu.Unlock()
	copied := make([]byte, len(data))
	copy(copied, data)
	m.written = append(m.written, copied)
	return nil
}

func (m *mockConn) Close() error {
	m.closeOnce.Do(func() {
		close(m.closed)
		m.feed.Close()
	})
	return nil
}

func (m *mockConn) RemoteAddr() string {
	return m.remoteAddr
}

// Feed writes one framed command to the conn's inbound stream.
func (m *mockConn) Feed(tag wire.Tag, payload []byte) {
	m.feed.Write(wire.EncodeMessage(tag, payload))
}

// FeedRaw writes raw bytes to the conn's inbound stream.
func (m *mockConn) FeedRaw(data []byte) {
	m.feed.Write(data)
}

// EndInput closes the inbound stream so the next read reports io.EOF.
func (m *mockConn) EndInput() {
	m.feed.Close()
}

func (m *mockConn) IsClosed() bool {
	select {
	case <-m.closed:
		return true
	default:
		return false
	}
}

// Compile-time check that mockConn implements chat.Conn.
var _ chat.Conn = (*mockConn)(nil)
