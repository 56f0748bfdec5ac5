// Package client implements the interactive chat client: a receive loop
// for newline-terminated broadcasts and a serialized send queue for framed
// commands, both over one connection to the relay.
package client

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"sync"

	"github.com/gobwas/ws"

	"framechat/internal/chat"
	"framechat/internal/transport/tcp"
	wstransport "framechat/internal/transport/ws"
	"framechat/pkg/wire"
)

// Transports the client can reach the relay over.
const (
	TransportTCP = "tcp"
	TransportWS  = "ws"
)

const sendQueueDepth = 16

// Client is an interactive chat relay client.
type Client struct {
	address   string
	transport string

	conn  chat.Conn
	lines chan string
	sendq chan []byte

	done     chan struct{}
	sendDone chan struct{}
	wg       sync.WaitGroup

	// sendMu orders enqueues against shutdown: once closing is set no
	// Send may touch the queue again.
	sendMu  sync.Mutex
	closing bool

	errMu   sync.Mutex
	readErr error

	closeOnce sync.Once
}

// New creates a client for the relay at address (host:port). transport is
// TransportTCP or TransportWS.
func New(address, transport string) *Client {
	return &Client{
		address:   address,
		transport: transport,
		lines:     make(chan string, 10),
		sendq:     make(chan []byte, sendQueueDepth),
		done:      make(chan struct{}),
		sendDone:  make(chan struct{}),
	}
}

// Connect resolves the relay address, dials it, and starts the receive
// loop and the send queue. Resolution failures are reported as ErrResolve,
// connection failures as ErrConnect.
func (c *Client) Connect() error {
	tcpAddr, err := net.ResolveTCPAddr("tcp", c.address)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResolve, err)
	}

	switch c.transport {
	case TransportWS:
		wsConn, br, _, err := ws.Dial(context.Background(), "ws://"+tcpAddr.String())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConnect, err)
		}
		var rw io.ReadWriter = wsConn
		if br != nil {
			// Bytes past the handshake are already buffered.
			rw = struct {
				io.Reader
				io.Writer
			}{br, wsConn}
		}
		c.conn = wstransport.NewClientConn(wsConn, rw, tcpAddr.String())
	default:
		netConn, err := net.DialTCP("tcp", nil, tcpAddr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConnect, err)
		}
		c.conn = tcp.NewConn(netConn)
	}

	c.wg.Add(2)
	go c.receiveLoop()
	go c.sendLoop()
	return nil
}

// Send frames payload under tag and queues it for the writer goroutine.
// Fire-and-forget: when the client is shutting down or the queue is
// backed up, the frame is dropped. Safe to call concurrently with
// Disconnect.
func (c *Client) Send(tag wire.Tag, payload []byte) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closing {
		return
	}
	select {
	case c.sendq <- wire.EncodeMessage(tag, payload):
	default:
		log.Printf("Send queue full, dropping %s command", tag.String())
	}
}

// Lines returns the channel of broadcast lines received from the relay.
// It is closed when the connection goes away.
func (c *Client) Lines() <-chan string {
	return c.lines
}

// Err reports the read error that ended the receive loop, if the shutdown
// was not initiated locally.
func (c *Client) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.readErr
}

// Disconnect flushes any queued frames, stops both loops, and closes the
// connection. Must only be called after a successful Connect.
func (c *Client) Disconnect() {
	c.closeOnce.Do(func() {
		c.sendMu.Lock()
		c.closing = true
		close(c.sendq)
		c.sendMu.Unlock()
		<-c.sendDone
		close(c.done)
		c.conn.Close()
		c.wg.Wait()
	})
}

// receiveLoop turns newline-terminated broadcast text into Lines entries.
func (c *Client) receiveLoop() {
	defer c.wg.Done()
	defer close(c.lines)

	for {
		line, err := c.conn.ReadUntil(context.Background(), wire.MatchDelim('\n'))
		if err != nil {
			select {
			case <-c.done:
				// Local shutdown, not a failure.
			default:
				c.errMu.Lock()
				c.readErr = err
				c.errMu.Unlock()
			}
			return
		}

		select {
		case c.lines <- strings.TrimSuffix(string(line), "\n"):
		case <-c.done:
			return
		}
	}
}

// sendLoop is the only goroutine writing to the connection, so commands
// queued from the input-reading side never interleave mid-frame with
// anything else.
func (c *Client) sendLoop() {
	defer c.wg.Done()
	defer close(c.sendDone)

	for data := range c.sendq {
		if err := c.conn.Write(context.Background(), data); err != nil {
			log.Printf("Failed to send: %v", err)
			return
		}
	}
}
