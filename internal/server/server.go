// Package server runs the chat relay's accept loop. A single listening
// port carries both raw framed TCP clients and websocket clients; the
// first bytes of each connection decide which.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"

	"github.com/gobwas/ws"

	"framechat/internal/chat"
	"framechat/internal/transport/tcp"
	wstransport "framechat/internal/transport/ws"
)

// ErrBind marks a failure to bind the listening socket, as opposed to
// later per-connection trouble.
var ErrBind = errors.New("server: cannot bind listener")

// Server accepts connections and hands them to the Hub.
type Server struct {
	address  string
	listener net.Listener
	hub      *chat.Hub
	quit     chan struct{}
	wg       sync.WaitGroup

	// pending holds accepted connections that have not yet been
	// classified, so Stop can close them before they reach the hub.
	pendingMu sync.Mutex
	pending   map[net.Conn]bool
}

// New creates a Server for the given listen address, serving hub.
func New(address string, hub *chat.Hub) *Server {
	return &Server{
		address: address,
		hub:     hub,
		quit:    make(chan struct{}),
		pending: make(map[net.Conn]bool),
	}
}

// Start binds the listener and accepts until Stop. Accept errors are
// logged and accepting continues; only a bind failure is fatal.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBind, err)
	}
	s.listener = listener

	log.Printf("Chat relay listening on %s", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return nil
			default:
				log.Printf("Failed to accept connection: %v", err)
				continue
			}
		}

		// Connection setup runs off the accept loop so the listener is
		// never idle while a handshake is in progress.
		s.wg.Add(1)
		go s.setupConn(conn)
	}
}

// Stop closes the listener and every live connection, then waits for all
// per-client goroutines to finish.
func (s *Server) Stop() {
	close(s.quit)
	if s.listener != nil {
		s.listener.Close()
	}
	s.pendingMu.Lock()
	for conn := range s.pending {
		conn.Close()
	}
	s.pendingMu.Unlock()
	s.hub.CloseAll()
	s.wg.Wait()
}

// Addr returns the listening address.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// setupConn classifies the connection, wraps it in the right transport,
// and runs the client's serve loop to completion.
func (s *Server) setupConn(netConn net.Conn) {
	defer s.wg.Done()

	s.pendingMu.Lock()
	s.pending[netConn] = true
	s.pendingMu.Unlock()

	kind, reader, err := detectProtocol(netConn)

	s.pendingMu.Lock()
	delete(s.pending, netConn)
	s.pendingMu.Unlock()

	if err != nil {
		if err != io.EOF {
			log.Printf("Dropping %s: %v", netConn.RemoteAddr(), err)
		}
		netConn.Close()
		return
	}

	var conn chat.Conn
	switch kind {
	case kindHTTP:
		rw := struct {
			io.Reader
			io.Writer
		}{reader, netConn}
		if _, err := ws.Upgrade(rw); err != nil {
			log.Printf("Websocket upgrade from %s failed: %v", netConn.RemoteAddr(), err)
			netConn.Close()
			return
		}
		conn = wstransport.NewServerConn(netConn, rw, netConn.RemoteAddr().String())
	default:
		conn = tcp.NewConnWithReader(netConn, reader)
	}

	client := chat.NewClient(conn)
	s.hub.Register(client)
	select {
	case <-s.quit:
		// Stop may have swept the hub before this registration landed.
		conn.Close()
	default:
	}
	log.Printf("Client %s connected from %s", client.ID, conn.RemoteAddr())

	s.wg.Add(1)
	go s.writeLoop(client)

	s.hub.ServeClient(context.Background(), client)
	// ServeClient has unregistered the client, so no broadcast can still
	// be holding the channel.
	close(client.Outgoing)
	log.Printf("Client %s (%s) disconnected", client.ID, client.Name)
}

// writeLoop drains a client's outgoing queue onto its connection.
func (s *Server) writeLoop(client *chat.Client) {
	defer s.wg.Done()
	for data := range client.Outgoing {
		if err := client.Conn.Write(context.Background(), data); err != nil {
			log.Printf("Failed to write to client %s: %v", client.ID, err)
			// Unblock the read side so the client unregisters right away
			// instead of lingering until its next read fails on its own.
			client.Conn.Close()
			return
		}
	}
}
