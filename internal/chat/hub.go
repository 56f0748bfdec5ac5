package chat

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"framechat/pkg/wire"
)

// MaxPayloadSize bounds the announced payload length of a single message.
// Headers claiming more than this disconnect the sender instead of making
// the reader accumulate arbitrary amounts of memory.
const MaxPayloadSize = 1 << 20

// Hub manages all connected clients and fans chat messages out.
// TCP and WebSocket connections share a single Hub instance.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll closes every registered connection. Serve loops observe the
// resulting read errors and unregister themselves.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		client.Conn.Close()
	}
}

// ReadMessage runs the two-phase framed read on conn: a fixed-size header,
// then, only when the announced length is nonzero, exactly that many
// payload bytes.
func ReadMessage(ctx context.Context, conn Conn) (wire.Tag, []byte, error) {
	raw, err := conn.ReadUntil(ctx, wire.MatchCount(wire.HeaderSize))
	if err != nil {
		return wire.Tag{}, nil, err
	}
	hdr, err := wire.ParseHeader(raw)
	if err != nil {
		return wire.Tag{}, nil, err
	}
	if hdr.Length == 0 {
		return hdr.Tag, nil, nil
	}
	if hdr.Length > MaxPayloadSize {
		return wire.Tag{}, nil, fmt.Errorf("payload length %d exceeds limit %d", hdr.Length, MaxPayloadSize)
	}
	payload, err := conn.ReadUntil(ctx, wire.MatchCount(int(hdr.Length)))
	if err != nil {
		return wire.Tag{}, nil, err
	}
	return hdr.Tag, payload, nil
}

// ServeClient runs the per-client message loop until a quit command or a
// read error, then closes the connection and removes the client from the
// registry. The next read is armed only after the current dispatch returns,
// so a single client's messages are handled strictly in arrival order.
func (h *Hub) ServeClient(ctx context.Context, client *Client) {
	defer func() {
		h.Unregister(client)
		client.Conn.Close()
	}()

	for {
		tag, payload, err := ReadMessage(ctx, client.Conn)
		if err != nil {
			if err != io.EOF {
				log.Printf("Read error from %s (%s): %v", client.Name, client.ID, err)
			}
			return
		}

		switch tag {
		case wire.TagName:
			client.Name = string(payload)
		case wire.TagChat:
			h.Broadcast(client, fmt.Sprintf("%s: %s\n", client.Name, payload))
		case wire.TagQuit:
			return
		default:
			log.Printf("Unknown command %q issued by %s", tag.String(), client.Name)
		}
	}
}

// Broadcast queues line for every registered client except the sender. One
// backing buffer serves every delivery. A peer whose outgoing queue is full
// misses the line rather than stalling the sender's dispatch.
func (h *Hub) Broadcast(sender *Client, line string) {
	data := []byte(line)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client == sender {
			continue
		}
		select {
		case client.Outgoing <- data:
		default:
			log.Printf("Client %s outgoing queue full, dropping broadcast", client.ID)
		}
	}
}
