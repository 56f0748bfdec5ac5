package chat

import "github.com/google/uuid"

// DefaultName is the display name of a client before a rename arrives.
const DefaultName = "<unknown>"

// outgoingDepth bounds how many undelivered broadcasts a slow peer may
// accumulate before further ones are dropped for it.
const outgoingDepth = 10

// Client represents one connected peer.
type Client struct {
	// ID identifies the client in logs before a rename arrives.
	ID string

	Conn Conn

	// Name is the display name. Written only by the client's own serve
	// loop, read by the same loop when formatting broadcasts.
	Name string

	// Outgoing carries broadcast buffers to the client's write loop.
	Outgoing chan []byte
}

// NewClient builds a registry record with the default display name.
func NewClient(conn Conn) *Client {
	return &Client{
		ID:       uuid.NewString(),
		Conn:     conn,
		Name:     DefaultName,
		Outgoing: make(chan []byte, outgoingDepth),
	}
}
