package server

import (
	"bufio"
	"bytes"
	"net"
)

type protocolKind int

const (
	kindFramed protocolKind = iota
	kindHTTP
)

// httpMethods are the request prefixes a websocket-capable browser or
// client can open with. Chat command tags never collide with them.
var httpMethods = [][]byte{
	[]byte("GET "),
	[]byte("POST"),
	[]byte("PUT "),
	[]byte("HEAD"),
}

// detectProtocol peeks at the first bytes of a fresh connection to decide
// between raw framed traffic and an HTTP websocket upgrade. The returned
// reader holds the peeked bytes and must be used for all further reads.
func detectProtocol(conn net.Conn) (protocolKind, *bufio.Reader, error) {
	reader := bufio.NewReader(conn)

	peek, err := reader.Peek(4)
	if err != nil {
		return kindFramed, reader, err
	}

	for _, method := range httpMethods {
		if bytes.HasPrefix(peek, method) {
			return kindHTTP, reader, nil
		}
	}
	return kindFramed, reader, nil
}
