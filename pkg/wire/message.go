// Package wire implements the framed chat protocol: a 4-byte ASCII command
// tag, a big-endian uint32 payload length, then exactly that many payload
// bytes. Server-to-client broadcast traffic uses plain newline-terminated
// text instead of this framing.
package wire

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	// TagSize is the width of the command tag in bytes.
	TagSize = 4
	// HeaderSize is the width of the full message header (tag + length).
	HeaderSize = TagSize + 4
)

// Tag identifies a chat command on the wire.
type Tag [TagSize]byte

// Well-known command tags.
var (
	TagName = MakeTag("name")
	TagChat = MakeTag("chat")
	TagQuit = MakeTag("quit")
)

// MakeTag builds a Tag from s, truncating or space-padding it to TagSize
// bytes.
func MakeTag(s string) Tag {
	var t Tag
	n := copy(t[:], s)
	for i := n; i < TagSize; i++ {
		t[i] = ' '
	}
	return t
}

// String returns the tag text without padding.
func (t Tag) String() string {
	return strings.TrimRight(string(t[:]), " ")
}

// Header is the decoded fixed-size message header.
type Header struct {
	Tag    Tag
	Length uint32
}

// ParseHeader decodes the first HeaderSize bytes of buf.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("wire: short header: %d bytes", len(buf))
	}
	var h Header
	copy(h.Tag[:], buf[:TagSize])
	h.Length = binary.BigEndian.Uint32(buf[TagSize:HeaderSize])
	return h, nil
}

// EncodeMessage frames payload under tag into a single buffer: tag, then
// payload length in network byte order, then the raw payload.
func EncodeMessage(tag Tag, payload []byte) []byte {
	buf := make([]byte, HeaderSize+len(payload))
	copy(buf, tag[:])
	binary.BigEndian.PutUint32(buf[TagSize:], uint32(len(payload)))
	copy(buf[HeaderSize:], payload)
	return buf
}
