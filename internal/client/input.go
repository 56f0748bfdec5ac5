package client

import (
	"strings"

	"framechat/pkg/wire"
)

// EscapeChar introduces an explicit command on an interactive input line.
const EscapeChar = '\\'

// ParseInput translates one line of interactive input into a wire command.
// A line starting with the escape character names its command explicitly:
// the token up to the first space becomes the tag (padded or truncated to
// four characters) and the remainder the payload. Any other line is sent
// whole as a chat message.
func ParseInput(line string) (wire.Tag, []byte) {
	if !strings.HasPrefix(line, string(EscapeChar)) {
		return wire.TagChat, []byte(line)
	}

	cmd, payload, _ := strings.Cut(line[1:], " ")
	if payload == "" {
		return wire.MakeTag(cmd), nil
	}
	return wire.MakeTag(cmd), []byte(payload)
}
