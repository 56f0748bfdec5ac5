package client_test

import (
	"testing"

	"framechat/internal/client"
	"framechat/pkg/wire"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantTag     wire.Tag
		wantPayload string
	}{
		{
			name:        "plain line is chat",
			line:        "hello everyone",
			wantTag:     wire.TagChat,
			wantPayload: "hello everyone",
		},
		{
			name:        "rename command",
			line:        `\name alice`,
			wantTag:     wire.TagName,
			wantPayload: "alice",
		},
		{
			name:        "quit without payload",
			line:        `\quit`,
			wantTag:     wire.TagQuit,
			wantPayload: "",
		},
		{
			name:        "long command is truncated",
			line:        `\names alice`,
			wantTag:     wire.MakeTag("name"),
			wantPayload: "alice",
		},
		{
			name:        "short command is padded",
			line:        `\hi there`,
			wantTag:     wire.MakeTag("hi"),
			wantPayload: "there",
		},
		{
			name:        "payload keeps inner spaces",
			line:        `\name alice in chains`,
			wantTag:     wire.TagName,
			wantPayload: "alice in chains",
		},
		{
			name:        "chat line starting with spaces",
			line:        "  indented",
			wantTag:     wire.TagChat,
			wantPayload: "  indented",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, payload := client.ParseInput(tt.line)
			if tag != tt.wantTag {
				t.Errorf("ParseInput(%q) tag = %q, want %q", tt.line, tag.String(), tt.wantTag.String())
			}
			if string(payload) != tt.wantPayload {
				t.Errorf("ParseInput(%q) payload = %q, want %q", tt.line, payload, tt.wantPayload)
			}
		})
	}
}
