package wire_test

import (
	"testing"

	"framechat/pkg/wire"
)

func TestMakeTag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "exact four characters", in: "chat", want: "chat"},
		{name: "short tag is space padded", in: "hi", want: "hi  "},
		{name: "long tag is truncated", in: "broadcast", want: "broa"},
		{name: "empty tag is all padding", in: "", want: "    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := wire.MakeTag(tt.in)
			if got := string(tag[:]); got != tt.want {
				t.Errorf("MakeTag(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTag_String(t *testing.T) {
	if got := wire.MakeTag("hi").String(); got != "hi" {
		t.Errorf("String() = %q, want %q", got, "hi")
	}
}

func TestEncodeMessage_ParseHeader(t *testing.T) {
	tests := []struct {
		name    string
		tag     wire.Tag
		payload []byte
	}{
		{name: "chat with payload", tag: wire.TagChat, payload: []byte("hello")},
		{name: "name with payload", tag: wire.TagName, payload: []byte("alice")},
		{name: "quit without payload", tag: wire.TagQuit, payload: nil},
		{name: "empty payload", tag: wire.TagChat, payload: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := wire.EncodeMessage(tt.tag, tt.payload)
			if len(data) != wire.HeaderSize+len(tt.payload) {
				t.Fatalf("EncodeMessage() length = %d, want %d", len(data), wire.HeaderSize+len(tt.payload))
			}

			hdr, err := wire.ParseHeader(data)
			if err != nil {
				t.Fatalf("ParseHeader() error = %v", err)
			}
			if hdr.Tag != tt.tag {
				t.Errorf("ParseHeader() tag = %q, want %q", hdr.Tag.String(), tt.tag.String())
			}
			if int(hdr.Length) != len(tt.payload) {
				t.Errorf("ParseHeader() length = %d, want %d", hdr.Length, len(tt.payload))
			}
			if got := string(data[wire.HeaderSize:]); got != string(tt.payload) {
				t.Errorf("payload bytes = %q, want %q", got, tt.payload)
			}
		})
	}
}

func TestParseHeader_Short(t *testing.T) {
	if _, err := wire.ParseHeader([]byte("chat")); err == nil {
		t.Error("ParseHeader() with short buffer: expected error, got nil")
	}
}

func TestEncodeMessage_LengthIsNetworkByteOrder(t *testing.T) {
	data := wire.EncodeMessage(wire.TagChat, make([]byte, 0x0102))
	want := []byte{0x00, 0x00, 0x01, 0x02}
	for i, b := range want {
		if data[wire.TagSize+i] != b {
			t.Fatalf("length bytes = %v, want %v", data[wire.TagSize:wire.HeaderSize], want)
		}
	}
}
