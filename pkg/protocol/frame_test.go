package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	original := NewFrameWithFlags(FrameEvent, FlagFinal, []byte(`{"node":1,"type":"click"}`))

	decoded, err := DecodeFrame(original.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if decoded.Type != FrameEvent {
		t.Errorf("Type = %v, want Event", decoded.Type)
	}
	if !decoded.Flags.Has(FlagFinal) {
		t.Error("FlagFinal lost in round trip")
	}
	if !bytes.Equal(decoded.Payload, original.Payload) {
		t.Errorf("Payload = %q, want %q", decoded.Payload, original.Payload)
	}
}

func TestFrameEmptyPayload(t *testing.T) {
	decoded, err := DecodeFrame(NewFrame(FramePing, nil).Encode())
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if len(decoded.Payload) != 0 {
		t.Errorf("Payload length = %d, want 0", len(decoded.Payload))
	}
}

func TestDecodeFrameShortInput(t *testing.T) {
	for _, data := range [][]byte{nil, {0x01}, {0x01, 0x00, 0x00}} {
		if _, err := DecodeFrame(data); !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("DecodeFrame(%v) = %v, want ErrUnexpectedEOF", data, err)
		}
	}
}

func TestDecodeFrameTruncatedPayload(t *testing.T) {
	frame := NewFrame(FrameChanges, []byte("abcdef")).Encode()
	if _, err := DecodeFrame(frame[:len(frame)-2]); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("DecodeFrame = %v, want ErrUnexpectedEOF", err)
	}
}

func TestDecodeFrameInvalidType(t *testing.T) {
	data := []byte{0xFF, 0x00, 0x00, 0x00}
	if _, err := DecodeFrame(data); !errors.Is(err, ErrInvalidFrameType) {
		t.Fatalf("DecodeFrame = %v, want ErrInvalidFrameType", err)
	}
}

func TestReadWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	original := NewFrame(FrameChanges, []byte(`{"seq":1,"changes":[]}`))
	if err := WriteFrame(&buf, original); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	// A second frame behind the first must not confuse the reader.
	if err := WriteFrame(&buf, NewFrame(FramePing, EncodePingPong(&PingPong{Timestamp: 7}))); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	first, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if first.Type != FrameChanges || !bytes.Equal(first.Payload, original.Payload) {
		t.Errorf("first frame = %v %q", first.Type, first.Payload)
	}
	second, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if second.Type != FramePing {
		t.Errorf("second frame type = %v, want Ping", second.Type)
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	f := NewFrame(FrameChanges, make([]byte, MaxPayloadSize+1))
	if err := WriteFrame(io.Discard, f); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("WriteFrame = %v, want ErrFrameTooLarge", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	tests := []struct {
		ft   FrameType
		want string
	}{
		{FrameHello, "Hello"},
		{FrameEvent, "Event"},
		{FrameChanges, "Changes"},
		{FramePing, "Ping"},
		{FramePong, "Pong"},
		{FrameClose, "Close"},
		{FrameError, "Error"},
		{FrameType(0x7F), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.ft.String(); got != tt.want {
			t.Errorf("FrameType(%d).String() = %q, want %q", tt.ft, got, tt.want)
		}
	}
}
