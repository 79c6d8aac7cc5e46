package protocol

import (
	"errors"
	"testing"

	"github.com/loom-ui/loom/pkg/state"
)

func TestHelloRoundTrip(t *testing.T) {
	hello, err := DecodeHello(EncodeHello(&Hello{Version: ProtocolVersion, SessionID: "s1"}))
	if err != nil {
		t.Fatalf("DecodeHello: %v", err)
	}
	if hello.SessionID != "s1" {
		t.Errorf("SessionID = %q, want s1", hello.SessionID)
	}
}

func TestDecodeHelloVersionMismatch(t *testing.T) {
	payload := EncodeHello(&Hello{Version: ProtocolVersion + 1})
	if _, err := DecodeHello(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("DecodeHello = %v, want ErrVersionMismatch", err)
	}
}

func TestEventRoundTrip(t *testing.T) {
	original := &Event{
		Node: 42,
		Type: "input",
		Data: map[string]any{"value": "hello"},
	}
	decoded, err := DecodeEvent(EncodeEvent(original))
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if decoded.Node != 42 || decoded.Type != "input" {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Data["value"] != "hello" {
		t.Errorf("Data = %v", decoded.Data)
	}
}

func TestDecodeEventMissingType(t *testing.T) {
	if _, err := DecodeEvent([]byte(`{"node":1}`)); !errors.Is(err, ErrMissingEventType) {
		t.Fatalf("DecodeEvent = %v, want ErrMissingEventType", err)
	}
}

func TestDecodeEventRejectsDeepNesting(t *testing.T) {
	// Build data nested past the depth limit.
	data := map[string]any{}
	cur := data
	for i := 0; i < MaxEventDataDepth+2; i++ {
		next := map[string]any{}
		cur["n"] = next
		cur = next
	}
	payload := EncodeEvent(&Event{Node: 1, Type: "click", Data: data})
	if _, err := DecodeEvent(payload); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("DecodeEvent = %v, want ErrMaxDepthExceeded", err)
	}
}

func TestFromStateChange(t *testing.T) {
	tests := []struct {
		name  string
		in    state.Change
		check func(t *testing.T, c Change)
	}{
		{
			name: "attach has no namespace tag",
			in:   state.Change{Op: state.ChangeAttach, Node: 2, Parent: 1},
			check: func(t *testing.T, c Change) {
				if c.Op != "attach" || c.NS != "" || c.Parent != 1 {
					t.Errorf("change = %+v", c)
				}
			},
		},
		{
			name: "put keeps key and value",
			in: state.Change{
				Op: state.ChangePut, Node: 3,
				NS: state.NamespaceAttributes, Key: "id", Value: "main",
			},
			check: func(t *testing.T, c Change) {
				if c.Op != "put" || c.NS != "attributes" || c.Key != "id" || c.Value != "main" {
					t.Errorf("change = %+v", c)
				}
			},
		},
		{
			name: "splice carries node ids",
			in: state.Change{
				Op: state.ChangeSplice, Node: 1,
				NS: state.NamespaceChildren, Index: 0, AddedNodes: []uint64{4, 5},
			},
			check: func(t *testing.T, c Change) {
				if c.Op != "splice" || c.NS != "children" || len(c.Nodes) != 2 {
					t.Errorf("change = %+v", c)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, FromStateChange(tt.in))
		})
	}
}

func TestChangeBatchRoundTrip(t *testing.T) {
	batch := &ChangeBatch{
		Seq: 9,
		Changes: []Change{
			{Op: "attach", Node: 2, Parent: 1},
			{Op: "put", Node: 2, NS: "attributes", Key: "id", Value: "x"},
		},
	}
	decoded, err := DecodeChangeBatch(EncodeChangeBatch(batch))
	if err != nil {
		t.Fatalf("DecodeChangeBatch: %v", err)
	}
	if decoded.Seq != 9 || len(decoded.Changes) != 2 {
		t.Fatalf("decoded = %+v", decoded)
	}
	if decoded.Changes[1].Key != "id" {
		t.Errorf("second change = %+v", decoded.Changes[1])
	}
}

func TestEncodeChangeFramesSingle(t *testing.T) {
	frames, err := EncodeChangeFrames(1, []Change{{Op: "attach", Node: 2, Parent: 1}})
	if err != nil {
		t.Fatalf("EncodeChangeFrames: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if !frames[0].Flags.Has(FlagFinal) {
		t.Error("single frame must carry FlagFinal")
	}
}

func TestEncodeChangeFramesSplits(t *testing.T) {
	// Each change is ~1KB; a few hundred do not fit in one frame.
	big := make([]byte, 1024)
	for i := range big {
		big[i] = 'a'
	}
	var changes []Change
	for i := 0; i < 200; i++ {
		changes = append(changes, Change{
			Op: "put", Node: uint64(i), NS: "attributes", Key: "data-blob", Value: string(big),
		})
	}

	frames, err := EncodeChangeFrames(5, changes)
	if err != nil {
		t.Fatalf("EncodeChangeFrames: %v", err)
	}
	if len(frames) < 2 {
		t.Fatalf("got %d frames, want a split", len(frames))
	}

	total := 0
	for i, f := range frames {
		if len(f.Payload) > MaxPayloadSize {
			t.Fatalf("frame %d payload %d exceeds max", i, len(f.Payload))
		}
		batch, err := DecodeChangeBatch(f.Payload)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if batch.Seq != 5 {
			t.Errorf("frame %d seq = %d, want 5", i, batch.Seq)
		}
		total += len(batch.Changes)
		isLast := i == len(frames)-1
		if f.Flags.Has(FlagFinal) != isLast {
			t.Errorf("frame %d FlagFinal = %v", i, f.Flags.Has(FlagFinal))
		}
	}
	if total != len(changes) {
		t.Errorf("reassembled %d changes, want %d", total, len(changes))
	}
}

func TestEncodeChangeFramesOversizedChange(t *testing.T) {
	huge := make([]byte, MaxPayloadSize+1)
	for i := range huge {
		huge[i] = 'x'
	}
	_, err := EncodeChangeFrames(1, []Change{{Op: "put", Node: 1, NS: "text", Value: string(huge)}})
	if !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("EncodeChangeFrames = %v, want ErrFrameTooLarge", err)
	}
}

func TestEncodeChangeFramesEmpty(t *testing.T) {
	frames, err := EncodeChangeFrames(3, nil)
	if err != nil {
		t.Fatalf("EncodeChangeFrames: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1 empty batch", len(frames))
	}
	batch, err := DecodeChangeBatch(frames[0].Payload)
	if err != nil {
		t.Fatal(err)
	}
	if batch.Seq != 3 || len(batch.Changes) != 0 {
		t.Errorf("batch = %+v", batch)
	}
}

func TestErrorMessageRoundTrip(t *testing.T) {
	decoded, err := DecodeError(EncodeError(&ErrorMessage{Code: CodeBadEvent, Message: "no type"}))
	if err != nil {
		t.Fatalf("DecodeError: %v", err)
	}
	if decoded.Code != CodeBadEvent {
		t.Errorf("Code = %q", decoded.Code)
	}
}
