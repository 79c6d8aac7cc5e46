package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/loom-ui/loom/pkg/state"
)

// ProtocolVersion is the wire protocol version negotiated in the hello
// exchange. Bump on incompatible payload changes.
const ProtocolVersion = 1

// ErrVersionMismatch is returned when a client hello carries an
// unsupported protocol version.
var ErrVersionMismatch = errors.New("protocol: version mismatch")

// Hello is the first client frame on a fresh connection. A non-empty
// SessionID asks to resume that session from its stored snapshot.
type Hello struct {
	Version   int    `json:"version"`
	SessionID string `json:"sessionId,omitempty"`
}

// HelloAck answers a hello. Resumed is true when the requested session
// was restored; otherwise SessionID names the fresh session.
type HelloAck struct {
	Version   int    `json:"version"`
	SessionID string `json:"sessionId"`
	Resumed   bool   `json:"resumed,omitempty"`
}

// Event is a DOM event forwarded by the client.
type Event struct {
	// Node is the state-node id the event targets.
	Node uint64 `json:"node"`

	// Type is the DOM event type, such as "click".
	Type string `json:"type"`

	// Data is the decoded event payload. May be nil.
	Data map[string]any `json:"data,omitempty"`
}

// Change is the wire form of one state tree change.
type Change struct {
	Op     string   `json:"op"`
	Node   uint64   `json:"node"`
	NS     string   `json:"ns,omitempty"`
	Parent uint64   `json:"parent,omitempty"`
	Key    string   `json:"key,omitempty"`
	Value  any      `json:"value,omitempty"`
	Index  int      `json:"index,omitempty"`
	Remove int      `json:"remove,omitempty"`
	Add    []any    `json:"add,omitempty"`
	Nodes  []uint64 `json:"nodes,omitempty"`
}

// FromStateChange converts a state tree change to its wire form.
func FromStateChange(c state.Change) Change {
	out := Change{
		Op:     c.Op.String(),
		Node:   c.Node,
		Parent: c.Parent,
		Key:    c.Key,
		Value:  c.Value,
		Index:  c.Index,
		Remove: c.Removed,
		Add:    c.Added,
		Nodes:  c.AddedNodes,
	}
	if c.Op != state.ChangeAttach && c.Op != state.ChangeDetach {
		out.NS = c.NS.String()
	}
	return out
}

// ChangeBatch is one server flush. Seq increases by one per batch so the
// client can detect gaps after a reconnect.
type ChangeBatch struct {
	Seq     uint64   `json:"seq"`
	Changes []Change `json:"changes"`
}

// PingPong is the heartbeat payload, echoed back verbatim.
type PingPong struct {
	Timestamp int64 `json:"ts"`
}

// Close announces an orderly shutdown of the connection.
type Close struct {
	Reason string `json:"reason,omitempty"`
}

// Error codes sent in error messages.
const (
	CodeBadFrame     = "bad_frame"
	CodeBadEvent     = "bad_event"
	CodeNodeNotFound = "node_not_found"
	CodeRateLimited  = "rate_limited"
	CodeInternal     = "internal"
)

// ErrorMessage reports a recoverable protocol-level failure to the
// client. The connection stays open unless the sender closes it.
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// EncodeHello encodes a hello payload.
func EncodeHello(h *Hello) []byte { return mustJSON(h) }

// DecodeHello decodes and version-checks a hello payload.
func DecodeHello(data []byte) (*Hello, error) {
	var h Hello
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("protocol: decode hello: %w", err)
	}
	if h.Version != ProtocolVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, h.Version, ProtocolVersion)
	}
	return &h, nil
}

// EncodeHelloAck encodes a hello acknowledgment.
func EncodeHelloAck(a *HelloAck) []byte { return mustJSON(a) }

// DecodeHelloAck decodes a hello acknowledgment.
func DecodeHelloAck(data []byte) (*HelloAck, error) {
	var a HelloAck
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("protocol: decode hello ack: %w", err)
	}
	return &a, nil
}

// EncodeEvent encodes an event payload.
func EncodeEvent(e *Event) []byte { return mustJSON(e) }

// DecodeEvent decodes and validates an event payload.
func DecodeEvent(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("protocol: decode event: %w", err)
	}
	if e.Type == "" {
		return nil, ErrMissingEventType
	}
	if err := checkDataDepth(e.Data); err != nil {
		return nil, err
	}
	return &e, nil
}

// EncodeChangeBatch encodes one change batch payload.
func EncodeChangeBatch(b *ChangeBatch) []byte { return mustJSON(b) }

// DecodeChangeBatch decodes a change batch payload.
func DecodeChangeBatch(data []byte) (*ChangeBatch, error) {
	var b ChangeBatch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("protocol: decode change batch: %w", err)
	}
	return &b, nil
}

// EncodePingPong encodes a heartbeat payload.
func EncodePingPong(p *PingPong) []byte { return mustJSON(p) }

// DecodePingPong decodes a heartbeat payload.
func DecodePingPong(data []byte) (*PingPong, error) {
	var p PingPong
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("protocol: decode ping: %w", err)
	}
	return &p, nil
}

// EncodeClose encodes a close payload.
func EncodeClose(c *Close) []byte { return mustJSON(c) }

// DecodeClose decodes a close payload.
func DecodeClose(data []byte) (*Close, error) {
	var c Close
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("protocol: decode close: %w", err)
	}
	return &c, nil
}

// EncodeError encodes an error payload.
func EncodeError(e *ErrorMessage) []byte { return mustJSON(e) }

// DecodeError decodes an error payload.
func DecodeError(data []byte) (*ErrorMessage, error) {
	var e ErrorMessage
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("protocol: decode error message: %w", err)
	}
	return &e, nil
}

// mustJSON marshals a message struct. The payload types marshal without
// error by construction; a failure is a programming error.
func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("protocol: marshal %T: %v", v, err))
	}
	return data
}
