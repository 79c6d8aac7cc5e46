package push

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/loom-ui/loom/pkg/dom"
	"github.com/loom-ui/loom/pkg/protocol"
)

// testClient wraps a WebSocket connection with frame helpers.
type testClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dialServer(t *testing.T, srv *Server) *testClient {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return &testClient{t: t, conn: conn}
}

func (c *testClient) send(frame *protocol.Frame) {
	c.t.Helper()
	if err := c.conn.WriteMessage(websocket.BinaryMessage, frame.Encode()); err != nil {
		c.t.Fatalf("write frame: %v", err)
	}
}

func (c *testClient) read() *protocol.Frame {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		c.t.Fatalf("read frame: %v", err)
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		c.t.Fatalf("decode frame: %v", err)
	}
	return frame
}

// hello runs the handshake and returns the ack.
func (c *testClient) hello(sessionID string) *protocol.HelloAck {
	c.t.Helper()
	payload := protocol.EncodeHello(&protocol.Hello{Version: protocol.ProtocolVersion, SessionID: sessionID})
	c.send(protocol.NewFrame(protocol.FrameHello, payload))

	frame := c.read()
	if frame.Type != protocol.FrameHello {
		c.t.Fatalf("first frame type = %v, want Hello", frame.Type)
	}
	ack, err := protocol.DecodeHelloAck(frame.Payload)
	if err != nil {
		c.t.Fatalf("decode ack: %v", err)
	}
	return ack
}

// readBatch reads change frames up to FlagFinal and concatenates the
// changes.
func (c *testClient) readBatch() []protocol.Change {
	c.t.Helper()
	var changes []protocol.Change
	for {
		frame := c.read()
		if frame.Type != protocol.FrameChanges {
			c.t.Fatalf("frame type = %v, want Changes", frame.Type)
		}
		batch, err := protocol.DecodeChangeBatch(frame.Payload)
		if err != nil {
			c.t.Fatalf("decode batch: %v", err)
		}
		changes = append(changes, batch.Changes...)
		if frame.Flags.Has(protocol.FlagFinal) {
			return changes
		}
	}
}

// counterInit builds one button with a click listener that bumps a
// data-count attribute.
func counterInit(s *Session) error {
	doc := s.Document()
	button, err := dom.NewElement("button")
	if err != nil {
		return err
	}
	if err := button.SetAttribute("data-count", "0"); err != nil {
		return err
	}
	_, err = button.AddEventListener("click", func(ev dom.Event) {
		count, _ := ev.Element.Attribute("data-count")
		next := "1"
		if count == "1" {
			next = "2"
		}
		_ = ev.Element.SetAttribute("data-count", next)
	})
	if err != nil {
		return err
	}
	return doc.AppendChild(button)
}

func findChange(changes []protocol.Change, match func(protocol.Change) bool) (protocol.Change, bool) {
	for _, c := range changes {
		if match(c) {
			return c, true
		}
	}
	return protocol.Change{}, false
}

func TestHandshakeAndInitialFlush(t *testing.T) {
	srv := NewServer(nil, counterInit)
	client := dialServer(t, srv)

	ack := client.hello("")
	if ack.SessionID == "" {
		t.Fatal("ack has no session id")
	}
	if ack.Resumed {
		t.Error("fresh session reported as resumed")
	}

	changes := client.readBatch()

	// Root attach, button attach, button tag+attribute+listener state.
	if _, ok := findChange(changes, func(c protocol.Change) bool {
		return c.Op == "attach" && c.Node == 1 && c.Parent == 0
	}); !ok {
		t.Error("no root attach change")
	}
	if _, ok := findChange(changes, func(c protocol.Change) bool {
		return c.Op == "attach" && c.Node == 2 && c.Parent == 1
	}); !ok {
		t.Error("no button attach change")
	}
	if _, ok := findChange(changes, func(c protocol.Change) bool {
		return c.Op == "put" && c.Node == 2 && c.NS == "attributes" && c.Key == "data-count"
	}); !ok {
		t.Error("no attribute change for the button")
	}
	if _, ok := findChange(changes, func(c protocol.Change) bool {
		return c.Op == "put" && c.Node == 2 && c.NS == "listeners" && c.Key == "click"
	}); !ok {
		t.Error("no listener forwarding change for the button")
	}

	if srv.SessionCount() != 1 {
		t.Errorf("SessionCount = %d, want 1", srv.SessionCount())
	}
}

func TestEventDispatchFlushesChanges(t *testing.T) {
	srv := NewServer(nil, counterInit)
	client := dialServer(t, srv)
	client.hello("")
	client.readBatch()

	payload := protocol.EncodeEvent(&protocol.Event{Node: 2, Type: "click"})
	client.send(protocol.NewFrame(protocol.FrameEvent, payload))

	changes := client.readBatch()
	change, ok := findChange(changes, func(c protocol.Change) bool {
		return c.Op == "put" && c.Node == 2 && c.NS == "attributes" && c.Key == "data-count"
	})
	if !ok {
		t.Fatalf("no attribute change after click, got %+v", changes)
	}
	if change.Value != "1" {
		t.Errorf("data-count = %v, want 1", change.Value)
	}
}

func TestEventForUnknownNodeIsIgnored(t *testing.T) {
	srv := NewServer(nil, counterInit)
	client := dialServer(t, srv)
	client.hello("")
	client.readBatch()

	// Stale node id: no error frame, no changes; the session stays
	// usable.
	stale := protocol.EncodeEvent(&protocol.Event{Node: 999, Type: "click"})
	client.send(protocol.NewFrame(protocol.FrameEvent, stale))

	valid := protocol.EncodeEvent(&protocol.Event{Node: 2, Type: "click"})
	client.send(protocol.NewFrame(protocol.FrameEvent, valid))

	changes := client.readBatch()
	if _, ok := findChange(changes, func(c protocol.Change) bool {
		return c.Op == "put" && c.Node == 2
	}); !ok {
		t.Fatalf("expected the valid event's changes, got %+v", changes)
	}
}

func TestBadEventGetsErrorFrame(t *testing.T) {
	srv := NewServer(nil, counterInit)
	client := dialServer(t, srv)
	client.hello("")
	client.readBatch()

	client.send(protocol.NewFrame(protocol.FrameEvent, []byte(`{"node":2}`)))

	frame := client.read()
	if frame.Type != protocol.FrameError {
		t.Fatalf("frame type = %v, want Error", frame.Type)
	}
	msg, err := protocol.DecodeError(frame.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if msg.Code != protocol.CodeBadEvent {
		t.Errorf("code = %q, want %q", msg.Code, protocol.CodeBadEvent)
	}
}

func TestPingPong(t *testing.T) {
	srv := NewServer(nil, counterInit)
	client := dialServer(t, srv)
	client.hello("")
	client.readBatch()

	client.send(protocol.NewFrame(protocol.FramePing, protocol.EncodePingPong(&protocol.PingPong{Timestamp: 1234})))

	frame := client.read()
	if frame.Type != protocol.FramePong {
		t.Fatalf("frame type = %v, want Pong", frame.Type)
	}
	pp, err := protocol.DecodePingPong(frame.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if pp.Timestamp != 1234 {
		t.Errorf("timestamp = %d, want 1234", pp.Timestamp)
	}
}

func TestServerUpdatePushesChanges(t *testing.T) {
	srv := NewServer(nil, counterInit)
	client := dialServer(t, srv)
	ack := client.hello("")
	client.readBatch()

	session, ok := srv.Session(ack.SessionID)
	if !ok {
		t.Fatal("session not registered")
	}
	err := session.Update(func(doc dom.Element) error {
		return doc.SetAttribute("data-phase", "ready")
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	changes := client.readBatch()
	if _, ok := findChange(changes, func(c protocol.Change) bool {
		return c.Op == "put" && c.Node == 1 && c.Key == "data-phase"
	}); !ok {
		t.Fatalf("no change from Update, got %+v", changes)
	}
}

func TestSessionResume(t *testing.T) {
	store := NewMemoryStore()
	config := &Config{Store: store, ResumeWindow: time.Minute}
	srv := NewServer(config, counterInit, WithResume(func(s *Session) error {
		// Listeners are not part of snapshots; re-register on the
		// restored button.
		button, err := s.Document().Child(0)
		if err != nil {
			return err
		}
		_, err = button.AddEventListener("click", func(ev dom.Event) {
			_ = ev.Element.SetAttribute("data-count", "9")
		})
		return err
	}))

	first := dialServer(t, srv)
	ack := first.hello("")
	first.readBatch()
	first.conn.Close()

	// The session snapshots as its read loop ends.
	deadline := time.Now().Add(5 * time.Second)
	for store.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("snapshot never stored")
		}
		time.Sleep(10 * time.Millisecond)
	}

	second := dialServer(t, srv)
	resumedAck := second.hello(ack.SessionID)
	if !resumedAck.Resumed {
		t.Fatal("session not resumed")
	}
	if resumedAck.SessionID != ack.SessionID {
		t.Errorf("resumed id = %q, want %q", resumedAck.SessionID, ack.SessionID)
	}

	// The resume callback's listener registration flushes first.
	resumeChanges := second.readBatch()
	if _, ok := findChange(resumeChanges, func(c protocol.Change) bool {
		return c.Op == "put" && c.Node == 2 && c.NS == "listeners" && c.Key == "click"
	}); !ok {
		t.Fatalf("no listener change in resume flush, got %+v", resumeChanges)
	}

	// Node ids survived the restore: the button is still node 2.
	second.send(protocol.NewFrame(protocol.FrameEvent,
		protocol.EncodeEvent(&protocol.Event{Node: 2, Type: "click"})))
	changes := second.readBatch()
	change, ok := findChange(changes, func(c protocol.Change) bool {
		return c.Op == "put" && c.Node == 2 && c.Key == "data-count"
	})
	if !ok {
		t.Fatalf("no change after resumed click, got %+v", changes)
	}
	if change.Value != "9" {
		t.Errorf("data-count = %v, want 9 (re-registered listener)", change.Value)
	}
}

func TestResumeUnknownSessionFallsBackToFresh(t *testing.T) {
	config := &Config{Store: NewMemoryStore()}
	srv := NewServer(config, counterInit, WithResume(func(s *Session) error { return nil }))
	client := dialServer(t, srv)

	ack := client.hello("no-such-session")
	if ack.Resumed {
		t.Error("unknown session must not resume")
	}
	if ack.SessionID == "no-such-session" || ack.SessionID == "" {
		t.Errorf("expected a fresh session id, got %q", ack.SessionID)
	}
	client.readBatch()
}

func TestShutdownNotifiesClients(t *testing.T) {
	srv := NewServer(nil, counterInit)
	client := dialServer(t, srv)
	client.hello("")
	client.readBatch()

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	frame := client.read()
	if frame.Type != protocol.FrameClose {
		t.Fatalf("frame type = %v, want Close", frame.Type)
	}
	if srv.SessionCount() != 0 {
		t.Errorf("SessionCount = %d after shutdown", srv.SessionCount())
	}
}

func TestMetricsWithPrivateRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(WithRegistry(registry), WithNamespace("testloom"))
	config := &Config{Metrics: metrics}
	srv := NewServer(config, counterInit)

	client := dialServer(t, srv)
	client.hello("")
	client.readBatch()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, want := range []string{
		"testloom_push_sessions_active",
		"testloom_push_sessions_total",
		"testloom_push_changes_flushed_total",
	} {
		if !found[want] {
			t.Errorf("metric %s not registered (have %v)", want, found)
		}
	}
}
