package loom

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/loom-ui/loom/el"
	"github.com/loom-ui/loom/internal/config"
	loomerrors "github.com/loom-ui/loom/internal/errors"
	"github.com/loom-ui/loom/pkg/bundle"
	"github.com/loom-ui/loom/pkg/protocol"
)

func TestNewWithDefaults(t *testing.T) {
	app, err := New(nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d", rec.Code)
	}
}

func TestStatsSourceSelection(t *testing.T) {
	cfg := config.New()
	cfg.Stats = config.StatsConfig{URL: "http://localhost:8081/stats.json"}
	source, err := statsSource(cfg, nil)
	if err != nil {
		t.Fatalf("statsSource: %v", err)
	}
	if _, ok := source.(*bundle.HTTPSource); !ok {
		t.Errorf("source = %T, want *bundle.HTTPSource", source)
	}

	cfg.Stats = config.StatsConfig{File: "dist/stats.json"}
	source, err = statsSource(cfg, nil)
	if err != nil {
		t.Fatalf("statsSource: %v", err)
	}
	if _, ok := source.(*bundle.FileSource); !ok {
		t.Errorf("source = %T, want *bundle.FileSource", source)
	}

	cfg.Stats = config.StatsConfig{S3: config.S3Config{Bucket: "builds", Key: "stats.json"}}
	_, err = statsSource(cfg, nil)
	var structured *loomerrors.Error
	if !stderrors.As(err, &structured) || structured.Code != "E103" {
		t.Errorf("s3 without client err = %v, want E103", err)
	}
}

func TestComponentFromStats(t *testing.T) {
	source := "class MyCard extends PolymerElement {" +
		"static get template() { return html`<div class=\"card\">Welcome</div>`; }}"
	stats := `{"hash":"abc123","modules":[{"name":"./frontend/my-card.js","source":` +
		jsonQuote(source) + `}]}`

	dir := t.TempDir()
	statsPath := filepath.Join(dir, "stats.json")
	if err := os.WriteFile(statsPath, []byte(stats), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.New()
	cfg.Stats.File = statsPath
	app, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	card, err := app.Component(context.Background(), "my-card")
	if err != nil {
		t.Fatalf("Component: %v", err)
	}
	if card.Tag() != "my-card" {
		t.Errorf("Tag = %q", card.Tag())
	}
	if !card.IsTemplateBacked() {
		t.Error("component is not template-backed")
	}
	if card.ChildCount() != 1 {
		t.Fatalf("ChildCount = %d", card.ChildCount())
	}
	div, _ := card.Child(0)
	if div.Tag() != "div" || div.Text() != "Welcome" {
		t.Errorf("template child = %s %q", div.Tag(), div.Text())
	}
}

func TestSyncEndpointServesSessions(t *testing.T) {
	app, err := New(nil, func(s *Session) error {
		return s.Document().AppendChild(
			el.Button(el.ID("go"), el.Text("Start")),
		)
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ts := httptest.NewServer(app)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/_loom/sync"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	hello := protocol.EncodeHello(&protocol.Hello{Version: protocol.ProtocolVersion})
	if err := conn.WriteMessage(websocket.BinaryMessage, protocol.NewFrame(protocol.FrameHello, hello).Encode()); err != nil {
		t.Fatalf("write hello: %v", err)
	}

	ack := readFrame(t, conn)
	if ack.Type != protocol.FrameHello {
		t.Fatalf("first frame type = %v", ack.Type)
	}
	parsed, err := protocol.DecodeHelloAck(ack.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.SessionID == "" || parsed.Resumed {
		t.Errorf("ack = %+v", parsed)
	}

	changes := readFrame(t, conn)
	if changes.Type != protocol.FrameChanges {
		t.Fatalf("second frame type = %v", changes.Type)
	}
	batch, err := protocol.DecodeChangeBatch(changes.Payload)
	if err != nil {
		t.Fatal(err)
	}
	// Root attach, button attach, id attribute, text child at least.
	if len(batch.Changes) < 3 {
		t.Errorf("initial batch has %d changes:\n%+v", len(batch.Changes), batch.Changes)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) *protocol.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return frame
}

// jsonQuote is a minimal JSON string encoder for test fixtures.
func jsonQuote(s string) string {
	out := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`).Replace(s)
	return `"` + out + `"`
}
