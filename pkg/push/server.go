package push

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/loom-ui/loom/pkg/protocol"
	"github.com/loom-ui/loom/pkg/state"
)

// SyncPath is the WebSocket endpoint the thin client connects to.
const SyncPath = "/_loom/sync"

// SessionInit builds the initial UI of a fresh session: construct the
// element tree and register event listeners. It runs before the first
// flush, so everything it builds reaches the client as one batch.
type SessionInit func(s *Session) error

// Server accepts client connections and runs one Session per client.
type Server struct {
	config   *Config
	upgrader websocket.Upgrader
	logger   *slog.Logger
	metrics  *Metrics
	tracer   *tracer

	init   SessionInit
	resume SessionInit

	mu       sync.RWMutex
	sessions map[string]*Session

	closed atomic.Bool
}

// Option configures a Server beyond its Config.
type Option func(*Server)

// WithResume sets the callback run after a session is restored from a
// snapshot. Listener functions are not part of snapshots, so the
// callback must re-register them against the restored tree. Without it,
// resume is disabled and reconnecting clients get fresh sessions.
func WithResume(fn SessionInit) Option {
	return func(s *Server) {
		s.resume = fn
	}
}

// NewServer creates a push server. init runs for every fresh session.
func NewServer(config *Config, init SessionInit, opts ...Option) *Server {
	config = config.withDefaults()
	srv := &Server{
		config:   config,
		logger:   slog.Default().With("component", "push"),
		metrics:  config.Metrics,
		tracer:   newTracer(config.Tracing),
		init:     init,
		sessions: make(map[string]*Session),
	}
	srv.upgrader = websocket.Upgrader{
		ReadBufferSize:  config.ReadBufferSize,
		WriteBufferSize: config.WriteBufferSize,
		CheckOrigin:     config.CheckOrigin,
	}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

// Handler returns the WebSocket upgrade handler for the sync endpoint.
func (srv *Server) Handler() http.HandlerFunc {
	return srv.handleSync
}

// Routes returns a chi router with the sync endpoint mounted at
// SyncPath, ready to mount into an application router.
func (srv *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get(SyncPath, srv.handleSync)
	return r
}

// SessionCount returns the number of connected sessions.
func (srv *Server) SessionCount() int {
	srv.mu.RLock()
	defer srv.mu.RUnlock()
	return len(srv.sessions)
}

// Session returns a connected session by id.
func (srv *Server) Session(id string) (*Session, bool) {
	srv.mu.RLock()
	defer srv.mu.RUnlock()
	s, ok := srv.sessions[id]
	return s, ok
}

// Broadcast runs fn on every connected session. Errors are logged, not
// returned; one failing session must not stop the others.
func (srv *Server) Broadcast(fn func(s *Session) error) {
	srv.mu.RLock()
	sessions := make([]*Session, 0, len(srv.sessions))
	for _, s := range srv.sessions {
		sessions = append(sessions, s)
	}
	srv.mu.RUnlock()

	for _, s := range sessions {
		if err := fn(s); err != nil {
			srv.logger.Error("broadcast failed", "session", s.id, "error", err)
		}
	}
}

// Shutdown closes every session after announcing the close to its
// client. Snapshots are stored as part of the close, so clients can
// resume after a restart when a persistent store is configured.
func (srv *Server) Shutdown(ctx context.Context) error {
	srv.closed.Store(true)

	srv.mu.RLock()
	sessions := make([]*Session, 0, len(srv.sessions))
	for _, s := range srv.sessions {
		sessions = append(sessions, s)
	}
	srv.mu.RUnlock()

	payload := protocol.EncodeClose(&protocol.Close{Reason: "server shutdown"})
	for _, s := range sessions {
		if err := ctx.Err(); err != nil {
			return err
		}
		_ = s.writeFrame(protocol.NewFrame(protocol.FrameClose, payload))
		s.Close("server shutdown")
	}
	srv.logger.Info("push server shut down", "sessions", len(sessions))
	return nil
}

// handleSync upgrades the connection and runs the hello exchange, then
// hands the connection to its session's loops.
func (srv *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if srv.closed.Load() {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}
	if srv.config.MaxSessions > 0 && srv.SessionCount() >= srv.config.MaxSessions {
		srv.logger.Warn("rejecting connection", "error", ErrMaxSessionsReached)
		http.Error(w, "too many sessions", http.StatusServiceUnavailable)
		return
	}

	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		srv.logger.Error("upgrade failed", "error", err)
		srv.metrics.wsError("upgrade")
		return
	}

	session, err := srv.handshake(r.Context(), conn)
	if err != nil {
		srv.logger.Warn("handshake failed", "error", err)
		srv.metrics.wsError("handshake")
		conn.Close()
		return
	}

	go session.writeLoop()
	session.readLoop()
}

// handshake reads the client hello and builds the session, fresh or
// resumed.
func (srv *Server) handshake(ctx context.Context, conn *websocket.Conn) (*Session, error) {
	conn.SetReadDeadline(time.Now().Add(srv.config.ReadTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, NewSessionError("", "read hello", err)
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		return nil, NewSessionError("", "decode hello frame", err)
	}
	if frame.Type != protocol.FrameHello {
		return nil, NewSessionError("", "handshake", ErrInvalidHandshake)
	}
	hello, err := protocol.DecodeHello(frame.Payload)
	if err != nil {
		return nil, NewSessionError("", "decode hello", err)
	}

	if hello.SessionID != "" {
		session, err := srv.resumeSession(ctx, conn, hello.SessionID)
		if err == nil {
			return session, nil
		}
		srv.logger.Info("resume failed, starting fresh", "session", hello.SessionID, "error", err)
	}
	return srv.freshSession(conn)
}

// freshSession builds a new session with a new tree and runs init.
func (srv *Server) freshSession(conn *websocket.Conn) (*Session, error) {
	session := srv.newSession(conn, newSessionID(), state.NewTree())

	if srv.init != nil {
		session.mu.Lock()
		err := srv.init(session)
		session.mu.Unlock()
		if err != nil {
			return nil, NewSessionError(session.id, "init", err)
		}
	}

	srv.addSession(session)
	srv.metrics.sessionStarted("fresh")

	ack := &protocol.HelloAck{Version: protocol.ProtocolVersion, SessionID: session.id}
	if err := session.writeFrame(protocol.NewFrame(protocol.FrameHello, protocol.EncodeHelloAck(ack))); err != nil {
		srv.dropSession(session)
		return nil, err
	}

	// First flush carries the whole initial tree.
	session.mu.Lock()
	err := session.flushLocked()
	session.mu.Unlock()
	if err != nil {
		srv.dropSession(session)
		return nil, err
	}

	srv.logger.Info("session started", "session", session.id)
	return session, nil
}

// resumeSession restores a session from its stored snapshot. The client
// keeps its DOM from before the disconnect; node ids stay stable and
// nothing is re-sent unless the resume callback mutates the tree.
func (srv *Server) resumeSession(ctx context.Context, conn *websocket.Conn, sessionID string) (*Session, error) {
	store := srv.config.Store
	if store == nil || srv.resume == nil {
		return nil, ErrNoSnapshot
	}
	data, err := store.Load(ctx, sessionID)
	if err != nil {
		return nil, NewSessionError(sessionID, "load snapshot", err)
	}
	if data == nil {
		return nil, ErrNoSnapshot
	}
	rec, err := DecodeSnapshot(data)
	if err != nil {
		return nil, NewSessionError(sessionID, "decode snapshot", err)
	}
	tree, err := state.RestoreTree(rec.Tree)
	if err != nil {
		return nil, NewSessionError(sessionID, "restore tree", err)
	}

	session := srv.newSession(conn, sessionID, tree)
	session.seq = rec.Seq

	session.mu.Lock()
	err = srv.resume(session)
	session.mu.Unlock()
	if err != nil {
		return nil, NewSessionError(sessionID, "resume", err)
	}

	srv.addSession(session)
	srv.metrics.sessionStarted("resumed")

	ack := &protocol.HelloAck{Version: protocol.ProtocolVersion, SessionID: sessionID, Resumed: true}
	if err := session.writeFrame(protocol.NewFrame(protocol.FrameHello, protocol.EncodeHelloAck(ack))); err != nil {
		srv.dropSession(session)
		return nil, err
	}

	session.mu.Lock()
	err = session.flushLocked()
	session.mu.Unlock()
	if err != nil {
		srv.dropSession(session)
		return nil, err
	}

	_ = store.Delete(ctx, sessionID)
	srv.logger.Info("session resumed", "session", sessionID, "seq", rec.Seq)
	return session, nil
}

func (srv *Server) newSession(conn *websocket.Conn, id string, tree *state.Tree) *Session {
	return &Session{
		id:     id,
		server: srv,
		conn:   conn,
		config: srv.config,
		logger: srv.logger.With("session", id),
		tree:   tree,
		done:   make(chan struct{}),
	}
}

func (srv *Server) addSession(s *Session) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.sessions[s.id] = s
}

func (srv *Server) removeSession(s *Session) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	delete(srv.sessions, s.id)
}

// dropSession removes a half-started session without the full close
// path; the caller still owns the connection.
func (srv *Server) dropSession(s *Session) {
	srv.removeSession(s)
	srv.metrics.sessionEnded()
}

// newSessionID returns a 128-bit random session identifier.
func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("push: session id entropy unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
