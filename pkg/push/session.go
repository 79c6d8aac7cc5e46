package push

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"

	"github.com/loom-ui/loom/pkg/dom"
	"github.com/loom-ui/loom/pkg/protocol"
	"github.com/loom-ui/loom/pkg/state"
)

// Session is one connected client: a WebSocket connection plus the state
// tree backing its UI. All tree access goes through the session mutex;
// the tree itself is not safe for concurrent use.
type Session struct {
	id     string
	server *Server
	conn   *websocket.Conn
	config *Config
	logger *slog.Logger

	// mu serializes tree mutation and flushing.
	mu   sync.Mutex
	tree *state.Tree
	seq  uint64

	// writeMu serializes connection writes (flush vs heartbeat).
	writeMu sync.Mutex

	done      chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Tree returns the session's state tree. Use Update for mutations; the
// tree must not be touched concurrently with the session's event loop.
func (s *Session) Tree() *state.Tree { return s.tree }

// Document returns the element facade over the tree root.
func (s *Session) Document() dom.Element {
	return dom.Wrap(s.tree.Root())
}

// Update runs fn with exclusive access to the session's tree and flushes
// the resulting changes to the client. This is the way to mutate a
// session's UI from outside its own event handlers.
func (s *Session) Update(fn func(doc dom.Element) error) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(dom.Wrap(s.tree.Root())); err != nil {
		return err
	}
	return s.flushLocked()
}

// readLoop consumes frames from the client until the connection drops.
func (s *Session) readLoop() {
	defer s.Close("connection ended")

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				s.server.metrics.wsError("read")
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "error", err)
			s.server.metrics.wsError("decode")
			s.sendError(protocol.CodeBadFrame, "undecodable frame")
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)

		case protocol.FramePing:
			s.handlePing(frame.Payload)

		case protocol.FramePong:
			s.logger.Debug("received pong")

		case protocol.FrameClose:
			reason := "client close"
			if cm, err := protocol.DecodeClose(frame.Payload); err == nil && cm.Reason != "" {
				reason = cm.Reason
			}
			s.logger.Info("client closing", "reason", reason)
			s.Close(reason)
			return

		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
		}
	}
}

// handleEventFrame decodes a client event, dispatches it into the tree
// and flushes the resulting changes.
func (s *Session) handleEventFrame(payload []byte) {
	event, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.logger.Error("event decode error", "error", err)
		s.server.metrics.eventProcessed("unknown", "bad")
		s.sendError(protocol.CodeBadEvent, err.Error())
		return
	}

	ctx, span := s.server.tracer.startDispatch(context.Background(), s.id, event.Type, event.Node)
	_ = ctx

	s.mu.Lock()
	dispatchErr := dom.DispatchEvent(s.tree, event.Node, event.Type, event.Data)
	var flushErr error
	if dispatchErr == nil {
		flushErr = s.flushLocked()
	}
	s.mu.Unlock()

	switch {
	case errors.Is(dispatchErr, dom.ErrNodeNotFound):
		// Normal race: the node detached while the event was in flight.
		s.logger.Debug("event for detached node", "node", event.Node, "type", event.Type)
		s.server.metrics.eventProcessed(event.Type, "stale")
		end(span, nil, attribute.String("loom.dispatch", "stale"))
		return
	case dispatchErr != nil:
		s.logger.Error("dispatch error", "error", dispatchErr, "type", event.Type)
		s.server.metrics.eventProcessed(event.Type, "error")
		s.sendError(protocol.CodeInternal, "event dispatch failed")
		end(span, dispatchErr)
		return
	case flushErr != nil:
		s.logger.Error("flush error", "error", flushErr)
		s.server.metrics.eventProcessed(event.Type, "error")
		end(span, flushErr)
		return
	}

	s.server.metrics.eventProcessed(event.Type, "ok")
	end(span, nil)
}

// flushLocked drains pending tree changes into change frames and writes
// them. Callers hold s.mu.
func (s *Session) flushLocked() error {
	if !s.tree.HasChanges() {
		return nil
	}

	_, span := s.server.tracer.startFlush(context.Background(), s.id)
	start := time.Now()

	var changes []protocol.Change
	s.tree.CollectChanges(func(c state.Change) {
		changes = append(changes, protocol.FromStateChange(c))
	})

	s.seq++
	frames, err := protocol.EncodeChangeFrames(s.seq, changes)
	if err != nil {
		end(span, err)
		return NewSessionError(s.id, "encode changes", err)
	}
	for _, frame := range frames {
		if err := s.writeFrame(frame); err != nil {
			end(span, err)
			return err
		}
	}

	s.server.metrics.flushed(len(changes), len(frames), time.Since(start).Seconds())
	end(span, nil,
		attribute.Int("loom.changes", len(changes)),
		attribute.Int("loom.frames", len(frames)),
	)
	s.logger.Debug("flushed changes", "seq", s.seq, "changes", len(changes), "frames", len(frames))
	return nil
}

// writeLoop sends heartbeats until the session closes.
func (s *Session) writeLoop() {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			payload := protocol.EncodePingPong(&protocol.PingPong{Timestamp: time.Now().UnixMilli()})
			if err := s.writeFrame(protocol.NewFrame(protocol.FramePing, payload)); err != nil {
				s.logger.Debug("ping failed, closing", "error", err)
				s.Close("ping failed")
				return
			}

		case <-s.done:
			return
		}
	}
}

// handlePing answers a client heartbeat with a pong echoing the
// timestamp.
func (s *Session) handlePing(payload []byte) {
	pp, err := protocol.DecodePingPong(payload)
	if err != nil {
		s.logger.Debug("bad ping payload", "error", err)
		pp = &protocol.PingPong{}
	}
	if err := s.writeFrame(protocol.NewFrame(protocol.FramePong, protocol.EncodePingPong(pp))); err != nil {
		s.logger.Debug("pong failed", "error", err)
	}
}

// sendError reports a recoverable failure to the client.
func (s *Session) sendError(code, message string) {
	payload := protocol.EncodeError(&protocol.ErrorMessage{Code: code, Message: message})
	if err := s.writeFrame(protocol.NewFrame(protocol.FrameError, payload)); err != nil {
		s.logger.Debug("error frame failed", "error", err)
	}
}

// writeFrame writes one frame under the write lock and deadline.
func (s *Session) writeFrame(frame *protocol.Frame) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, frame.Encode()); err != nil {
		s.server.metrics.wsError("write")
		return NewSessionError(s.id, "write frame", err)
	}
	return nil
}

// Close tears the session down: snapshots it for resume when a store is
// configured, closes the connection and removes it from the server.
// Safe to call more than once.
func (s *Session) Close(reason string) {
	s.closeOnce.Do(func() {
		s.snapshot()
		s.closed.Store(true)
		close(s.done)
		s.conn.Close()
		s.server.removeSession(s)
		s.server.metrics.sessionEnded()
		s.logger.Info("session closed", "reason", reason)
	})
}

// snapshot persists the tree for a later resume.
func (s *Session) snapshot() {
	store := s.config.Store
	if store == nil {
		return
	}

	s.mu.Lock()
	rec := &SnapshotRecord{
		SessionID: s.id,
		Seq:       s.seq,
		SavedAt:   time.Now(),
		Tree:      s.tree.TakeSnapshot(),
	}
	s.mu.Unlock()

	data, err := EncodeSnapshot(rec)
	if err != nil {
		s.logger.Error("snapshot encode failed", "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Save(ctx, s.id, data, time.Now().Add(s.config.ResumeWindow)); err != nil {
		s.logger.Error("snapshot save failed", "error", err)
		return
	}
	s.server.metrics.snapshotStored()
	s.logger.Debug("snapshot stored", "seq", rec.Seq)
}
