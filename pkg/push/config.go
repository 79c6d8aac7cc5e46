package push

import (
	"net/http"
	"time"
)

// Config configures the push server. Zero values take defaults.
type Config struct {
	// ReadTimeout bounds each read from the client. A connection that
	// stays silent longer than this (pongs included) is dropped.
	ReadTimeout time.Duration

	// WriteTimeout bounds each write to the client.
	WriteTimeout time.Duration

	// PingInterval is how often the server pings an idle client. Must be
	// shorter than ReadTimeout or healthy clients get dropped.
	PingInterval time.Duration

	// MaxSessions caps concurrently connected sessions. 0 means no cap.
	MaxSessions int

	// ReadBufferSize is the WebSocket read buffer size.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	WriteBufferSize int

	// CheckOrigin validates the Origin header during the upgrade. Nil
	// accepts same-origin requests only.
	CheckOrigin func(r *http.Request) bool

	// Store persists session snapshots for resume. Nil disables resume;
	// every connection starts fresh.
	Store SnapshotStore

	// ResumeWindow is how long a stored snapshot stays resumable.
	ResumeWindow time.Duration

	// Metrics enables Prometheus instrumentation when set.
	Metrics *Metrics

	// Tracing enables OpenTelemetry spans for dispatch and flush.
	Tracing bool
}

// DefaultConfig returns the default push server configuration.
func DefaultConfig() *Config {
	return &Config{
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    10 * time.Second,
		PingInterval:    30 * time.Second,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		ResumeWindow:    5 * time.Minute,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	if c == nil {
		return DefaultConfig()
	}
	defaults := DefaultConfig()
	out := *c
	if out.ReadTimeout == 0 {
		out.ReadTimeout = defaults.ReadTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = defaults.WriteTimeout
	}
	if out.PingInterval == 0 {
		out.PingInterval = defaults.PingInterval
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = defaults.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = defaults.WriteBufferSize
	}
	if out.ResumeWindow == 0 {
		out.ResumeWindow = defaults.ResumeWindow
	}
	return &out
}
