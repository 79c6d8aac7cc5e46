package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/loom-ui/loom/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "loom.json"

	// YAMLFileName is the name of the YAML configuration file.
	YAMLFileName = "loom.yaml"

	// DefaultAddress is the default server bind address.
	DefaultAddress = "localhost:3000"

	// DefaultStatsFile is the default bundler statistics location.
	DefaultStatsFile = "dist/stats.json"

	// DefaultResumeWindow is the default session resume window.
	DefaultResumeWindow = "5m"
)

// Config represents the complete loom.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Server contains push server configuration.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Stats configures where bundler statistics come from.
	Stats StatsConfig `json:"stats,omitempty" yaml:"stats,omitempty"`

	// Session contains session persistence configuration.
	Session SessionConfig `json:"session,omitempty" yaml:"session,omitempty"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// ServerConfig contains push server settings.
type ServerConfig struct {
	// Address is the host:port the server binds.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`

	// MaxSessions caps concurrent sessions. 0 means no cap.
	MaxSessions int `json:"maxSessions,omitempty" yaml:"maxSessions,omitempty"`

	// Metrics enables Prometheus instrumentation.
	Metrics bool `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Tracing enables OpenTelemetry spans.
	Tracing bool `json:"tracing,omitempty" yaml:"tracing,omitempty"`
}

// StatsConfig tells the template layer where the bundler statistics
// document lives. Exactly one of File, URL or S3 should be set; File
// wins when several are.
type StatsConfig struct {
	// File is a local stats file path.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// URL is an HTTP stats endpoint (dev-mode bundler).
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// S3 points at a stats object in S3.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// S3Config locates a statistics object in S3.
type S3Config struct {
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`
}

// SessionConfig contains session persistence settings.
type SessionConfig struct {
	// ResumeWindow is how long a disconnected session stays resumable
	// (e.g., "5m").
	ResumeWindow string `json:"resumeWindow,omitempty" yaml:"resumeWindow,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Server: ServerConfig{
			Address: DefaultAddress,
		},
		Stats: StatsConfig{
			File: DefaultStatsFile,
		},
		Session: SessionConfig{
			ResumeWindow: DefaultResumeWindow,
		},
	}
}

// Load reads configuration from the specified directory. It looks for
// loom.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path))
		}
		return nil, errors.New("E100").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + path + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Find walks up from dir looking for a loom.json; loading the first one
// found. When no config file exists anywhere up the tree, the defaults
// are returned with no error (a config file is optional).
func Find(dir string) (*Config, error) {
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return New(), nil
		}
		dir = parent
	}
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "config has no file path; use SaveTo")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration as JSON to the given path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Newf(errors.CategoryConfig, "marshal config: %v", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Newf(errors.CategoryConfig, "write %s: %v", path, err)
	}
	return nil
}

// Path returns the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string { return c.configPath }

// applyDefaults fills unset fields after a partial config file.
func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Stats.File == "" && c.Stats.URL == "" && c.Stats.S3.Bucket == "" {
		c.Stats.File = DefaultStatsFile
	}
	if c.Session.ResumeWindow == "" {
		c.Session.ResumeWindow = DefaultResumeWindow
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if _, err := c.ResumeWindow(); err != nil {
		return errors.New("E103").
			WithDetail("session.resumeWindow is not a duration: " + c.Session.ResumeWindow)
	}
	if c.Stats.S3.Bucket != "" && c.Stats.S3.Key == "" {
		return errors.New("E103").
			WithDetail("stats.s3.bucket is set but stats.s3.key is empty")
	}
	if c.Server.MaxSessions < 0 {
		return errors.New("E103").
			WithDetail("server.maxSessions must not be negative")
	}
	return nil
}

// ResumeWindow parses the session resume window.
func (c *Config) ResumeWindow() (time.Duration, error) {
	return time.ParseDuration(c.Session.ResumeWindow)
}
