package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/loom-ui/loom/internal/errors"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := New()
	if cfg.Server.Address != DefaultAddress {
		t.Errorf("Address = %q", cfg.Server.Address)
	}
	if cfg.Stats.File != DefaultStatsFile {
		t.Errorf("Stats.File = %q", cfg.Stats.File)
	}
	window, err := cfg.ResumeWindow()
	if err != nil {
		t.Fatalf("ResumeWindow: %v", err)
	}
	if window != 5*time.Minute {
		t.Errorf("ResumeWindow = %v", window)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFileName, `{"name":"demo","server":{"address":":8080"}}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "demo" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("Address = %q", cfg.Server.Address)
	}
	if cfg.Stats.File != DefaultStatsFile {
		t.Errorf("Stats.File = %q, want default filled in", cfg.Stats.File)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected an error")
	}
	var structured *errors.Error
	if !stderrors.As(err, &structured) || structured.Code != "E100" {
		t.Fatalf("err = %v, want E100", err)
	}
}

func TestLoadBadJSON(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFileName, `{"name": `)

	_, err := Load(dir)
	var structured *errors.Error
	if !stderrors.As(err, &structured) || structured.Code != "E101" {
		t.Fatalf("err = %v, want E101", err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ConfigFileName, `{"name":"above"}`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if cfg.Name != "above" {
		t.Errorf("Name = %q, want the parent's config", cfg.Name)
	}
}

func TestFindWithoutFileReturnsDefaults(t *testing.T) {
	cfg, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path = %q, want empty for defaults", cfg.Path())
	}
}

func TestLoadOptionalYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, YAMLFileName, "name: yamldemo\nstats:\n  url: http://localhost:8081/stats.json\n")

	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Name != "yamldemo" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Stats.URL != "http://localhost:8081/stats.json" {
		t.Errorf("Stats.URL = %q", cfg.Stats.URL)
	}
	// File default must not be applied when URL is set.
	if cfg.Stats.File != "" {
		t.Errorf("Stats.File = %q, want empty", cfg.Stats.File)
	}
}

func TestLoadOptionalAbsent(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Server.Address != DefaultAddress {
		t.Errorf("absent file must yield defaults, got %+v", cfg)
	}
}

func TestLoadOptionalBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, YAMLFileName, "name: [unclosed\n")

	_, err := LoadOptional(dir)
	var structured *errors.Error
	if !stderrors.As(err, &structured) || structured.Code != "E102" {
		t.Fatalf("err = %v, want E102", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "bad resume window",
			mutate:  func(c *Config) { c.Session.ResumeWindow = "soon" },
			wantErr: true,
		},
		{
			name:    "s3 bucket without key",
			mutate:  func(c *Config) { c.Stats.S3.Bucket = "builds" },
			wantErr: true,
		},
		{
			name:    "negative max sessions",
			mutate:  func(c *Config) { c.Server.MaxSessions = -1 },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := New()
	cfg.Name = "saved"
	path := filepath.Join(dir, ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Name != "saved" {
		t.Errorf("Name = %q", loaded.Name)
	}
}
