package config

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/loom-ui/loom/internal/errors"
)

// LoadOptional reads loom.yaml from dir if present. An absent file is
// not an error; the defaults are returned.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, YAMLFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, errors.New("E100").Wrap(err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E102").
			WithDetail("Failed to parse " + path + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}
