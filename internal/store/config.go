package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filtertree/internal/model"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// AutoExpandDelay is how long a make-child hover must last before a
	// collapsed group opens under the pointer.
	AutoExpandDelay time.Duration `yaml:"autoExpandDelay,omitempty"`
	// FlashDuration is how long a moved row stays highlighted.
	FlashDuration time.Duration `yaml:"flashDuration,omitempty"`
	// IndentPerLevel is the width, in cells, of one nesting level.
	IndentPerLevel int `yaml:"indentPerLevel,omitempty"`

	Glyphs    string   `yaml:"glyphs,omitempty"`
	Operators []string `yaml:"operators,omitempty"`

	Seed    string `yaml:"seed,omitempty"`
	Journal string `yaml:"journal,omitempty"`

	LogLevel  string `yaml:"logLevel,omitempty"`
	LogFormat string `yaml:"logFormat,omitempty"`
	LogFile   string `yaml:"logFile,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		AutoExpandDelay: 500 * time.Millisecond,
		FlashDuration:   700 * time.Millisecond,
		IndentPerLevel:  3,
		Glyphs:          "unicode",
		Operators:       append([]string(nil), model.DefaultOperators...),
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.AutoExpandDelay <= 0 {
		c.AutoExpandDelay = d.AutoExpandDelay
	}
	if c.FlashDuration <= 0 {
		c.FlashDuration = d.FlashDuration
	}
	if c.IndentPerLevel <= 0 {
		c.IndentPerLevel = d.IndentPerLevel
	}
	if strings.TrimSpace(c.Glyphs) == "" {
		c.Glyphs = d.Glyphs
	}
	if len(c.Operators) == 0 {
		c.Operators = d.Operators
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = d.LogLevel
	}
	if strings.TrimSpace(c.LogFormat) == "" {
		c.LogFormat = d.LogFormat
	}
	return c
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching the user's config).
	if v := strings.TrimSpace(os.Getenv("FILTERTREE_CONFIG_DIR")); v != "" {
		return v, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "filtertree"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig reads the YAML config at path (the default location when empty).
// A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg.withDefaults(), nil
}

// SaveConfig writes cfg as YAML to path (the default location when empty).
func SaveConfig(path string, cfg Config) error {
	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	dir, err := ensureParentDir(path)
	if err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.yaml.*.tmp", path, b, 0o600)
}
