package cliconfig

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations to keep the
// file format friendly. TOML and YAML are both accepted; the extension
// picks the parser.
type FileConfig struct {
	WebhookURL    string `toml:"webhook_url" yaml:"webhook_url"`
	Caption       string `toml:"caption" yaml:"caption"`
	HTTPTimeout   string `toml:"http_timeout" yaml:"http_timeout"`
	GroupSize     int    `toml:"group_size" yaml:"group_size"`
	MaxFileBytes  int64  `toml:"max_file_bytes" yaml:"max_file_bytes"`
	SpoolDir      string `toml:"spool_dir" yaml:"spool_dir"`
	StateDir      string `toml:"state_dir" yaml:"state_dir"`
	WatchDir      string `toml:"watch_dir" yaml:"watch_dir"`
	WatchDebounce string `toml:"watch_debounce" yaml:"watch_debounce"`
	DryRun        *bool  `toml:"dry_run" yaml:"dry_run"`
	Verbose       *bool  `toml:"verbose" yaml:"verbose"`
}

// LoadFileConfig reads and parses a config file from the given path.
// Files ending in .yaml or .yml are parsed as YAML, everything else
// as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	default:
		err = toml.Unmarshal(b, &fc)
	}
	if err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.imgship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".imgship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("webhook-url", fc.WebhookURL, &cfg.WebhookURL)
	s.setString("caption", fc.Caption, &cfg.Caption)
	s.setString("spool-dir", fc.SpoolDir, &cfg.SpoolDir)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("watch", fc.WatchDir, &cfg.WatchDir)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("watch-debounce", fc.WatchDebounce, &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setInt("group-size", fc.GroupSize, &cfg.GroupSize)
	s.setInt64("max-file-bytes", fc.MaxFileBytes, &cfg.MaxFileBytes)

	s.setBool("dry-run", fc.DryRun, &cfg.DryRun)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
