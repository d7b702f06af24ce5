package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/imgship/imgship/pkg/encode"
	"github.com/imgship/imgship/pkg/webhook"
)

// EnvWebhookURL is the environment variable holding the Discord webhook
// endpoint. It is read directly, without the IMGSHIP_ prefix, because
// Discord integrations conventionally use this name.
const EnvWebhookURL = "DISCORD_WEBHOOK_URL"

// DefaultWatchDebounce is how long a watched file must stay quiet before
// it is posted.
const DefaultWatchDebounce = 500 * time.Millisecond

// Config holds CLI configuration for imgship.
type Config struct {
	WebhookURL string
	Caption    string

	HTTPTimeout  time.Duration
	GroupSize    int
	MaxFileBytes int64

	SpoolDir string
	StateDir string

	WatchDir      string
	WatchDebounce time.Duration

	DryRun  bool
	Verbose bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		WebhookURL:    os.Getenv(EnvWebhookURL),
		HTTPTimeout:   webhook.DefaultTimeout,
		GroupSize:     webhook.MaxFiles,
		MaxFileBytes:  encode.DefaultMaxBytes,
		SpoolDir:      "", // system temp dir
		StateDir:      "", // derived from WatchDir during Validate
		WatchDebounce: DefaultWatchDebounce,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.WebhookURL == "" && !c.DryRun {
		return fmt.Errorf("webhook URL is required (set --webhook-url or %s)", EnvWebhookURL)
	}

	if c.StateDir == "" && c.WatchDir != "" {
		c.StateDir = c.WatchDir
	}

	if c.GroupSize < 1 || c.GroupSize > webhook.MaxFiles {
		return fmt.Errorf("group size must be between 1 and %d", webhook.MaxFiles)
	}
	if c.MaxFileBytes < 1 {
		return fmt.Errorf("max file bytes must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.WatchDebounce <= 0 {
		return fmt.Errorf("watch debounce must be positive")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt64 sets an int64 value if positive and flag not changed.
func (s *configSetter) setInt64(flag string, value int64, dst *int64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setInt64FromString parses a string to int64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setInt64FromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
