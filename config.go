package imgship

import (
	"fmt"
	"os"
	"time"

	"github.com/imgship/imgship/internal/domain"
	"github.com/imgship/imgship/pkg/encode"
	"github.com/imgship/imgship/pkg/webhook"
)

// EnvWebhookURL is the environment variable holding the Discord webhook
// URL. It is the only piece of configuration the node surface reads.
const EnvWebhookURL = "DISCORD_WEBHOOK_URL"

// Config holds the configuration for an Imgship instance.
// Zero values are filled in by SetDefaults; only WebhookURL has no
// default and is required unless DryRun is set.
type Config struct {
	// WebhookURL is the Discord webhook endpoint that receives posts.
	WebhookURL string

	// HTTPTimeout bounds each webhook request, connection to response.
	HTTPTimeout time.Duration

	// GroupSize is the maximum number of attachments per message,
	// between 1 and webhook.MaxFiles.
	GroupSize int

	// MaxFileBytes is the encoded size above which an image is halved
	// in both dimensions and re-encoded once.
	MaxFileBytes int64

	// SpoolDir is the parent directory for per-post attachment spools.
	// Empty means the system temp directory.
	SpoolDir string

	// StateDir is where plugins persist their own state. Empty means
	// each plugin picks its own location.
	StateDir string

	// DryRun encodes and groups attachments but skips network delivery.
	DryRun bool
}

// DefaultConfig returns a Config with default values. The webhook URL
// is taken from the DISCORD_WEBHOOK_URL environment variable when set.
func DefaultConfig() Config {
	return Config{
		WebhookURL:   os.Getenv(EnvWebhookURL),
		HTTPTimeout:  webhook.DefaultTimeout,
		GroupSize:    webhook.MaxFiles,
		MaxFileBytes: encode.DefaultMaxBytes,
	}
}

// SetDefaults fills zero-valued fields with their defaults.
func (c *Config) SetDefaults() {
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = webhook.DefaultTimeout
	}
	if c.GroupSize <= 0 {
		c.GroupSize = webhook.MaxFiles
	}
	if c.MaxFileBytes <= 0 {
		c.MaxFileBytes = encode.DefaultMaxBytes
	}
}

// Validate checks the configuration for errors. Call after SetDefaults.
func (c *Config) Validate() error {
	if c.WebhookURL == "" && !c.DryRun {
		return fmt.Errorf("%w: set %s or Config.WebhookURL", domain.ErrWebhookURLMissing, EnvWebhookURL)
	}
	if c.GroupSize < 1 || c.GroupSize > webhook.MaxFiles {
		return fmt.Errorf("%w: group size %d out of range 1..%d", domain.ErrInvalidConfig, c.GroupSize, webhook.MaxFiles)
	}
	if c.MaxFileBytes < 1 {
		return fmt.Errorf("%w: max file bytes must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

// ConfigFromEnv builds a Config from the environment. It fails when
// DISCORD_WEBHOOK_URL is unset, before any image processing happens.
func ConfigFromEnv() (Config, error) {
	url := os.Getenv(EnvWebhookURL)
	if url == "" {
		return Config{}, fmt.Errorf("%w: environment variable %s is not set", domain.ErrWebhookURLMissing, EnvWebhookURL)
	}
	cfg := DefaultConfig()
	cfg.WebhookURL = url
	return cfg, nil
}
