package imgship

import "github.com/imgship/imgship/internal/domain"

// Sentinel errors returned by the public API. Compare with errors.Is;
// returned errors may wrap these with additional context.
var (
	// ErrWebhookURLMissing indicates no webhook URL was configured.
	ErrWebhookURLMissing = domain.ErrWebhookURLMissing

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = domain.ErrInvalidConfig

	// ErrAlreadyRunning is returned by Start when the instance cannot start.
	ErrAlreadyRunning = domain.ErrAlreadyRunning

	// ErrNotRunning is returned by Stop when the instance is not running.
	ErrNotRunning = domain.ErrNotRunning

	// ErrShutdownTimeout is returned by Stop when shutdown exceeds its deadline.
	ErrShutdownTimeout = domain.ErrShutdownTimeout

	// ErrContextCanceled is returned when a post is interrupted by its context.
	ErrContextCanceled = domain.ErrContextCanceled
)
