package domain

import "errors"

// Domain errors represent error conditions in the imgship domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrWebhookURLMissing is returned when no webhook URL is configured.
	ErrWebhookURLMissing = errors.New("imgship: webhook URL missing")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("imgship: invalid configuration")

	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("imgship: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("imgship: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("imgship: shutdown timeout")

	// ErrContextCanceled is returned when the operation context is canceled
	// between delivery groups.
	ErrContextCanceled = errors.New("imgship: context canceled")
)
