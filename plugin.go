package imgship

import "context"

// Plugin extends an Imgship instance with optional background behavior.
// Plugins are initialized in registration order when Start is called
// and shut down in reverse order on Stop.
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string

	// Initialize prepares the plugin and starts its background work.
	// The context is canceled when the host stops; long-running work
	// must watch it.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown releases plugin resources. The context carries the
	// shutdown deadline.
	Shutdown(ctx context.Context) error
}

// PluginConfig carries host configuration into plugin initialization.
type PluginConfig struct {
	// Host is the instance the plugin runs under. Plugins may post
	// through it.
	Host *Imgship

	// SpoolDir is the parent directory for attachment spools. Empty
	// means the system temp directory.
	SpoolDir string

	// StateDir is where plugins persist their own state. Empty means
	// the plugin picks its own location.
	StateDir string

	// Logger is the host logger.
	Logger Logger
}

// BasePlugin provides default no-op implementations of the Plugin
// methods. Embed it and override what you need.
type BasePlugin struct {
	name string
}

// NewBasePlugin creates a BasePlugin with the given name.
func NewBasePlugin(name string) BasePlugin {
	return BasePlugin{name: name}
}

// Name returns the plugin name.
func (p BasePlugin) Name() string { return p.name }

// Initialize is a no-op.
func (p BasePlugin) Initialize(ctx context.Context, cfg PluginConfig) error { return nil }

// Shutdown is a no-op.
func (p BasePlugin) Shutdown(ctx context.Context) error { return nil }
