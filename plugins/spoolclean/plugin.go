// Package spoolclean provides automatic cleanup of orphaned spool
// directories for imgship. A healthy run removes its staging directory
// as soon as delivery finishes; a crashed run can leave one behind.
// When enabled, this plugin periodically scans the spool parent and
// removes stale leftovers.
package spoolclean

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/imgship/imgship"
)

// spoolPrefix marks staging directories. Must match the prefix the
// host's spooler uses when creating them.
const spoolPrefix = "imgship-"

// Plugin implements spool cleanup functionality. It periodically scans
// the spool parent directory and removes imgship staging directories
// older than the configured age.
type Plugin struct {
	mu sync.RWMutex

	// Configuration
	checkInterval  time.Duration
	maxAge         time.Duration
	runImmediately bool

	// Runtime state
	spoolDir string
	logger   imgship.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// Config holds configuration options for the spool cleanup plugin.
type Config struct {
	// CheckInterval is how often to scan for stale spool directories.
	// Default: 1 hour
	CheckInterval time.Duration

	// MaxAge is how old a spool directory must be before it is removed.
	// Default: 24 hours
	MaxAge time.Duration

	// RunImmediately if true, runs a cleanup scan on startup.
	// Default: true
	RunImmediately bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CheckInterval:  time.Hour,
		MaxAge:         24 * time.Hour,
		RunImmediately: true,
	}
}

// New creates a new spool cleanup plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Hour
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 24 * time.Hour
	}

	return &Plugin{
		checkInterval:  cfg.CheckInterval,
		maxAge:         cfg.MaxAge,
		runImmediately: cfg.RunImmediately,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "spoolclean"
}

// Initialize sets up the plugin and starts the cleanup loop.
func (p *Plugin) Initialize(ctx context.Context, cfg imgship.PluginConfig) error {
	p.mu.Lock()
	p.spoolDir = cfg.SpoolDir
	if p.spoolDir == "" {
		p.spoolDir = os.TempDir()
	}
	p.logger = cfg.Logger
	p.mu.Unlock()

	// Create cancellable context for the cleanup loop
	cleanupCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("Spool cleanup plugin initialized")

	// Start cleanup loop
	p.wg.Add(1)
	go p.cleanupLoop(cleanupCtx)

	return nil
}

// Shutdown stops the cleanup loop.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

// cleanupLoop runs periodic cleanup scans.
func (p *Plugin) cleanupLoop(ctx context.Context) {
	defer p.wg.Done()

	if p.runImmediately {
		p.cleanupOnce(ctx)
	}

	ticker := time.NewTicker(p.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.cleanupOnce(ctx)
		}
	}
}

// cleanupOnce performs a single cleanup scan.
func (p *Plugin) cleanupOnce(ctx context.Context) {
	p.mu.RLock()
	dir := p.spoolDir
	p.mu.RUnlock()

	stale, err := staleSpools(dir, time.Now().Add(-p.maxAge))
	if err != nil {
		p.logger.Error("Spool cleanup: scan failed")
		return
	}

	removed := 0
	for _, path := range stale {
		if ctx.Err() != nil {
			return
		}
		if err := os.RemoveAll(path); err != nil {
			p.logger.Error("Spool cleanup: remove failed")
			continue
		}
		removed++
	}

	if removed > 0 {
		p.logger.Info("Spool cleanup completed")
	}
}

// staleSpools lists spool directories under dir last modified before cutoff.
func staleSpools(dir string, cutoff time.Time) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var stale []string
	for _, e := range ents {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), spoolPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			stale = append(stale, filepath.Join(dir, e.Name()))
		}
	}
	return stale, nil
}

// Ensure Plugin implements imgship.Plugin.
var _ imgship.Plugin = (*Plugin)(nil)
