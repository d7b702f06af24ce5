// Package dirwatch provides hot-folder delivery for imgship. When
// enabled, it watches a directory and posts image files through the
// host as they appear, journaling what it posted so restarts do not
// repost old files.
package dirwatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/imgship/imgship"
)

// DefaultDebounce is how long a file must stay quiet before it is posted.
// Renderers write frames incrementally; posting on the first write event
// would ship half a file.
const DefaultDebounce = 500 * time.Millisecond

// defaultExtensions lists the image types the watcher picks up.
var defaultExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// Plugin implements directory watching. It debounces file events per
// path, posts each settled file through the host, and records it in a
// journal keyed by name and modification time.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	dir        string
	debounce   time.Duration
	caption    string
	extensions map[string]bool

	// Runtime state
	host    *imgship.Imgship
	logger  imgship.Logger
	journal *journal
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	timers  map[string]*time.Timer
}

// Config holds configuration options for the directory watch plugin.
type Config struct {
	// Dir is the directory to watch. Empty disables the plugin.
	Dir string

	// Debounce is how long a file must stay quiet before it is posted.
	// Default: 500 milliseconds
	Debounce time.Duration

	// Caption is the message text posted with every file.
	Caption string

	// Extensions filters which files are posted, lowercase and
	// including the dot. Default: common image types.
	Extensions []string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Debounce: DefaultDebounce,
	}
}

// New creates a new directory watch plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = defaultExtensions
	}
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = true
	}

	return &Plugin{
		dir:        cfg.Dir,
		debounce:   cfg.Debounce,
		caption:    cfg.Caption,
		extensions: extSet,
		timers:     map[string]*time.Timer{},
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "dirwatch"
}

// Initialize sets up the plugin and starts the watch loop.
func (p *Plugin) Initialize(ctx context.Context, cfg imgship.PluginConfig) error {
	p.mu.Lock()
	p.host = cfg.Host
	p.logger = cfg.Logger
	p.mu.Unlock()

	if p.dir == "" {
		p.logger.Warn("Directory watch disabled: no directory configured")
		return nil
	}

	stateDir := cfg.StateDir
	if stateDir == "" {
		stateDir = p.dir
	}
	p.journal = newJournal(filepath.Join(stateDir, journalName))
	if err := p.journal.load(); err != nil {
		p.logger.Warn("Directory watch: journal unreadable, starting empty")
	}

	// Create cancellable context for the watch loop
	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("Directory watch plugin initialized")

	// Start watch loop
	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the watch loop.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.stopTimers()
	p.wg.Wait()
	return nil
}

// watchLoop watches for new or rewritten image files.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("Directory watch: failed to create watcher")
		return
	}
	defer watcher.Close()

	if err := watcher.Add(p.dir); err != nil {
		p.logger.Error("Directory watch: failed to watch directory")
		return
	}

	// Post files that landed while we were not running.
	p.scanExisting(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !p.wantsFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debouncePost(ctx, event.Name)

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("Directory watch: watcher error")
		}
	}
}

// scanExisting posts files already present in the directory, skipping
// anything journaled.
func (p *Plugin) scanExisting(ctx context.Context) {
	ents, err := os.ReadDir(p.dir)
	if err != nil {
		p.logger.Error("Directory watch: initial scan failed")
		return
	}
	for _, e := range ents {
		if ctx.Err() != nil {
			return
		}
		if e.IsDir() {
			continue
		}
		path := filepath.Join(p.dir, e.Name())
		if !p.wantsFile(path) {
			continue
		}
		p.postFile(ctx, path)
	}
}

// wantsFile reports whether the path has one of the watched extensions.
func (p *Plugin) wantsFile(path string) bool {
	return p.extensions[strings.ToLower(filepath.Ext(path))]
}

// debouncePost schedules the file for posting, pushing the timer back on
// every new event for the same path.
func (p *Plugin) debouncePost(ctx context.Context, path string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t, ok := p.timers[path]; ok {
		t.Stop()
	}
	p.timers[path] = time.AfterFunc(p.debounce, func() {
		p.mu.Lock()
		delete(p.timers, path)
		p.mu.Unlock()
		p.postFile(ctx, path)
	})
}

func (p *Plugin) stopTimers() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.timers {
		t.Stop()
	}
}

// postFile ships one file through the host and journals it on success.
func (p *Plugin) postFile(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		// Deleted between the event and the timer firing.
		return
	}
	if p.journal.posted(path, info.ModTime()) {
		return
	}

	if err := p.host.PostFiles(ctx, []string{path}, p.caption); err != nil {
		p.logger.Error("Directory watch: post failed")
		return
	}

	if err := p.journal.record(path, info.ModTime()); err != nil {
		p.logger.Warn("Directory watch: journal write failed")
	}
	p.logger.Info("Directory watch: posted file")
}

// Ensure Plugin implements imgship.Plugin.
var _ imgship.Plugin = (*Plugin)(nil)
