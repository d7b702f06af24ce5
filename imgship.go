package imgship

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/imgship/imgship/internal/adapters/discord"
	"github.com/imgship/imgship/internal/adapters/fs"
	logAdapter "github.com/imgship/imgship/internal/adapters/log"
	"github.com/imgship/imgship/internal/app"
	"github.com/imgship/imgship/internal/domain"
	"github.com/imgship/imgship/internal/ports"
	"github.com/imgship/imgship/pkg/tensor"
	"github.com/imgship/imgship/pkg/webhook"
)

// Imgship delivers images to a Discord webhook. It can be used one-shot
// via Post, PostImages, and PostFiles, or as a long-running service via
// Start and Stop when plugins are registered.
// Use New to create an instance.
type Imgship struct {
	config    Config
	lifecycle *app.Lifecycle
	poster    *app.Poster
	logger    ports.Logger
	plugins   []Plugin

	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates an Imgship instance with the given configuration.
// The instance is created in StateStopped. Posting does not require
// Start; Start only brings up registered plugins.
func New(cfg Config, opts ...Option) (*Imgship, error) {
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	o := defaultOptions(httpClient)
	for _, opt := range opts {
		opt(&o)
	}

	var logger ports.Logger
	if o.logger != nil {
		logger = o.logger
	} else {
		logger = logAdapter.NewNoopLogger()
	}

	var emitter eventEmitterWrapper
	if o.eventHandler != nil {
		emitter = eventEmitterWrapper{handler: o.eventHandler}
	}

	lifecycle := app.NewLifecycle(logger, &emitter)

	client := webhook.NewClient(cfg.WebhookURL,
		webhook.WithHTTPClient(o.httpClient),
		webhook.WithTimeout(cfg.HTTPTimeout),
	)
	sender := discord.NewMessageSender(client, logger)
	spooler := fs.NewTempDirSpooler(cfg.SpoolDir)
	encoder := fs.NewAttachmentEncoder(cfg.MaxFileBytes)

	poster := app.NewPoster(
		app.PosterConfig{GroupSize: cfg.GroupSize, DryRun: cfg.DryRun},
		sender, encoder, spooler, logger, &emitter,
	)

	return &Imgship{
		config:    cfg,
		lifecycle: lifecycle,
		poster:    poster,
		logger:    logger,
		plugins:   o.plugins,
	}, nil
}

// Post normalizes a tensor batch into images and delivers them in
// groups under the caption. A nil tensor posts the built-in test card.
// Post blocks until every group is delivered or the first group fails.
func (s *Imgship) Post(ctx context.Context, images tensor.Array, caption string) error {
	return s.poster.Post(ctx, images, caption)
}

// PostImages delivers already-decoded images in groups under the
// caption. An empty slice sends a caption-only message.
func (s *Imgship) PostImages(ctx context.Context, imgs []image.Image, caption string) error {
	return s.poster.PostImages(ctx, imgs, caption)
}

// PostFiles loads the given image files and delivers them in groups
// under the caption. Decoding failures abort before anything is sent.
func (s *Imgship) PostFiles(ctx context.Context, paths []string, caption string) error {
	imgs := make([]image.Image, 0, len(paths))
	for _, path := range paths {
		img, err := imaging.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		imgs = append(imgs, img)
	}
	return s.PostImages(ctx, imgs, caption)
}

// Start initializes registered plugins and moves the instance to
// StateRunning. It returns once every plugin is initialized; a plugin
// failure aborts startup and leaves the instance in StateCrashed.
// The provided context is the lifetime of the running instance.
func (s *Imgship) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}

	if err := s.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.ctx = runCtx
	s.cancel = cancel
	s.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{
		Host:     s,
		SpoolDir: s.config.SpoolDir,
		StateDir: s.config.StateDir,
		Logger:   s.logger,
	}
	for _, p := range s.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			s.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			_ = s.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		s.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	return s.lifecycle.TransitionTo(app.StateRunning, "plugins initialized")
}

// Stop gracefully shuts down the instance. Plugins are shut down in
// reverse registration order. Waits up to 30 seconds before giving up;
// returns nil on graceful shutdown, ErrShutdownTimeout if forced.
func (s *Imgship) Stop() error {
	s.mu.Lock()

	if !s.lifecycle.CanStop() {
		s.mu.Unlock()
		return domain.ErrNotRunning
	}

	if err := s.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		s.mu.Unlock()
		return err
	}

	if s.cancel != nil {
		s.cancel()
	}
	plugins := s.plugins

	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.ShutdownTimeout)
		defer cancel()

		for i := len(plugins) - 1; i >= 0; i-- {
			p := plugins[i]
			if err := p.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("plugin shutdown failed",
					ports.String("plugin", p.Name()),
					ports.Err(err))
			} else {
				s.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
			}
		}
	}()

	err := s.lifecycle.WaitWithTimeout(done, app.ShutdownTimeout)

	if err != nil {
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = s.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}

	return err
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (s *Imgship) Status() State {
	return convertState(s.lifecycle.State())
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnPhaseChange(previous, current app.Phase, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnPhaseChange(PhaseChangeEvent{
		Previous: convertPhase(previous),
		Current:  convertPhase(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnGroupSent(group, groups, files, bytes int, duration time.Duration) {
	if e.handler == nil {
		return
	}
	e.handler.OnGroupSent(GroupSentEvent{
		Group:    group,
		Groups:   groups,
		Files:    files,
		Bytes:    bytes,
		Duration: duration,
	})
}

func (e *eventEmitterWrapper) OnGroupError(err error, group, groups, files int) {
	if e.handler == nil {
		return
	}
	e.handler.OnGroupError(GroupErrorEvent{
		Err:    err,
		Group:  group,
		Groups: groups,
		Files:  files,
	})
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}

func convertPhase(p app.Phase) Phase {
	switch p {
	case app.PhaseIdle:
		return PhaseIdle
	case app.PhaseNormalizing:
		return PhaseNormalizing
	case app.PhaseEncoding:
		return PhaseEncoding
	case app.PhaseDelivering:
		return PhaseDelivering
	case app.PhaseDone:
		return PhaseDone
	case app.PhaseFailed:
		return PhaseFailed
	default:
		return PhaseIdle
	}
}

// validateModuleVersions checks that all sub-module versions are compatible.
// Returns an error if any module version is below its minimum compatible version.
func validateModuleVersions() error {
	versions := ModuleVersions()
	matrix := CompatibilityMatrix()

	for name, version := range versions {
		if !isVersionCompatible(version, matrix[name]) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, version, matrix[name])
		}
	}

	return nil
}

// isVersionCompatible checks if version >= minVersion using semantic versioning.
// Assumes versions are in format "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
