package app

import (
	"context"
	"sync"
	"time"

	"github.com/imgship/imgship/internal/domain"
	"github.com/imgship/imgship/internal/ports"
)

// ShutdownTimeout is the maximum time Stop waits for plugins to finish
// their shutdown hooks before giving up.
const ShutdownTimeout = 30 * time.Second

// State represents the watch service lifecycle state.
type State int

const (
	// StateStopped means the service is not running.
	StateStopped State = iota

	// StateStarting means Start() was called and plugins are initializing.
	StateStarting

	// StateRunning means the service is watching and delivering.
	StateRunning

	// StateStopping means Stop() was called and shutdown is in progress.
	StateStopping

	// StateCrashed means the service failed to start or shut down cleanly.
	StateCrashed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// EventEmitter receives lifecycle state change notifications.
type EventEmitter interface {
	OnStateChange(oldState, newState State, reason string)
}

// validTransition reports whether moving from one state to another is
// allowed. Crashed is reachable from every active state; a crashed
// service may be started again.
func validTransition(from, to State) bool {
	switch from {
	case StateStopped:
		return to == StateStarting
	case StateStarting:
		return to == StateRunning || to == StateStopping || to == StateCrashed
	case StateRunning:
		return to == StateStopping || to == StateCrashed
	case StateStopping:
		return to == StateStopped || to == StateCrashed
	case StateCrashed:
		return to == StateStarting
	default:
		return false
	}
}

// Lifecycle guards the watch service state machine. All methods are
// safe for concurrent use.
type Lifecycle struct {
	mu           sync.RWMutex
	state        State
	cancel       context.CancelFunc
	logger       ports.Logger
	eventEmitter EventEmitter
}

// NewLifecycle creates a lifecycle in the stopped state.
func NewLifecycle(logger ports.Logger, emitter EventEmitter) *Lifecycle {
	return &Lifecycle{
		state:        StateStopped,
		logger:       logger,
		eventEmitter: emitter,
	}
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo attempts to move to a new state.
// Returns an error if the transition is not valid.
func (l *Lifecycle) TransitionTo(newState State, reason string) error {
	l.mu.Lock()
	oldState := l.state
	if !validTransition(oldState, newState) {
		l.mu.Unlock()
		if oldState == StateStopped || oldState == StateCrashed {
			return domain.ErrNotRunning
		}
		return domain.ErrAlreadyRunning
	}
	l.state = newState
	l.mu.Unlock()

	// Emit event outside of lock
	if l.eventEmitter != nil {
		l.eventEmitter.OnStateChange(oldState, newState, reason)
	}

	l.logger.Info("state transition",
		ports.String("from", oldState.String()),
		ports.String("to", newState.String()),
		ports.String("reason", reason),
	)

	return nil
}

// CanStart returns true if Start() can be called.
func (l *Lifecycle) CanStart() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateStopped || l.state == StateCrashed
}

// CanStop returns true if Stop() can be called.
func (l *Lifecycle) CanStop() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateRunning || l.state == StateStarting
}

// SetCancel stores the cancel function covering the service context.
func (l *Lifecycle) SetCancel(cancel context.CancelFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancel = cancel
}

// Cancel invokes the stored cancel function, if any.
func (l *Lifecycle) Cancel() {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// WaitWithTimeout waits for done to close, giving up after timeout.
// It returns domain.ErrShutdownTimeout on expiry.
func (l *Lifecycle) WaitWithTimeout(done <-chan struct{}, timeout time.Duration) error {
	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		l.logger.Warn("shutdown timed out",
			ports.Duration("timeout", timeout),
		)
		return domain.ErrShutdownTimeout
	}
}
