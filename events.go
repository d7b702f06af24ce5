package imgship

import "time"

// State represents the lifecycle state of an Imgship instance.
type State int

const (
	// StateStopped means the instance is not running.
	StateStopped State = iota

	// StateStarting means plugins are being initialized.
	StateStarting

	// StateRunning means the instance is running.
	StateRunning

	// StateStopping means a graceful shutdown is in progress.
	StateStopping

	// StateCrashed means the instance failed to start or stop cleanly.
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

// CanStart reports whether Start is allowed from this state.
func (s State) CanStart() bool {
	return s == StateStopped || s == StateCrashed
}

// CanStop reports whether Stop is allowed from this state.
func (s State) CanStop() bool {
	return s == StateRunning || s == StateStarting
}

// IsRunning reports whether the instance is fully running.
func (s State) IsRunning() bool {
	return s == StateRunning
}

// Phase represents one stage of a post invocation as it moves from raw
// input to delivered message.
type Phase int

const (
	// PhaseIdle means the invocation has not started work yet.
	PhaseIdle Phase = iota

	// PhaseNormalizing means input is being converted to images.
	PhaseNormalizing

	// PhaseEncoding means images are being staged as PNG attachments.
	PhaseEncoding

	// PhaseDelivering means delivery groups are being sent, in order.
	PhaseDelivering

	// PhaseDone means every group was delivered.
	PhaseDone

	// PhaseFailed means the invocation stopped at the first error.
	PhaseFailed
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseNormalizing:
		return "Normalizing"
	case PhaseEncoding:
		return "Encoding"
	case PhaseDelivering:
		return "Delivering"
	case PhaseDone:
		return "Done"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// StateChangeEvent is emitted when the lifecycle state changes.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// PhaseChangeEvent is emitted when a post invocation enters a new phase.
type PhaseChangeEvent struct {
	Previous Phase
	Current  Phase
	Reason   string
}

// GroupSentEvent is emitted after a delivery group is accepted by the
// webhook endpoint. Group is 1-based; Groups is the total for the post.
type GroupSentEvent struct {
	Group    int
	Groups   int
	Files    int
	Bytes    int
	Duration time.Duration
}

// GroupErrorEvent is emitted when a delivery group fails. Later groups
// of the same post are never attempted.
type GroupErrorEvent struct {
	Err    error
	Group  int
	Groups int
	Files  int
}

// EventHandler receives notifications about imgship operations.
// Handlers are called synchronously from the posting goroutine and
// should return quickly to avoid blocking delivery.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnPhaseChange(event PhaseChangeEvent)
	OnGroupSent(event GroupSentEvent)
	OnGroupError(event GroupErrorEvent)
}

// BaseEventHandler provides no-op implementations of all EventHandler
// methods. Embed it to implement only the events you care about.
type BaseEventHandler struct{}

// OnStateChange is a no-op.
func (BaseEventHandler) OnStateChange(event StateChangeEvent) {}

// OnPhaseChange is a no-op.
func (BaseEventHandler) OnPhaseChange(event PhaseChangeEvent) {}

// OnGroupSent is a no-op.
func (BaseEventHandler) OnGroupSent(event GroupSentEvent) {}

// OnGroupError is a no-op.
func (BaseEventHandler) OnGroupError(event GroupErrorEvent) {}
