package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/imgship/imgship/internal/ports"
)

// Phase represents one stage of a post invocation.
type Phase int

const (
	// PhaseIdle means the invocation has not started work yet.
	PhaseIdle Phase = iota

	// PhaseNormalizing means tensor input is being converted to images.
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

// PostEventEmitter receives per-invocation progress notifications.
// Group indices are 1-based.
type PostEventEmitter interface {
	OnPhaseChange(oldPhase, newPhase Phase, reason string)
	OnGroupSent(group, groups, files, bytes int, duration time.Duration)
	OnGroupError(err error, group, groups, files int)
}

// validPhaseChange reports whether an invocation may move between two
// phases. The pipeline is linear; Failed is reachable from every
// non-terminal phase and both Done and Failed are terminal.
func validPhaseChange(from, to Phase) bool {
	if to == PhaseFailed {
		return from != PhaseDone && from != PhaseFailed
	}
	switch from {
	case PhaseIdle:
		return to == PhaseNormalizing
	case PhaseNormalizing:
		return to == PhaseEncoding
	case PhaseEncoding:
		return to == PhaseDelivering
	case PhaseDelivering:
		return to == PhaseDone
	default:
		return false
	}
}

// invocation tracks one post through its phases. Invocations share no
// state with each other; the ID ties an invocation's log lines and
// events together. An invocation lives on a single goroutine, so no
// locking is needed.
type invocation struct {
	id      string
	phase   Phase
	logger  ports.Logger
	emitter PostEventEmitter
}

func newInvocation(logger ports.Logger, emitter PostEventEmitter) *invocation {
	return &invocation{
		id:      uuid.New().String(),
		phase:   PhaseIdle,
		logger:  logger,
		emitter: emitter,
	}
}

// enter advances the invocation to the next phase. An invalid jump is a
// pipeline bug: it is logged and ignored rather than propagated.
func (inv *invocation) enter(next Phase, reason string) {
	if !validPhaseChange(inv.phase, next) {
		inv.logger.Error("invalid phase change",
			ports.String("invocation", inv.id),
			ports.String("from", inv.phase.String()),
			ports.String("to", next.String()),
		)
		return
	}

	old := inv.phase
	inv.phase = next

	if inv.emitter != nil {
		inv.emitter.OnPhaseChange(old, next, reason)
	}

	inv.logger.Debug("phase change",
		ports.String("invocation", inv.id),
		ports.String("from", old.String()),
		ports.String("to", next.String()),
		ports.String("reason", reason),
	)
}

// fail marks the invocation failed, carrying the error as the reason.
func (inv *invocation) fail(err error) {
	inv.enter(PhaseFailed, err.Error())
}

// finish marks the invocation done.
func (inv *invocation) finish() {
	inv.enter(PhaseDone, "all groups delivered")
}
