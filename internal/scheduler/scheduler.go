// Package scheduler multiplexes a shared per-frame time budget across
// concurrently displayed storm animations. It is the engine's only stateful
// component: one Scheduler per visualization session, mutated only through
// its methods, cleared on teardown. There is no internal ticking — the host's
// render loop drives it and consults the FPS policy.
package scheduler

import (
	"log/slog"
	"sync"

	"github.com/couchcryptid/storm-track-viz/internal/observability"
)

// State is a storm animation's lifecycle stage.
type State int

const (
	Idle State = iota
	Queued
	Active
	Done
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Queued:
		return "queued"
	case Active:
		return "active"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// DefaultMaxConcurrent is the animation concurrency cap when none is
// configured.
const DefaultMaxConcurrent = 5

// FPS targets: full rate with a few storms animating, halved beyond that so
// the frame budget stretches.
const (
	fullRateFPS    = 60
	reducedRateFPS = 30
	fullRateStorms = 3
)

// TargetFPS is the frame-rate policy as a pure function of the number of
// concurrently active animations. The render loop consults it; the
// scheduler never enforces it.
func TargetFPS(activeCount int) int {
	if activeCount <= fullRateStorms {
		return fullRateFPS
	}
	return reducedRateFPS
}

type queuedAnimation struct {
	id    string
	start func()
}

// Scheduler runs the per-storm animation state machine with a FIFO queue
// capped at a maximum concurrency. Misuse (re-requesting an active id,
// completing or cancelling an unknown id) is defined as a no-op.
type Scheduler struct {
	mu            sync.Mutex
	maxConcurrent int
	active        map[string]struct{}
	queue         []queuedAnimation
	states        map[string]State

	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Scheduler. A non-positive maxConcurrent falls back to the
// default of 5.
func New(maxConcurrent int, logger *slog.Logger, metrics *observability.Metrics) *Scheduler {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Scheduler{
		maxConcurrent: maxConcurrent,
		active:        make(map[string]struct{}),
		states:        make(map[string]State),
		logger:        logger,
		metrics:       metrics,
	}
}

// Request asks to start the animation for id. Under the concurrency cap the
// id goes straight to Active and start runs before Request returns;
// otherwise the id is queued FIFO. The return value is the grant: true when
// the id is animating now (including when it already was).
func (s *Scheduler) Request(id string, start func()) bool {
	s.mu.Lock()

	if _, isActive := s.active[id]; isActive {
		s.mu.Unlock()
		return true
	}
	if s.states[id] == Queued {
		s.mu.Unlock()
		return false
	}

	if len(s.active) < s.maxConcurrent {
		s.active[id] = struct{}{}
		s.states[id] = Active
		s.publishGauges()
		s.mu.Unlock()

		s.logger.Debug("animation started", "id", id)
		if start != nil {
			start()
		}
		return true
	}

	s.queue = append(s.queue, queuedAnimation{id: id, start: start})
	s.states[id] = Queued
	s.publishGauges()
	s.mu.Unlock()

	s.logger.Debug("animation queued", "id", id)
	return false
}

// Complete marks id's animation finished and promotes the oldest queued
// animation, if any, invoking its start function. Completing an id that is
// not active is a no-op (and still promotes nothing).
func (s *Scheduler) Complete(id string) {
	s.mu.Lock()

	if _, isActive := s.active[id]; !isActive {
		s.mu.Unlock()
		return
	}
	delete(s.active, id)
	s.states[id] = Done

	var promoted *queuedAnimation
	if len(s.queue) > 0 && len(s.active) < s.maxConcurrent {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.active[next.id] = struct{}{}
		s.states[next.id] = Active
		promoted = &next
	}
	s.publishGauges()
	s.mu.Unlock()

	s.logger.Debug("animation completed", "id", id)
	if promoted != nil {
		s.logger.Debug("animation promoted", "id", promoted.id)
		if promoted.start != nil {
			promoted.start()
		}
	}
}

// Cancel removes id from the active set or the queue. It never promotes a
// queued animation — the caller still drives promotion through Complete.
// Cancelling an unknown id is a no-op.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, isActive := s.active[id]; isActive {
		delete(s.active, id)
		s.states[id] = Cancelled
		s.publishGauges()
		return
	}
	for i, q := range s.queue {
		if q.id == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			s.states[id] = Cancelled
			s.publishGauges()
			return
		}
	}
}

// StateOf reports the animation state for id; ids never seen are Idle.
func (s *Scheduler) StateOf(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[id]
}

// ActiveCount returns how many animations are running.
func (s *Scheduler) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// QueuedCount returns how many animations are waiting.
func (s *Scheduler) QueuedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// TargetFPS returns the frame-rate policy for the current active count.
func (s *Scheduler) TargetFPS() int {
	return TargetFPS(s.ActiveCount())
}

// Reset clears all animation state at session teardown.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = make(map[string]struct{})
	s.queue = nil
	s.states = make(map[string]State)
	s.publishGauges()
}

// publishGauges must be called with the mutex held.
func (s *Scheduler) publishGauges() {
	if s.metrics == nil {
		return
	}
	s.metrics.ActiveAnimations.Set(float64(len(s.active)))
	s.metrics.QueuedAnimations.Set(float64(len(s.queue)))
}
