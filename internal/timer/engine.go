// Package timer implements the focus/break countdown and its binding to the
// ticking service.
package timer

import (
	"errors"
	"sync"
)

// ErrRunning is returned when the duration is changed while counting down.
var ErrRunning = errors.New("timer is running")

const (
	DefaultFocusMinutes = 25
	DefaultMinMinutes   = 5
	DefaultMaxMinutes   = 60
	DefaultBreakSeconds = 300
)

// Options configures an Engine. Zero values take the package defaults.
type Options struct {
	DefaultMinutes int
	MinMinutes     int
	MaxMinutes     int
	BreakSeconds   int
	// AutoContinue starts the next phase immediately instead of waiting for
	// an explicit Start.
	AutoContinue bool
	// OnEvent receives completion events. It is called without the engine
	// lock held; its failures never affect timer state.
	OnEvent func(Event)
}

// State is a snapshot of the engine.
type State struct {
	Phase            Phase `json:"phase"`
	DurationSeconds  int   `json:"durationSeconds"`
	RemainingSeconds int   `json:"remainingSeconds"`
	Running          bool  `json:"running"`
	FocusMinutes     int   `json:"focusMinutes"`
}

// Progress is the elapsed fraction of the current phase, in [0, 1].
func (s State) Progress() float64 {
	if s.DurationSeconds <= 0 {
		return 0
	}
	progress := float64(s.DurationSeconds-s.RemainingSeconds) / float64(s.DurationSeconds)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Engine is the focus/break state machine. It does not keep time itself;
// something calls Tick once per second while it runs.
type Engine struct {
	mu      sync.Mutex
	options Options
	state   State
}

// NewEngine returns an idle engine at the start of a focus phase.
func NewEngine(options Options) *Engine {
	if options.MinMinutes <= 0 {
		options.MinMinutes = DefaultMinMinutes
	}
	if options.MaxMinutes <= 0 {
		options.MaxMinutes = DefaultMaxMinutes
	}
	if options.MaxMinutes < options.MinMinutes {
		options.MaxMinutes = options.MinMinutes
	}
	if options.DefaultMinutes <= 0 {
		options.DefaultMinutes = DefaultFocusMinutes
	}
	if options.BreakSeconds <= 0 {
		options.BreakSeconds = DefaultBreakSeconds
	}

	engine := &Engine{options: options}
	engine.state.FocusMinutes = engine.clamp(options.DefaultMinutes)
	engine.resetLocked()
	return engine
}

func (e *Engine) clamp(minutes int) int {
	if minutes < e.options.MinMinutes {
		return e.options.MinMinutes
	}
	if minutes > e.options.MaxMinutes {
		return e.options.MaxMinutes
	}
	return minutes
}

func (e *Engine) resetLocked() {
	e.state.Running = false
	e.state.Phase = PhaseFocus
	e.state.DurationSeconds = e.state.FocusMinutes * 60
	e.state.RemainingSeconds = e.state.DurationSeconds
}

// SetDuration selects the focus length. Out-of-range values are clamped.
// It always returns to a fresh focus phase and is rejected while running.
func (e *Engine) SetDuration(minutes int) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Running {
		return e.state, ErrRunning
	}
	e.state.FocusMinutes = e.clamp(minutes)
	e.resetLocked()
	return e.state, nil
}

// Start resumes the countdown. It does nothing when no time remains.
func (e *Engine) Start() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.RemainingSeconds > 0 {
		e.state.Running = true
	}
	return e.state
}

// Pause stops the countdown, keeping the remaining time.
func (e *Engine) Pause() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Running = false
	return e.state
}

// Reset returns to a fresh, idle focus phase.
func (e *Engine) Reset() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetLocked()
	return e.state
}

// Tick advances the countdown by one second.
func (e *Engine) Tick() State {
	e.mu.Lock()
	if !e.state.Running {
		state := e.state
		e.mu.Unlock()
		return state
	}

	if e.state.RemainingSeconds > 0 {
		e.state.RemainingSeconds--
	}
	if e.state.RemainingSeconds > 0 {
		state := e.state
		e.mu.Unlock()
		return state
	}

	var event Event
	e.state.Running = false
	switch e.state.Phase {
	case PhaseFocus:
		event = sessionCompleted(e.state.DurationSeconds / 60)
		e.state.Phase = PhaseBreak
		e.state.DurationSeconds = e.options.BreakSeconds
	default:
		event = breakCompleted()
		e.state.Phase = PhaseFocus
		e.state.DurationSeconds = e.state.FocusMinutes * 60
	}
	e.state.RemainingSeconds = e.state.DurationSeconds
	if e.options.AutoContinue {
		e.state.Running = true
	}
	state := e.state
	onEvent := e.options.OnEvent
	e.mu.Unlock()

	if onEvent != nil {
		onEvent(event)
	}
	return state
}

// State returns a snapshot of the timer.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Progress is the completed fraction of the current phase.
func (e *Engine) Progress() float64 {
	return e.State().Progress()
}
