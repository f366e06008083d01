package timer

import (
	"errors"
	"testing"
)

func recordingEngine(options Options) (*Engine, *[]Event) {
	var events []Event
	options.OnEvent = func(e Event) { events = append(events, e) }
	return NewEngine(options), &events
}

func TestNewEngineDefaults(t *testing.T) {
	engine := NewEngine(Options{})
	state := engine.State()
	if state.Phase != PhaseFocus || state.Running {
		t.Fatalf("unexpected initial state: %+v", state)
	}
	if state.FocusMinutes != 25 || state.DurationSeconds != 1500 || state.RemainingSeconds != 1500 {
		t.Fatalf("expected 25 minute default, got %+v", state)
	}
}

func TestSetDurationInRange(t *testing.T) {
	engine := NewEngine(Options{})
	for minutes := DefaultMinMinutes; minutes <= DefaultMaxMinutes; minutes++ {
		state, err := engine.SetDuration(minutes)
		if err != nil {
			t.Fatalf("set %d: %v", minutes, err)
		}
		if state.DurationSeconds != minutes*60 || state.RemainingSeconds != minutes*60 {
			t.Fatalf("set %d: got %+v", minutes, state)
		}
	}
}

func TestSetDurationClampsOutOfRange(t *testing.T) {
	engine := NewEngine(Options{})
	tests := []struct {
		minutes int
		want    int
	}{
		{minutes: 1, want: 5},
		{minutes: -3, want: 5},
		{minutes: 61, want: 60},
		{minutes: 240, want: 60},
	}
	for _, tt := range tests {
		state, err := engine.SetDuration(tt.minutes)
		if err != nil {
			t.Fatalf("set %d: %v", tt.minutes, err)
		}
		if state.FocusMinutes != tt.want || state.RemainingSeconds != tt.want*60 {
			t.Fatalf("set %d: expected %d minutes, got %+v", tt.minutes, tt.want, state)
		}
	}
}

func TestSetDurationRejectedWhileRunning(t *testing.T) {
	engine := NewEngine(Options{})
	engine.Start()
	engine.Tick()

	before := engine.State()
	state, err := engine.SetDuration(10)
	if !errors.Is(err, ErrRunning) {
		t.Fatalf("expected ErrRunning, got %v", err)
	}
	if state != before || engine.State() != before {
		t.Fatalf("state changed on rejected SetDuration: %+v -> %+v", before, engine.State())
	}
}

func TestSetDurationDuringBreakReturnsToFocus(t *testing.T) {
	engine := NewEngine(Options{BreakSeconds: 2, MinMinutes: 1, DefaultMinutes: 1})
	engine.Start()
	for i := 0; i < 60; i++ {
		engine.Tick()
	}
	if engine.State().Phase != PhaseBreak {
		t.Fatalf("expected break, got %+v", engine.State())
	}

	state, err := engine.SetDuration(15)
	if err != nil {
		t.Fatalf("set duration: %v", err)
	}
	if state.Phase != PhaseFocus || state.RemainingSeconds != 900 {
		t.Fatalf("expected fresh 15 minute focus, got %+v", state)
	}
}

func TestFullFocusSessionEmitsOnce(t *testing.T) {
	engine, events := recordingEngine(Options{})
	if _, err := engine.SetDuration(25); err != nil {
		t.Fatalf("set duration: %v", err)
	}
	engine.Start()

	zeroes := 0
	for i := 0; i < 1500; i++ {
		before := engine.State().RemainingSeconds
		state := engine.Tick()
		if before == 1 && state.Phase == PhaseBreak {
			zeroes++
		}
	}

	if zeroes != 1 {
		t.Fatalf("expected countdown to reach zero once, got %d", zeroes)
	}
	if len(*events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(*events))
	}
	event := (*events)[0]
	if event.Type != EventSessionCompleted || event.DurationMinutes != 25 {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Notification.Title != "Focus Session Complete!" ||
		event.Notification.Body != "Great job! You focused for 25 minutes. Time for a break." {
		t.Fatalf("unexpected notification: %+v", event.Notification)
	}

	state := engine.State()
	if state.Phase != PhaseBreak || state.RemainingSeconds != 300 || state.DurationSeconds != 300 || state.Running {
		t.Fatalf("expected stopped 300s break, got %+v", state)
	}

	// Further ticks are no-ops until an explicit Start.
	for i := 0; i < 10; i++ {
		engine.Tick()
	}
	if engine.State().RemainingSeconds != 300 || len(*events) != 1 {
		t.Fatalf("expected engine to wait for Start, got %+v", engine.State())
	}
}

func TestBreakCompletionReturnsToFocus(t *testing.T) {
	engine, events := recordingEngine(Options{DefaultMinutes: 5, BreakSeconds: 3})
	engine.Start()
	for i := 0; i < 300; i++ {
		engine.Tick()
	}
	engine.Start()
	for i := 0; i < 3; i++ {
		engine.Tick()
	}

	if len(*events) != 2 || (*events)[1].Type != EventBreakCompleted {
		t.Fatalf("expected session then break events, got %+v", *events)
	}
	if (*events)[1].Notification.Title != "Break Complete!" {
		t.Fatalf("unexpected break notification: %+v", (*events)[1].Notification)
	}
	state := engine.State()
	if state.Phase != PhaseFocus || state.RemainingSeconds != 300 || state.Running {
		t.Fatalf("expected stopped 5 minute focus, got %+v", state)
	}
}

func TestAutoContinueChainsPhases(t *testing.T) {
	engine, events := recordingEngine(Options{DefaultMinutes: 5, BreakSeconds: 2, AutoContinue: true})
	engine.Start()
	for i := 0; i < 302; i++ {
		engine.Tick()
	}
	state := engine.State()
	if len(*events) != 2 || state.Phase != PhaseFocus || !state.Running {
		t.Fatalf("expected auto-continued focus after two events, got %+v events=%d", state, len(*events))
	}
}

func TestPauseFreezesCountdown(t *testing.T) {
	engine := NewEngine(Options{})
	engine.Start()
	for i := 0; i < 10; i++ {
		engine.Tick()
	}
	engine.Pause()
	engine.Pause()

	remaining := engine.State().RemainingSeconds
	for i := 0; i < 100; i++ {
		engine.Tick()
	}
	if got := engine.State().RemainingSeconds; got != remaining {
		t.Fatalf("expected remaining %d while paused, got %d", remaining, got)
	}
}

func TestStartNoOpWhenRunning(t *testing.T) {
	engine := NewEngine(Options{})
	first := engine.Start()
	second := engine.Start()
	if !first.Running || first != second {
		t.Fatalf("expected second Start to change nothing: %+v %+v", first, second)
	}
}

func TestResetFromAnyState(t *testing.T) {
	engine := NewEngine(Options{DefaultMinutes: 10, BreakSeconds: 5})

	check := func(label string) {
		t.Helper()
		state := engine.Reset()
		if state.Phase != PhaseFocus || state.Running || state.RemainingSeconds != 600 || state.DurationSeconds != 600 {
			t.Fatalf("%s: unexpected reset state %+v", label, state)
		}
	}

	check("idle")

	engine.Start()
	engine.Tick()
	check("running")

	engine.Start()
	for i := 0; i < 600; i++ {
		engine.Tick()
	}
	engine.Start()
	engine.Tick()
	check("break")
}

func TestProgress(t *testing.T) {
	engine := NewEngine(Options{DefaultMinutes: 5})
	if engine.Progress() != 0 {
		t.Fatalf("expected 0 progress, got %v", engine.Progress())
	}
	engine.Start()
	for i := 0; i < 150; i++ {
		engine.Tick()
	}
	if engine.Progress() != 0.5 {
		t.Fatalf("expected half progress, got %v", engine.Progress())
	}
	if (State{}).Progress() != 0 {
		t.Fatal("expected zero-duration progress to be 0")
	}
}
