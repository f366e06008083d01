package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kairu/internal/audio"
	"kairu/internal/timer"
)

var end = time.Date(2025, 7, 25, 10, 0, 0, 0, time.UTC)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, s string) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(key(s))
	return updated.(Model), cmd
}

// collect runs cmd and returns the messages it produces, expanding batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func newModel(record RecordFunc) Model {
	return New(Options{
		Timer:   timer.Options{DefaultMinutes: 1, MinMinutes: 1, MaxMinutes: 60, BreakSeconds: 3},
		Catalog: audio.DefaultCatalog(),
		Record:  record,
		Now:     func() time.Time { return end },
	})
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{0: "00:00", 59: "00:59", 1500: "25:00", 3599: "59:59", -3: "00:00"}
	for seconds, want := range tests {
		if got := FormatClock(seconds); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", seconds, got, want)
		}
	}
}

func TestStartTicksAndRecordsSession(t *testing.T) {
	var recorded []int
	m := newModel(func(_ context.Context, minutes int, at time.Time) error {
		if !at.Equal(end) {
			t.Errorf("recorded end = %v, want %v", at, end)
		}
		recorded = append(recorded, minutes)
		return nil
	})

	m, cmd := press(t, m, "s")
	if cmd == nil {
		t.Fatal("start should schedule a tick")
	}
	if !m.engine.State().Running {
		t.Fatal("engine should be running after start")
	}

	var last tea.Cmd
	for i := 0; i < 60; i++ {
		updated, c := m.Update(tickMsg{gen: m.gen})
		m = updated.(Model)
		last = c
	}

	state := m.engine.State()
	if state.Phase != timer.PhaseBreak || state.Running || state.RemainingSeconds != 3 {
		t.Fatalf("expected waiting break, got %+v", state)
	}
	if !strings.Contains(m.status, "Focus Session Complete!") {
		t.Errorf("status = %q", m.status)
	}

	msgs := collect(last)
	if len(msgs) != 1 {
		t.Fatalf("expected only the record command after completion, got %d msgs", len(msgs))
	}
	updated, _ := m.Update(msgs[0])
	m = updated.(Model)
	if len(recorded) != 1 || recorded[0] != 1 {
		t.Fatalf("recorded = %v, want [1]", recorded)
	}
	if m.sessions != 1 {
		t.Errorf("sessions = %d, want 1", m.sessions)
	}
}

func TestProgressBarFillsDuringFocus(t *testing.T) {
	m := New(Options{Timer: timer.Options{DefaultMinutes: 5, MinMinutes: 1, MaxMinutes: 60, BreakSeconds: 60}})
	m, _ = press(t, m, "s")

	for i := 0; i < 150; i++ {
		updated, _ := m.Update(tickMsg{gen: m.gen})
		m = updated.(Model)
	}

	state := m.engine.State()
	if state.RemainingSeconds != 150 {
		t.Fatalf("remaining = %d, want 150", state.RemainingSeconds)
	}
	bar := progressBar(state.Progress(), barWidth)
	if filled := strings.Count(bar, "█"); filled != barWidth/2 {
		t.Fatalf("filled cells = %d, want %d (bar %q)", filled, barWidth/2, bar)
	}
	if !strings.Contains(m.View(), bar) {
		t.Errorf("view should contain the half-filled bar:\n%s", m.View())
	}
}

func TestProgressBarBounds(t *testing.T) {
	tests := []struct {
		progress float64
		filled   int
	}{
		{0, 0},
		{0.25, 2},
		{1, 10},
		{1.5, 10},
		{-0.2, 0},
	}
	for _, tt := range tests {
		bar := progressBar(tt.progress, 10)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("progressBar(%v) filled %d, want %d", tt.progress, got, tt.filled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 10 {
			t.Errorf("progressBar(%v) has %d cells, want 10", tt.progress, got)
		}
	}
}

func TestRecordFailureIsShown(t *testing.T) {
	m := newModel(nil)
	updated, _ := m.Update(recordedMsg{minutes: 25, err: errors.New("disk full")})
	m = updated.(Model)
	if !strings.Contains(m.View(), "could not save session: disk full") {
		t.Errorf("view should show record error:\n%s", m.View())
	}
	if m.sessions != 0 {
		t.Errorf("sessions = %d, want 0", m.sessions)
	}
}

func TestPauseIgnoresStaleTicks(t *testing.T) {
	m := newModel(nil)
	m, _ = press(t, m, "s")
	staleGen := m.gen

	updated, _ := m.Update(tickMsg{gen: staleGen})
	m = updated.(Model)
	if got := m.engine.State().RemainingSeconds; got != 59 {
		t.Fatalf("remaining = %d, want 59", got)
	}

	m, _ = press(t, m, "p")
	updated, cmd := m.Update(tickMsg{gen: staleGen})
	m = updated.(Model)
	if cmd != nil {
		t.Error("stale tick should not reschedule")
	}
	if got := m.engine.State().RemainingSeconds; got != 59 {
		t.Fatalf("remaining after stale tick = %d, want 59", got)
	}

	m, cmd = press(t, m, "s")
	if cmd == nil || m.gen == staleGen {
		t.Fatal("resume should schedule a fresh tick generation")
	}
}

func TestDurationKeys(t *testing.T) {
	m := newModel(nil)

	m, _ = press(t, m, "+")
	if got := m.engine.State().FocusMinutes; got != 6 {
		t.Fatalf("focus minutes = %d, want 6", got)
	}
	m, _ = press(t, m, "-")
	m, _ = press(t, m, "-")
	if got := m.engine.State().FocusMinutes; got != 1 {
		t.Fatalf("focus minutes = %d, want clamped 1", got)
	}

	m, _ = press(t, m, "s")
	m, _ = press(t, m, "+")
	if got := m.engine.State().FocusMinutes; got != 1 {
		t.Fatalf("duration changed while running: %d", got)
	}
	if !strings.Contains(m.status, "Pause or reset") {
		t.Errorf("status = %q", m.status)
	}

	m, _ = press(t, m, "r")
	state := m.engine.State()
	if state.Running || state.RemainingSeconds != 60 {
		t.Fatalf("expected reset timer, got %+v", state)
	}
}

func TestMusicKeys(t *testing.T) {
	m := newModel(nil)

	m, _ = press(t, m, "m")
	if got := m.player.Status(); got != audio.StatusPlaying {
		t.Fatalf("player status = %s, want playing", got)
	}
	if id := m.player.Snapshot().Track.ID; id != m.catalog.Tracks[0].ID {
		t.Fatalf("playing %q, want first track", id)
	}

	m, _ = press(t, m, "n")
	if id := m.player.Snapshot().Track.ID; id != m.catalog.Tracks[1].ID {
		t.Fatalf("playing %q after next, want second track", id)
	}

	m, _ = press(t, m, "m")
	if got := m.player.Status(); got != audio.StatusPaused {
		t.Fatalf("player status = %s, want paused", got)
	}

	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should produce tea.QuitMsg")
	}
}
