// Package tui is the terminal focus timer. It drives a timer.Engine from
// bubbletea ticks and records completed focus sessions.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kairu/internal/audio"
	"kairu/internal/timer"
)

const (
	durationStep = 5
	barWidth     = 30
)

// RecordFunc persists a completed focus session of minutes ending at end.
type RecordFunc func(ctx context.Context, minutes int, end time.Time) error

type Options struct {
	Timer   timer.Options
	Player  *audio.Player
	Catalog audio.Catalog
	Record  RecordFunc
	Now     func() time.Time
}

type tickMsg struct {
	gen int
}

type recordedMsg struct {
	minutes int
	err     error
}

// events collects engine events raised during a single Update.
type events struct {
	pending []timer.Event
}

type Model struct {
	engine  *timer.Engine
	events  *events
	player  *audio.Player
	catalog audio.Catalog
	record  RecordFunc
	now     func() time.Time

	gen      int
	track    int
	status   string
	errText  string
	sessions int
	width    int
	quitting bool
}

func New(options Options) Model {
	buf := &events{}
	timerOptions := options.Timer
	timerOptions.OnEvent = func(event timer.Event) {
		buf.pending = append(buf.pending, event)
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Player == nil {
		options.Player = audio.NewPlayer(audio.SilentBackend{})
	}
	return Model{
		engine:  timer.NewEngine(timerOptions),
		events:  buf,
		player:  options.Player,
		catalog: options.Catalog,
		record:  options.Record,
		now:     options.Now,
		status:  "Press s to start focusing",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m Model) recordCmd(minutes int, end time.Time) tea.Cmd {
	if m.record == nil {
		return nil
	}
	record := m.record
	return func() tea.Msg {
		return recordedMsg{minutes: minutes, err: record(context.Background(), minutes, end)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		state := m.engine.Tick()
		cmds := m.drainEvents()
		if state.Running {
			cmds = append(cmds, tickCmd(m.gen))
		}
		return m, tea.Batch(cmds...)

	case recordedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("could not save session: %v", msg.err)
			return m, nil
		}
		m.sessions++
		m.errText = ""
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.player.Pause()
		return m, tea.Quit

	case "s", " ":
		if m.engine.State().Running {
			m.engine.Pause()
			m.gen++
			m.status = "Paused"
			return m, nil
		}
		state := m.engine.Start()
		if !state.Running {
			return m, nil
		}
		m.gen++
		m.status = phaseLabel(state.Phase)
		return m, tickCmd(m.gen)

	case "p":
		m.engine.Pause()
		m.gen++
		m.status = "Paused"
		return m, nil

	case "r":
		m.engine.Reset()
		m.gen++
		m.status = "Reset"
		return m, nil

	case "+", "=":
		m.adjustDuration(durationStep)
		return m, nil

	case "-", "_":
		m.adjustDuration(-durationStep)
		return m, nil

	case "m":
		m.toggleMusic()
		return m, nil

	case "n":
		m.nextTrack()
		return m, nil
	}
	return m, nil
}

func (m *Model) adjustDuration(delta int) {
	state, err := m.engine.SetDuration(m.engine.State().FocusMinutes + delta)
	if err != nil {
		m.status = "Pause or reset before changing the duration"
		return
	}
	m.status = fmt.Sprintf("Focus length %d min", state.FocusMinutes)
}

func (m *Model) toggleMusic() {
	if len(m.catalog.Tracks) == 0 {
		return
	}
	if !m.player.Select(m.catalog.Tracks[m.track]) {
		m.errText = "audio unavailable"
		return
	}
	m.errText = ""
}

func (m *Model) nextTrack() {
	if len(m.catalog.Tracks) == 0 {
		return
	}
	m.track = (m.track + 1) % len(m.catalog.Tracks)
	if m.player.Status() == audio.StatusPlaying {
		m.toggleMusic()
	}
}

func (m *Model) drainEvents() []tea.Cmd {
	pending := m.events.pending
	m.events.pending = nil

	var cmds []tea.Cmd
	for _, event := range pending {
		m.status = event.Notification.Title + " " + event.Notification.Body
		if event.Type == timer.EventSessionCompleted {
			if cmd := m.recordCmd(event.DurationMinutes, m.now()); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return cmds
}

func phaseLabel(phase timer.Phase) string {
	if phase == timer.PhaseBreak {
		return "Break"
	}
	return "Focusing"
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// progressBar renders progress, a fraction in [0, 1], as width cells.
func progressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	state := m.engine.State()

	color := focusColor
	if state.Phase == timer.PhaseBreak {
		color = breakColor
	}

	var b strings.Builder
	b.WriteString(titleStyle.Foreground(color).Render(fmt.Sprintf("%s · %d min", phaseLabel(state.Phase), state.FocusMinutes)))
	b.WriteString("\n")
	b.WriteString(clockStyle.BorderForeground(color).Render(FormatClock(state.RemainingSeconds)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(color).Render(progressBar(state.Progress(), barWidth)))
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")

	if len(m.catalog.Tracks) > 0 {
		snap := m.player.Snapshot()
		track := m.catalog.Tracks[m.track]
		b.WriteString(fmt.Sprintf("%s %s (%s)\n", track.Icon, track.Name, snap.Status))
	}
	if m.sessions > 0 {
		b.WriteString(fmt.Sprintf("Sessions saved: %d\n", m.sessions))
	}
	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("s start/pause · r reset · +/- length · m music · n next track · q quit"))
	return b.String()
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(options Options) error {
	_, err := tea.NewProgram(New(options), tea.WithAltScreen()).Run()
	return err
}
