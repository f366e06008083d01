package service

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"kairu/internal/model"
	"kairu/internal/notify"
	"kairu/internal/repository"
	"kairu/internal/ticker"
	"kairu/internal/timer"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

var start = time.Date(2025, 7, 25, 9, 0, 0, 0, time.UTC)

func newCalendar() (Calendar, *fakeClock) {
	clock := &fakeClock{now: start}
	return NewCalendar(clock.Now, time.UTC), clock
}

func TestFormatMinutes(t *testing.T) {
	tests := map[int]string{0: "0m", 45: "45m", 60: "1h 0m", 135: "2h 15m", -5: "0m"}
	for minutes, want := range tests {
		if got := FormatMinutes(minutes); got != want {
			t.Fatalf("FormatMinutes(%d) = %q, want %q", minutes, got, want)
		}
	}
}

func TestTimerServiceRecordsCompletedSession(t *testing.T) {
	store := repository.NewMemoryStore()
	cal, _ := newCalendar()
	manual := ticker.NewManualClock(start)
	cal.Now = manual.Now
	ticks := ticker.NewService(manual)
	inbox := notify.NewInbox(10, notify.PermissionGranted)

	recorder := NewFocusRecorder(store, store, cal)
	svc := NewTimerService(ticks, TimerSettings{DefaultMinutes: 25, MinMinutes: 5, MaxMinutes: 60, BreakSeconds: 300}, recorder, inbox, cal)
	svc.SetAsync(func(fn func()) { fn() })
	defer svc.Close()

	if _, apiErr := svc.SetDuration("u1", 25); apiErr != nil {
		t.Fatalf("set duration: %v", apiErr)
	}
	view := svc.Start("u1", "rain")
	if !view.Running || view.MusicType != "rain" {
		t.Fatalf("expected running timer with music, got %+v", view)
	}
	if _, apiErr := svc.SetDuration("u1", 30); apiErr == nil || apiErr.Status != http.StatusConflict {
		t.Fatalf("expected conflict while running, got %v", apiErr)
	}

	manual.Advance(1500 * time.Second)

	view = svc.State("u1")
	if view.Phase != timer.PhaseBreak || view.RemainingSeconds != 300 || view.Running {
		t.Fatalf("expected waiting break, got %+v", view)
	}

	ctx := context.Background()
	sessions, _ := store.ListSessionsByDate(ctx, "u1", "2025-07-25")
	if len(sessions) != 1 || sessions[0].Duration != 25 || sessions[0].MusicType != "rain" {
		t.Fatalf("expected one recorded 25 minute session, got %+v", sessions)
	}
	if !sessions[0].StartTime.Equal(start) || !sessions[0].EndTime.Equal(start.Add(25*time.Minute)) {
		t.Fatalf("unexpected session times: %+v", sessions[0])
	}
	stats, err := store.GetDailyStats(ctx, "u1", "2025-07-25")
	if err != nil || stats.SessionsCount != 1 || stats.TotalFocusMinutes != 25 {
		t.Fatalf("unexpected daily stats: %+v %v", stats, err)
	}
	timeline, _ := store.ListTimeline(ctx, "u1", 10)
	if len(timeline) != 1 || timeline[0].Category != model.TimelineCategoryFocus {
		t.Fatalf("expected focus timeline entry, got %+v", timeline)
	}

	feed := inbox.List("u1")
	if len(feed) != 1 || feed[0].Title != "Focus Session Complete!" || !feed[0].Sound {
		t.Fatalf("expected completion notification, got %+v", feed)
	}

	// Other users have independent timers.
	if other := svc.State("u2"); other.Running || other.Phase != timer.PhaseFocus {
		t.Fatalf("expected untouched timer for u2, got %+v", other)
	}
}

type failingSessions struct {
	repository.SessionStore
}

func (failingSessions) CreateFocusSession(context.Context, *model.FocusSession) error {
	return context.DeadlineExceeded
}

func TestTimerServiceSurvivesPersistenceFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	cal, _ := newCalendar()
	manual := ticker.NewManualClock(start)
	ticks := ticker.NewService(manual)
	inbox := notify.NewInbox(10, notify.PermissionGranted)

	recorder := NewFocusRecorder(failingSessions{store}, store, cal)
	svc := NewTimerService(ticks, TimerSettings{DefaultMinutes: 5, MinMinutes: 5, MaxMinutes: 60, BreakSeconds: 60}, recorder, inbox, cal)
	svc.SetAsync(func(fn func()) { fn() })

	svc.Start("u1", "")
	manual.Advance(300 * time.Second)

	if view := svc.State("u1"); view.Phase != timer.PhaseBreak {
		t.Fatalf("expected timer to move to break despite store failure, got %+v", view)
	}
	if len(inbox.List("u1")) != 1 {
		t.Fatal("expected notification despite store failure")
	}

	svc.Start("u1", "")
	manual.Advance(60 * time.Second)
	feed := inbox.List("u1")
	if len(feed) != 2 || feed[0].Title != "Break Complete!" {
		t.Fatalf("expected break notification, got %+v", feed)
	}
	svc.Close()
	if ticks.Active() != 0 {
		t.Fatalf("expected no live registrations after close, got %d", ticks.Active())
	}
}

type blockingSessions struct {
	repository.SessionStore
	entered chan struct{}
	release chan struct{}
}

func (b blockingSessions) CreateFocusSession(ctx context.Context, session *model.FocusSession) error {
	close(b.entered)
	<-b.release
	return b.SessionStore.CreateFocusSession(ctx, session)
}

func TestTimerServiceCloseWaitsForRecording(t *testing.T) {
	store := repository.NewMemoryStore()
	cal, _ := newCalendar()
	manual := ticker.NewManualClock(start)
	cal.Now = manual.Now
	ticks := ticker.NewService(manual)

	sessions := blockingSessions{SessionStore: store, entered: make(chan struct{}), release: make(chan struct{})}
	recorder := NewFocusRecorder(sessions, store, cal)
	svc := NewTimerService(ticks, TimerSettings{DefaultMinutes: 5, MinMinutes: 5, MaxMinutes: 60, BreakSeconds: 60}, recorder, nil, cal)

	svc.Start("u1", "")
	manual.Advance(300 * time.Second)
	<-sessions.entered

	closed := make(chan struct{})
	go func() {
		svc.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a session was still being recorded")
	case <-time.After(50 * time.Millisecond):
	}

	close(sessions.release)
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return after recording finished")
	}

	got, err := store.ListSessions(context.Background(), "u1")
	if err != nil || len(got) != 1 {
		t.Fatalf("expected the in-flight session to be saved before Close returned, got %+v %v", got, err)
	}
}

func TestStatsServiceTodayAndSummary(t *testing.T) {
	store := repository.NewMemoryStore()
	cal, clock := newCalendar()
	recorder := NewFocusRecorder(store, store, cal)
	stats := NewStatsService(store, recorder, cal)
	ctx := context.Background()

	today, apiErr := stats.Today(ctx, "u1")
	if apiErr != nil || today.Sessions != 0 || today.FocusTime != "0m" {
		t.Fatalf("expected empty today, got %+v %v", today, apiErr)
	}

	for _, day := range []int{23, 24, 25} {
		end := time.Date(2025, 7, day, 10, 0, 0, 0, time.UTC)
		if _, apiErr := stats.Record(ctx, "u1", RecordSessionInput{Duration: 45, EndTime: &end}); apiErr != nil {
			t.Fatalf("record: %v", apiErr)
		}
	}
	end := time.Date(2025, 7, 25, 12, 0, 0, 0, time.UTC)
	if _, apiErr := stats.Record(ctx, "u1", RecordSessionInput{Duration: 90, EndTime: &end}); apiErr != nil {
		t.Fatalf("record: %v", apiErr)
	}
	if _, apiErr := stats.Record(ctx, "u1", RecordSessionInput{Duration: 0}); apiErr == nil {
		t.Fatal("expected zero duration rejected")
	}

	today, _ = stats.Today(ctx, "u1")
	if today.Sessions != 2 || today.FocusMinutes != 135 || today.FocusTime != "2h 15m" {
		t.Fatalf("unexpected today stats: %+v", today)
	}
	sessions, _ := stats.TodaySessions(ctx, "u1")
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions today, got %d", len(sessions))
	}

	summary, _ := stats.Summary(ctx, "u1")
	if summary.CurrentStreak != 3 || summary.BestStreak != 3 || summary.DaysFocused != 3 ||
		summary.TotalSessions != 4 || summary.TotalFocusMinutes != 225 || summary.AverageFocusMinutes != 56 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	clock.set(time.Date(2025, 7, 28, 9, 0, 0, 0, time.UTC))
	summary, _ = stats.Summary(ctx, "u1")
	if summary.CurrentStreak != 0 || summary.BestStreak != 3 {
		t.Fatalf("expected streak to lapse, got %+v", summary)
	}
}

func TestTodoServiceLifecycle(t *testing.T) {
	store := repository.NewMemoryStore()
	cal, clock := newCalendar()
	todos := NewTodoService(store, cal)
	ctx := context.Background()

	if _, apiErr := todos.Create(ctx, "u1", CreateTodoInput{Title: "  "}); apiErr == nil || apiErr.Code != "invalid_title" {
		t.Fatalf("expected invalid title, got %v", apiErr)
	}
	if _, apiErr := todos.Create(ctx, "u1", CreateTodoInput{Title: "x", Priority: "urgent"}); apiErr == nil || apiErr.Code != "invalid_priority" {
		t.Fatalf("expected invalid priority, got %v", apiErr)
	}
	if _, apiErr := todos.Create(ctx, "u1", CreateTodoInput{Title: "x", DueDate: "tomorrow"}); apiErr == nil || apiErr.Code != "invalid_due_date" {
		t.Fatalf("expected invalid due date, got %v", apiErr)
	}

	first, apiErr := todos.Create(ctx, "u1", CreateTodoInput{Title: "Read chapter 4"})
	if apiErr != nil {
		t.Fatalf("create: %v", apiErr)
	}
	if first.Priority != model.PriorityMedium || first.Category != model.CategoryDaily {
		t.Fatalf("expected defaults, got %+v", first)
	}
	clock.set(start.Add(time.Minute))
	second, _ := todos.Create(ctx, "u1", CreateTodoInput{Title: "Weekly review", Category: model.CategoryWeekly, Priority: model.PriorityHigh})

	list, _ := todos.List(ctx, "u1", "")
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if _, apiErr := todos.List(ctx, "u1", "yearly"); apiErr == nil {
		t.Fatal("expected invalid category filter rejected")
	}

	clock.set(start.Add(time.Hour))
	toggled, apiErr := todos.Toggle(ctx, "u1", first.ID)
	if apiErr != nil || !toggled.Completed || toggled.CompletedAt == nil || !toggled.CompletedAt.Equal(start.Add(time.Hour)) {
		t.Fatalf("expected completed todo, got %+v %v", toggled, apiErr)
	}
	toggled, _ = todos.Toggle(ctx, "u1", first.ID)
	if toggled.Completed || toggled.CompletedAt != nil {
		t.Fatalf("expected un-completed todo, got %+v", toggled)
	}

	title := "Read chapter 5"
	done := true
	updated, apiErr := todos.Update(ctx, "u1", first.ID, UpdateTodoInput{Title: &title, Completed: &done})
	if apiErr != nil || updated.Title != title || !updated.Completed || updated.CompletedAt == nil {
		t.Fatalf("unexpected update: %+v %v", updated, apiErr)
	}

	if apiErr := todos.Delete(ctx, "u1", first.ID); apiErr != nil {
		t.Fatalf("delete: %v", apiErr)
	}
	if _, apiErr := todos.Toggle(ctx, "u1", first.ID); apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected not found after delete, got %v", apiErr)
	}
}

func TestTimelineServiceValidates(t *testing.T) {
	store := repository.NewMemoryStore()
	cal, _ := newCalendar()
	timeline := NewTimelineService(store, cal)
	ctx := context.Background()

	_, apiErr := timeline.Create(ctx, "u1", CreateTimelineInput{Title: "Deep work", StartTime: start, EndTime: start.Add(-time.Minute)})
	if apiErr == nil || apiErr.Code != "invalid_time_range" {
		t.Fatalf("expected invalid range, got %v", apiErr)
	}
	_, apiErr = timeline.Create(ctx, "u1", CreateTimelineInput{Title: "Deep work", StartTime: start, EndTime: start, Productivity: 101})
	if apiErr == nil || apiErr.Code != "invalid_productivity" {
		t.Fatalf("expected invalid productivity, got %v", apiErr)
	}

	entry, apiErr := timeline.Create(ctx, "u1", CreateTimelineInput{
		Title:        "Deep work",
		StartTime:    start,
		EndTime:      start.Add(90 * time.Minute),
		Category:     "Study",
		Productivity: 80,
	})
	if apiErr != nil {
		t.Fatalf("create: %v", apiErr)
	}
	if entry.DurationMinutes != 90 || entry.Tag != model.TimelineTagUntagged || entry.Date != "2025-07-25" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	entries, _ := timeline.List(ctx, "u1", 0)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestReminderServiceActive(t *testing.T) {
	store := repository.NewMemoryStore()
	cal, clock := newCalendar()
	reminders := NewReminderService(store, cal, 1)
	ctx := context.Background()

	if _, apiErr := reminders.Add(ctx, "u1", AddReminderInput{Date: "2025-07-25", Time: "25:00", Title: "x"}); apiErr == nil {
		t.Fatal("expected invalid time rejected")
	}
	r, apiErr := reminders.Add(ctx, "u1", AddReminderInput{Date: "2025-07-25", Time: "14:30", Title: "Study"})
	if apiErr != nil {
		t.Fatalf("add: %v", apiErr)
	}
	noDate, apiErr := reminders.Add(ctx, "u1", AddReminderInput{Title: "Morning"})
	if apiErr != nil || noDate.Date != "2025-07-25" {
		t.Fatalf("expected reminder dated today, got %+v %v", noDate, apiErr)
	}

	clock.set(time.Date(2025, 7, 25, 14, 30, 30, 0, time.UTC))
	active, _ := reminders.Active(ctx, "u1")
	if len(active) != 1 || active[0].ID != r.ID {
		t.Fatalf("expected study reminder active, got %+v", active)
	}

	if _, apiErr := reminders.SetActive(ctx, "u1", r.ID, false); apiErr != nil {
		t.Fatalf("deactivate: %v", apiErr)
	}
	active, _ = reminders.Active(ctx, "u1")
	if len(active) != 0 {
		t.Fatalf("expected no active reminders, got %+v", active)
	}

	due, err := reminders.DueSource()(ctx, clock.Now())
	if err != nil || len(due) != 1 || due[0].ID != noDate.ID {
		t.Fatalf("expected only the active reminder from the due source, got %+v %v", due, err)
	}

	if apiErr := reminders.Remove(ctx, "u2", r.ID); apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected other user's delete to miss, got %v", apiErr)
	}
}

func TestAchievementServiceShare(t *testing.T) {
	store := repository.NewMemoryStore()
	cal, _ := newCalendar()
	recorder := NewFocusRecorder(store, store, cal)
	achievements := NewAchievementService(store, nil, cal)
	ctx := context.Background()

	end := start.Add(4 * time.Hour)
	if _, err := recorder.Record(ctx, "u1", 240, end, ""); err != nil {
		t.Fatalf("record: %v", err)
	}

	view, apiErr := achievements.List(ctx, "u1")
	if apiErr != nil {
		t.Fatalf("list: %v", apiErr)
	}
	if view.Summary.Unlocked != 1 || view.Metrics.MaxDailyFocusMinutes != 240 {
		t.Fatalf("unexpected achievements: %+v", view.Summary)
	}

	text, apiErr := achievements.Share(ctx, "u1", "focus-master-4h")
	if apiErr != nil || !strings.Contains(text, "4 Hour Focus Master") || !strings.Contains(text, "Earned: 2025-07-25") {
		t.Fatalf("unexpected share text: %q %v", text, apiErr)
	}
	if _, apiErr := achievements.Share(ctx, "u1", "nope"); apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", apiErr)
	}
}
