package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"kairu/internal/model"
	"kairu/internal/notify"
	"kairu/internal/ticker"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func staticSource(reminders ...model.Reminder) Source {
	return func(context.Context, time.Time) ([]model.Reminder, error) {
		return reminders, nil
	}
}

func newScheduler(start time.Time, source Source, notifier notify.Notifier) (*Scheduler, *ticker.ManualClock, *ticker.Service) {
	clock := ticker.NewManualClock(start)
	ticks := ticker.NewService(clock)
	s := NewScheduler(source, notifier, ticks, Options{Interval: time.Minute, Tolerance: 1, Location: time.UTC})
	return s, clock, ticks
}

func TestSchedulerEndToEnd(t *testing.T) {
	due := model.Reminder{ID: "r1", UserID: "u1", Date: "2025-07-25", Time: "14:30", Title: "Study", IsActive: true}
	notifier := &recordingNotifier{}
	s, clock, ticks := newScheduler(at(14, 30, 30), staticSource(due), notifier)

	s.Start(context.Background())
	active := s.ActiveReminders()
	if len(active) != 1 || active[0].ID != "r1" {
		t.Fatalf("expected immediate scan to find r1, got %+v", active)
	}
	if notifier.count() != 1 {
		t.Fatalf("expected one notification from first scan, got %d", notifier.count())
	}
	if ticks.Active() != 1 {
		t.Fatalf("expected periodic registration, active=%d", ticks.Active())
	}

	// 14:31:30 is still inside the window; the reminder fires again.
	clock.Advance(time.Minute)
	if notifier.count() != 2 || len(s.ActiveReminders()) != 1 {
		t.Fatalf("expected repeat notification at 14:31:30, got %d", notifier.count())
	}

	// 14:32:30 is outside the window.
	clock.Advance(time.Minute)
	if notifier.count() != 2 || len(s.ActiveReminders()) != 0 {
		t.Fatalf("expected no match at 14:32:30, active=%+v", s.ActiveReminders())
	}
	if s.Scans() != 3 {
		t.Fatalf("expected 3 scans, got %d", s.Scans())
	}

	s.Stop()
	s.Stop()
	clock.Advance(time.Hour)
	if s.Scans() != 3 || ticks.Active() != 0 || s.Running() {
		t.Fatalf("expected stopped scheduler, scans=%d active=%d", s.Scans(), ticks.Active())
	}
}

func TestSchedulerScanAtExactTimes(t *testing.T) {
	due := model.Reminder{ID: "r1", Date: "2025-07-25", Time: "14:30", Title: "Study", IsActive: true}

	matched, _, _ := newScheduler(at(14, 30, 30), staticSource(due), &recordingNotifier{})
	matched.Start(context.Background())
	defer matched.Stop()
	if len(matched.ActiveReminders()) != 1 {
		t.Fatal("expected match at 14:30:30")
	}

	missed, _, _ := newScheduler(at(14, 32, 0), staticSource(due), &recordingNotifier{})
	missed.Start(context.Background())
	defer missed.Stop()
	if len(missed.ActiveReminders()) != 0 {
		t.Fatal("expected no match at 14:32:00")
	}
}

func TestSchedulerSourceErrorSkipsCycle(t *testing.T) {
	due := model.Reminder{ID: "r1", Date: "2025-07-25", Time: "14:30", Title: "Study", IsActive: true}
	fail := false
	source := func(context.Context, time.Time) ([]model.Reminder, error) {
		if fail {
			return nil, errors.New("store unavailable")
		}
		return []model.Reminder{due}, nil
	}
	notifier := &recordingNotifier{}
	s, clock, _ := newScheduler(at(14, 30, 0), source, notifier)

	s.Start(context.Background())
	defer s.Stop()

	fail = true
	clock.Advance(time.Minute)
	if len(s.ActiveReminders()) != 1 || notifier.count() != 1 || s.Scans() != 1 {
		t.Fatalf("expected failed cycle to leave state untouched, active=%d sent=%d", len(s.ActiveReminders()), notifier.count())
	}
}

func TestSchedulerSwallowsNotifyErrors(t *testing.T) {
	reminders := []model.Reminder{
		{ID: "a", Date: "2025-07-25", Time: "14:30", Title: "A", IsActive: true},
		{ID: "b", Date: "2025-07-25", Time: "14:31", Title: "B", IsActive: true},
	}
	notifier := &recordingNotifier{err: errors.New("permission denied")}
	s, _, _ := newScheduler(at(14, 30, 0), staticSource(reminders...), notifier)

	s.Start(context.Background())
	defer s.Stop()

	if notifier.count() != 2 || len(s.ActiveReminders()) != 2 {
		t.Fatalf("expected both reminders attempted despite errors, sent=%d", notifier.count())
	}
}

func TestSchedulerStopCancelsContext(t *testing.T) {
	var seen context.Context
	source := func(ctx context.Context, _ time.Time) ([]model.Reminder, error) {
		seen = ctx
		return nil, nil
	}
	s, _, _ := newScheduler(at(9, 0, 0), source, &recordingNotifier{})
	s.Start(context.Background())
	s.Stop()

	select {
	case <-seen.Done():
	default:
		t.Fatal("expected scan context cancelled on stop")
	}
}
