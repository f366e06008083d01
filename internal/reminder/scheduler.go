// Package reminder matches dated reminders against the clock and notifies
// their owners.
package reminder

import (
	"context"
	"log"
	"sync"
	"time"

	"kairu/internal/model"
	"kairu/internal/notify"
	"kairu/internal/ticker"
)

const DefaultInterval = time.Minute

// Source supplies the reminders to check for one scan. It is called once per
// cycle and its result is treated as a snapshot.
type Source func(ctx context.Context, now time.Time) ([]model.Reminder, error)

type Options struct {
	Interval  time.Duration
	Tolerance int
	Location  *time.Location
}

type Scheduler struct {
	source   Source
	notifier notify.Notifier
	ticks    *ticker.Service
	options  Options

	mu      sync.Mutex
	reg     *ticker.Registration
	cancel  context.CancelFunc
	running bool
	active  []model.Reminder
	scans   int
}

func NewScheduler(source Source, notifier notify.Notifier, ticks *ticker.Service, options Options) *Scheduler {
	if options.Interval <= 0 {
		options.Interval = DefaultInterval
	}
	if options.Tolerance <= 0 {
		options.Tolerance = DefaultTolerance
	}
	if options.Location == nil {
		options.Location = time.Local
	}
	return &Scheduler{
		source:   source,
		notifier: notifier,
		ticks:    ticks,
		options:  options,
		active:   make([]model.Reminder, 0),
	}
}

// Start scans immediately and then once per interval until Stop. Calling
// Start on a running scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	scanCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.cycle(scanCtx, s.ticks.Clock().Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.reg = s.ticks.Every(s.options.Interval, func(now time.Time) {
		s.cycle(scanCtx, now)
	})
}

// Stop cancels the periodic scan. No new cycle begins after it returns.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	if s.reg != nil {
		s.reg.Cancel()
		s.reg = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// ActiveReminders returns the matches of the most recent successful scan.
func (s *Scheduler) ActiveReminders() []model.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Reminder, len(s.active))
	copy(out, s.active)
	return out
}

// Scans reports how many scans completed successfully.
func (s *Scheduler) Scans() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scans
}

func (s *Scheduler) cycle(ctx context.Context, now time.Time) {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return
	}

	local := now.In(s.options.Location)
	reminders, err := s.source(ctx, local)
	if err != nil {
		log.Printf("reminder: load reminders: %v", err)
		return
	}
	matches := Scan(reminders, local, s.options.Tolerance)

	s.mu.Lock()
	s.active = matches
	s.scans++
	s.mu.Unlock()

	for _, r := range matches {
		if err := s.notifier.Notify(ctx, Notification(r, local)); err != nil {
			log.Printf("reminder: notify %s: %v", r.ID, err)
		}
	}
}
