package service

import (
	"context"
	"log"
	"sync"
	"time"

	apperrors "kairu/internal/errors"
	"kairu/internal/notify"
	"kairu/internal/ticker"
	"kairu/internal/timer"
)

type TimerSettings struct {
	DefaultMinutes int
	MinMinutes     int
	MaxMinutes     int
	BreakSeconds   int
	AutoContinue   bool
}

// TimerService keeps one in-memory timer per user. Timer state does not
// survive a restart.
type TimerService struct {
	ticks    *ticker.Service
	settings TimerSettings
	recorder *FocusRecorder
	notifier notify.Notifier
	cal      Calendar

	mu      sync.Mutex
	drivers map[string]*timer.Driver
	music   map[string]string
	async   func(func())
	closed  bool
	pending sync.WaitGroup
}

type TimerView struct {
	timer.State
	Progress   float64   `json:"progress"`
	MusicType  string    `json:"musicType,omitempty"`
	ServerTime time.Time `json:"serverTime"`
}

func NewTimerService(ticks *ticker.Service, settings TimerSettings, recorder *FocusRecorder, notifier notify.Notifier, cal Calendar) *TimerService {
	return &TimerService{
		ticks:    ticks,
		settings: settings,
		recorder: recorder,
		notifier: notifier,
		cal:      cal,
		drivers:  make(map[string]*timer.Driver),
		music:    make(map[string]string),
		async:    func(fn func()) { go fn() },
	}
}

// SetAsync replaces how completion side effects are dispatched. Tests use
// it to run them inline.
func (s *TimerService) SetAsync(async func(func())) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.async = async
}

func (s *TimerService) driver(userID string) *timer.Driver {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.drivers[userID]; ok {
		return d
	}
	engine := timer.NewEngine(timer.Options{
		DefaultMinutes: s.settings.DefaultMinutes,
		MinMinutes:     s.settings.MinMinutes,
		MaxMinutes:     s.settings.MaxMinutes,
		BreakSeconds:   s.settings.BreakSeconds,
		AutoContinue:   s.settings.AutoContinue,
		OnEvent: func(event timer.Event) {
			s.dispatch(userID, event)
		},
	})
	d := timer.NewDriver(engine, s.ticks)
	s.drivers[userID] = d
	return d
}

func (s *TimerService) view(userID string, state timer.State) TimerView {
	s.mu.Lock()
	music := s.music[userID]
	s.mu.Unlock()
	return TimerView{
		State:      state,
		Progress:   state.Progress(),
		MusicType:  music,
		ServerTime: s.cal.Now().UTC(),
	}
}

func (s *TimerService) State(userID string) TimerView {
	return s.view(userID, s.driver(userID).State())
}

// Start resumes the countdown. A non-empty musicType is remembered and
// attached to the recorded session.
func (s *TimerService) Start(userID, musicType string) TimerView {
	if musicType != "" {
		s.mu.Lock()
		s.music[userID] = musicType
		s.mu.Unlock()
	}
	return s.view(userID, s.driver(userID).Start())
}

func (s *TimerService) Pause(userID string) TimerView {
	return s.view(userID, s.driver(userID).Pause())
}

func (s *TimerService) Reset(userID string) TimerView {
	return s.view(userID, s.driver(userID).Reset())
}

func (s *TimerService) SetDuration(userID string, minutes int) (TimerView, *apperrors.APIError) {
	state, err := s.driver(userID).SetDuration(minutes)
	if err == timer.ErrRunning {
		return s.view(userID, state), apperrors.Conflict("timer_running", "pause or reset the timer before changing its duration", nil)
	}
	return s.view(userID, state), nil
}

// Close stops every user's timer and waits for completion side effects
// already dispatched.
func (s *TimerService) Close() {
	s.mu.Lock()
	s.closed = true
	drivers := make([]*timer.Driver, 0, len(s.drivers))
	for _, d := range s.drivers {
		drivers = append(drivers, d)
	}
	s.mu.Unlock()

	for _, d := range drivers {
		d.Close()
	}
	s.pending.Wait()
}

// dispatch runs on the tick path, so persistence and notification are
// handed off. Only Close waits for them.
func (s *TimerService) dispatch(userID string, event timer.Event) {
	now := s.cal.Now()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	async := s.async
	music := s.music[userID]
	s.pending.Add(1)
	s.mu.Unlock()

	async(func() {
		defer s.pending.Done()
		ctx := context.Background()
		if event.Type == timer.EventSessionCompleted && s.recorder != nil {
			if _, err := s.recorder.Record(ctx, userID, event.DurationMinutes, now, music); err != nil {
				log.Printf("timer: record session for %s: %v", userID, err)
			}
		}
		if s.notifier == nil {
			return
		}
		err := s.notifier.Notify(ctx, notify.Notification{
			UserID: userID,
			Title:  event.Notification.Title,
			Body:   event.Notification.Body,
			Tag:    "timer-" + string(event.Type),
			Sound:  true,
			At:     now,
		})
		if err != nil {
			log.Printf("timer: notify %s: %v", userID, err)
		}
	})
}
