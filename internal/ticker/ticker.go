// Package ticker runs periodic callbacks on an injectable clock. Every loop in
// the process (focus timers, reminder scans) registers here so that shutdown
// can cancel all of them in one place.
package ticker

import (
	"sync"
	"time"
)

type Service struct {
	clock  Clock
	mu     sync.Mutex
	nextID uint64
	regs   map[uint64]*Registration
	closed bool
}

func NewService(clock Clock) *Service {
	if clock == nil {
		clock = SystemClock
	}
	return &Service{
		clock: clock,
		regs:  make(map[uint64]*Registration),
	}
}

func (s *Service) Clock() Clock {
	return s.clock
}

// Registration is one periodic callback.
type Registration struct {
	svc       *Service
	id        uint64
	interval  time.Duration
	fn        func(time.Time)
	mu        sync.Mutex
	timer     Timer
	cancelled bool
}

// Every calls fn once per interval until the registration is cancelled. The
// next call is scheduled after fn returns, so calls never overlap. On a closed
// service the returned registration is already cancelled.
func (s *Service) Every(interval time.Duration, fn func(now time.Time)) *Registration {
	if interval <= 0 {
		interval = time.Second
	}
	reg := &Registration{svc: s, interval: interval, fn: fn}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		reg.cancelled = true
		return reg
	}
	s.nextID++
	reg.id = s.nextID
	s.regs[reg.id] = reg
	s.mu.Unlock()

	reg.arm()
	return reg
}

// Active reports the number of live registrations.
func (s *Service) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regs)
}

// Close cancels every registration. Later calls to Every return cancelled
// registrations.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	regs := make([]*Registration, 0, len(s.regs))
	for _, reg := range s.regs {
		regs = append(regs, reg)
	}
	s.mu.Unlock()

	for _, reg := range regs {
		reg.Cancel()
	}
}

func (s *Service) forget(id uint64) {
	s.mu.Lock()
	delete(s.regs, id)
	s.mu.Unlock()
}

func (r *Registration) arm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelled {
		return
	}
	r.timer = r.svc.clock.AfterFunc(r.interval, r.fire)
}

func (r *Registration) fire() {
	r.mu.Lock()
	if r.cancelled {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	r.fn(r.svc.clock.Now())
	r.arm()
}

// Cancel stops future calls. It is idempotent and may be called from inside
// the callback.
func (r *Registration) Cancel() {
	r.mu.Lock()
	if r.cancelled {
		r.mu.Unlock()
		return
	}
	r.cancelled = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.mu.Unlock()

	r.svc.forget(r.id)
}

func (r *Registration) Cancelled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancelled
}
