package timer

import (
	"sync"
	"time"

	"kairu/internal/ticker"
)

// Driver binds an Engine to the ticking service. A one-second registration
// exists only while the engine runs.
type Driver struct {
	engine *Engine
	ticks  *ticker.Service

	mu     sync.Mutex
	reg    *ticker.Registration
	gen    uint64
	closed bool
}

func NewDriver(engine *Engine, ticks *ticker.Service) *Driver {
	return &Driver{engine: engine, ticks: ticks}
}

func (d *Driver) Engine() *Engine {
	return d.engine
}

func (d *Driver) State() State {
	return d.engine.State()
}

func (d *Driver) Start() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return d.engine.State()
	}
	state := d.engine.Start()
	if state.Running {
		d.ensureTickingLocked()
	}
	return state
}

func (d *Driver) Pause() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := d.engine.Pause()
	d.stopTickingLocked()
	return state
}

func (d *Driver) Reset() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := d.engine.Reset()
	d.stopTickingLocked()
	return state
}

func (d *Driver) SetDuration(minutes int) (State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engine.SetDuration(minutes)
}

// Ticking reports whether a tick registration is live.
func (d *Driver) Ticking() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reg != nil
}

// Close pauses the engine and releases the tick registration. A closed
// driver ignores Start.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	d.engine.Pause()
	d.stopTickingLocked()
}

func (d *Driver) ensureTickingLocked() {
	if d.reg != nil {
		return
	}
	d.gen++
	gen := d.gen
	d.reg = d.ticks.Every(time.Second, func(time.Time) {
		d.tick(gen)
	})
}

func (d *Driver) stopTickingLocked() {
	if d.reg == nil {
		return
	}
	d.reg.Cancel()
	d.reg = nil
}

// tick holds d.mu across Engine.Tick, so OnEvent must not call back into the
// driver synchronously.
func (d *Driver) tick(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.gen || d.reg == nil {
		return
	}
	state := d.engine.Tick()
	if !state.Running {
		d.stopTickingLocked()
	}
}
