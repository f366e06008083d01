package audio

import (
	"fmt"
	"log"
	"sync"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoaded  Status = "loaded"
	StatusPlaying Status = "playing"
	StatusPaused  Status = "paused"
	StatusError   Status = "error"
)

const DefaultVolume = 0.5

// Backend performs the actual playback.
type Backend interface {
	Load(src string) error
	Play() error
	Pause() error
	SetVolume(volume float64) error
}

// Snapshot is the externally visible player state.
type Snapshot struct {
	Track  Track   `json:"track"`
	Status Status  `json:"status"`
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
	Error  string  `json:"error,omitempty"`
}

// Player is a looping single-track player. Backend failures put it into
// StatusError; they are reported to the caller but never panic.
type Player struct {
	mu      sync.Mutex
	backend Backend
	track   Track
	status  Status
	volume  float64
	muted   bool
	lastErr error
}

func NewPlayer(backend Backend) *Player {
	return &Player{backend: backend, status: StatusIdle, volume: DefaultVolume}
}

func (p *Player) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := Snapshot{Track: p.track, Status: p.status, Volume: p.volume, Muted: p.muted}
	if p.lastErr != nil {
		snap.Error = p.lastErr.Error()
	}
	return snap
}

func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Load swaps in a new track, stopping whatever was playing.
func (p *Player) Load(track Track) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status == StatusPlaying {
		if err := p.backend.Pause(); err != nil {
			log.Printf("audio: pause %s: %v", p.track.ID, err)
		}
	}
	p.track = track
	p.lastErr = nil
	if err := p.backend.Load(track.Src); err != nil {
		return p.failLocked(fmt.Errorf("load %s: %w", track.ID, err))
	}
	if err := p.backend.SetVolume(p.effectiveVolumeLocked()); err != nil {
		return p.failLocked(fmt.Errorf("set volume: %w", err))
	}
	p.status = StatusLoaded
	return nil
}

// Play reports whether playback started. It refuses to play a track that
// has not loaded or that previously failed.
func (p *Player) Play() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.status {
	case StatusPlaying:
		return true
	case StatusLoaded, StatusPaused:
	default:
		return false
	}
	if err := p.backend.Play(); err != nil {
		_ = p.failLocked(fmt.Errorf("play %s: %w", p.track.ID, err))
		return false
	}
	p.status = StatusPlaying
	return true
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status != StatusPlaying {
		return
	}
	if err := p.backend.Pause(); err != nil {
		log.Printf("audio: pause %s: %v", p.track.ID, err)
	}
	p.status = StatusPaused
}

func (p *Player) Toggle() bool {
	if p.Status() == StatusPlaying {
		p.Pause()
		return true
	}
	return p.Play()
}

// Select toggles the current track when id matches it, otherwise loads and
// plays the new one.
func (p *Player) Select(track Track) bool {
	p.mu.Lock()
	same := p.track.ID == track.ID && p.status != StatusIdle && p.status != StatusError
	p.mu.Unlock()

	if same {
		return p.Toggle()
	}
	if err := p.Load(track); err != nil {
		return false
	}
	return p.Play()
}

// SetVolume clamps volume to [0, 1].
func (p *Player) SetVolume(volume float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	p.volume = volume
	p.applyVolumeLocked()
	return volume
}

func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	p.applyVolumeLocked()
	return p.muted
}

func (p *Player) effectiveVolumeLocked() float64 {
	if p.muted {
		return 0
	}
	return p.volume
}

func (p *Player) applyVolumeLocked() {
	if p.status == StatusIdle || p.status == StatusError {
		return
	}
	if err := p.backend.SetVolume(p.effectiveVolumeLocked()); err != nil {
		log.Printf("audio: set volume: %v", err)
	}
}

func (p *Player) failLocked(err error) error {
	log.Printf("audio: %v", err)
	p.status = StatusError
	p.lastErr = err
	return err
}

// SilentBackend accepts every call and plays nothing.
type SilentBackend struct{}

func (SilentBackend) Load(string) error       { return nil }
func (SilentBackend) Play() error             { return nil }
func (SilentBackend) Pause() error            { return nil }
func (SilentBackend) SetVolume(float64) error { return nil }
