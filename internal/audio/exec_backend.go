package audio

import (
	"fmt"
	"os/exec"
	"strconv"
	"sync"
)

// ExecBackend streams through an external command line player such as mpv.
// Pausing stops the process; playing again restarts the stream.
type ExecBackend struct {
	Command string

	mu     sync.Mutex
	path   string
	src    string
	volume float64
	cmd    *exec.Cmd
}

func NewExecBackend(command string) *ExecBackend {
	if command == "" {
		command = "mpv"
	}
	return &ExecBackend{Command: command, volume: DefaultVolume}
}

func (b *ExecBackend) Load(src string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	path, err := exec.LookPath(b.Command)
	if err != nil {
		return fmt.Errorf("find %s: %w", b.Command, err)
	}
	b.stopLocked()
	b.path = path
	b.src = src
	return nil
}

func (b *ExecBackend) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.path == "" {
		return fmt.Errorf("nothing loaded")
	}
	b.stopLocked()
	cmd := exec.Command(b.path, b.args()...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", b.Command, err)
	}
	b.cmd = cmd
	go func() { _ = cmd.Wait() }()
	return nil
}

func (b *ExecBackend) Pause() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
	return nil
}

// SetVolume takes effect on the next Play.
func (b *ExecBackend) SetVolume(volume float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.volume = volume
	return nil
}

func (b *ExecBackend) args() []string {
	percent := strconv.Itoa(int(b.volume*100 + 0.5))
	return []string{"--no-video", "--really-quiet", "--loop=inf", "--volume=" + percent, b.src}
}

func (b *ExecBackend) stopLocked() {
	if b.cmd == nil || b.cmd.Process == nil {
		return
	}
	_ = b.cmd.Process.Kill()
	b.cmd = nil
}
