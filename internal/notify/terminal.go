package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

const bell = "\a"

// Terminal prints notifications to a writer. The sound is the terminal bell.
type Terminal struct {
	mu         sync.Mutex
	out        io.Writer
	permission Permission
}

func NewTerminal(out io.Writer, permission Permission) *Terminal {
	if permission == "" {
		permission = PermissionDefault
	}
	return &Terminal{out: out, permission: permission}
}

func (t *Terminal) Permission() Permission {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.permission
}

func (t *Terminal) SetPermission(p Permission) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.permission = p
}

func (t *Terminal) Notify(_ context.Context, n Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.permission != PermissionGranted {
		return nil
	}

	prefix := ""
	if n.Sound {
		prefix = bell
	}
	stamp := ""
	if !n.At.IsZero() {
		stamp = n.At.Format("15:04") + " "
	}
	if _, err := fmt.Fprintf(t.out, "%s%s%s\n", prefix, stamp, n.Title); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	if n.Body != "" {
		if _, err := fmt.Fprintf(t.out, "  %s\n", n.Body); err != nil {
			return fmt.Errorf("write notification: %w", err)
		}
	}
	return nil
}
