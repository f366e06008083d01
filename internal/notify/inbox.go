package notify

import (
	"context"
	"sync"
)

const DefaultInboxSize = 50

// Inbox keeps a short per-user feed of delivered notifications and fans new
// ones out to live subscribers (the SSE stream).
type Inbox struct {
	mu          sync.Mutex
	size        int
	initial     Permission
	permissions map[string]Permission
	feeds       map[string][]Notification
	subs        map[string]map[chan Notification]struct{}
}

// NewInbox creates an inbox. Users start with the given permission.
func NewInbox(size int, initial Permission) *Inbox {
	if size <= 0 {
		size = DefaultInboxSize
	}
	if initial == "" {
		initial = PermissionDefault
	}
	return &Inbox{
		size:        size,
		initial:     initial,
		permissions: make(map[string]Permission),
		feeds:       make(map[string][]Notification),
		subs:        make(map[string]map[chan Notification]struct{}),
	}
}

func (b *Inbox) Permission(userID string) Permission {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.permissionLocked(userID)
}

func (b *Inbox) permissionLocked(userID string) Permission {
	if p, ok := b.permissions[userID]; ok {
		return p
	}
	return b.initial
}

func (b *Inbox) SetPermission(userID string, p Permission) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.permissions[userID] = p
}

// Notify stores n in the user's feed and publishes it to subscribers. Slow
// subscribers miss notifications rather than block delivery.
func (b *Inbox) Notify(_ context.Context, n Notification) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.permissionLocked(n.UserID) != PermissionGranted {
		return nil
	}

	feed := append(b.feeds[n.UserID], n)
	if len(feed) > b.size {
		feed = feed[len(feed)-b.size:]
	}
	b.feeds[n.UserID] = feed

	for ch := range b.subs[n.UserID] {
		select {
		case ch <- n:
		default:
		}
	}
	return nil
}

// List returns the user's feed, newest first.
func (b *Inbox) List(userID string) []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	feed := b.feeds[userID]
	out := make([]Notification, 0, len(feed))
	for i := len(feed) - 1; i >= 0; i-- {
		out = append(out, feed[i])
	}
	return out
}

// Subscribe returns a channel of new notifications for userID and a cancel
// func that must be called to release it.
func (b *Inbox) Subscribe(userID string, buffer int) (<-chan Notification, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Notification, buffer)

	b.mu.Lock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[chan Notification]struct{})
	}
	b.subs[userID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[userID], ch)
			if len(b.subs[userID]) == 0 {
				delete(b.subs, userID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}
