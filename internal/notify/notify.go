// Package notify delivers user-facing notifications. Delivery is best-effort:
// without granted permission a notification is dropped silently.
package notify

import (
	"context"
	"fmt"
	"time"
)

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

func ParsePermission(raw string) (Permission, error) {
	switch p := Permission(raw); p {
	case PermissionDefault, PermissionGranted, PermissionDenied:
		return p, nil
	default:
		return "", fmt.Errorf("unknown notification permission %q", raw)
	}
}

type Notification struct {
	UserID string    `json:"userId"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	Tag    string    `json:"tag,omitempty"`
	Sound  bool      `json:"sound"`
	At     time.Time `json:"at"`
}

// Notifier is implemented by every delivery channel.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
