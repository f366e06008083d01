package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestInboxDropsWithoutPermission(t *testing.T) {
	inbox := NewInbox(10, PermissionDefault)
	ctx := context.Background()

	if err := inbox.Notify(ctx, Notification{UserID: "u1", Title: "hi"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	inbox.SetPermission("u1", PermissionDenied)
	if err := inbox.Notify(ctx, Notification{UserID: "u1", Title: "hi"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if got := inbox.List("u1"); len(got) != 0 {
		t.Fatalf("expected nothing delivered, got %+v", got)
	}

	inbox.SetPermission("u1", PermissionGranted)
	_ = inbox.Notify(ctx, Notification{UserID: "u1", Title: "hi"})
	if got := inbox.List("u1"); len(got) != 1 {
		t.Fatalf("expected one delivered notification, got %d", len(got))
	}
	if got := inbox.List("u2"); len(got) != 0 {
		t.Fatalf("expected other users unaffected, got %d", len(got))
	}
}

func TestInboxKeepsNewestFirstAndBounded(t *testing.T) {
	inbox := NewInbox(3, PermissionGranted)
	for i := 0; i < 5; i++ {
		_ = inbox.Notify(context.Background(), Notification{UserID: "u1", Title: fmt.Sprint(i)})
	}
	got := inbox.List("u1")
	if len(got) != 3 || got[0].Title != "4" || got[2].Title != "2" {
		t.Fatalf("unexpected feed: %+v", got)
	}
}

func TestInboxSubscribe(t *testing.T) {
	inbox := NewInbox(0, PermissionGranted)
	ch, cancel := inbox.Subscribe("u1", 4)

	_ = inbox.Notify(context.Background(), Notification{UserID: "u1", Title: "one"})
	_ = inbox.Notify(context.Background(), Notification{UserID: "u2", Title: "other"})

	select {
	case n := <-ch:
		if n.Title != "one" {
			t.Fatalf("unexpected notification: %+v", n)
		}
	case <-time.After(time.Second):
		t.Fatal("expected notification on subscription")
	}

	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("expected channel closed after cancel")
	}
	// Publishing after cancel must not panic on the closed channel.
	_ = inbox.Notify(context.Background(), Notification{UserID: "u1", Title: "two"})
}

func TestParsePermission(t *testing.T) {
	if p, err := ParsePermission("granted"); err != nil || p != PermissionGranted {
		t.Fatalf("expected granted, got %q %v", p, err)
	}
	if _, err := ParsePermission("maybe"); err == nil {
		t.Fatal("expected error for unknown permission")
	}
}

func TestTerminalWritesWithBell(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, PermissionGranted)
	at := time.Date(2025, 7, 25, 14, 30, 0, 0, time.UTC)

	err := term.Notify(context.Background(), Notification{Title: "📅 Reminder: Study", Body: "Chapter 4", Sound: true, At: at})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	want := "\a14:30 📅 Reminder: Study\n  Chapter 4\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	term.SetPermission(PermissionDenied)
	_ = term.Notify(context.Background(), Notification{Title: "x"})
	if buf.Len() != 0 {
		t.Fatalf("expected denied terminal to stay silent, got %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestTerminalReportsWriteErrors(t *testing.T) {
	term := NewTerminal(failingWriter{}, PermissionGranted)
	if err := term.Notify(context.Background(), Notification{Title: "x"}); err == nil {
		t.Fatal("expected write error")
	}
}
