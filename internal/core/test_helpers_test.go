package core

import (
	"context"
	"testing"
	"time"
)

func startHub(t *testing.T, rooms ...string) *Hub {
	t.Helper()

	if len(rooms) == 0 {
		rooms = []string{"blue", "red"}
	}
	hub := NewHub(rooms, nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received", kind)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func waitForSize(t *testing.T, dir *Directory, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if dir.Size() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("directory size never reached %d, got %d", want, dir.Size())
}

func identify(t *testing.T, hub *Hub, c *Client, username, room string) {
	t.Helper()

	hub.RegisterClient(c)
	mustEvent(t, c.Events, EventConnected)
	c.Commands <- &Command{Kind: CommandSetIdentity, Username: username, Room: room}
	mustEvent(t, c.Events, EventLoggedIn)
}
