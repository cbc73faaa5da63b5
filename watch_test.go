package mpdproto

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"
)

// idleDaemon accepts one connection and walks it through a scripted idle
// session: one sticker change notification, then it parks until noidle.
func idleDaemon(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()

		if _, err := conn.Write([]byte("OK MPD 0.24.0\n")); err != nil {
			return
		}

		r := bufio.NewReader(conn)
		notified := false
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimSuffix(line, "\n")
			switch {
			case strings.HasPrefix(line, "idle") && !notified:
				notified = true
				if _, err := conn.Write([]byte("changed: sticker\nOK\n")); err != nil {
					return
				}
			case strings.HasPrefix(line, "idle"):
				// park until noidle
			case line == "noidle":
				if _, err := conn.Write([]byte("OK\n")); err != nil {
					return
				}
			}
		}
	}()

	return ln.Addr().String()
}

func TestWatchStickerEvents(t *testing.T) {
	addr := idleDaemon(t)

	client, err := Dial(addr)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = client.Close() }()

	events, cleanup, err := client.Watch(context.Background(), SubsystemSticker)
	if err != nil {
		t.Fatal(err)
	}

	select {
	case event := <-events:
		if event.Err != nil {
			t.Fatalf("unexpected error event: %v", event.Err)
		}
		if event.Subsystem != SubsystemSticker {
			t.Errorf("Subsystem = %q, want sticker", event.Subsystem)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change event")
	}

	done := make(chan error, 1)
	go func() {
		done <- cleanup()
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("cleanup failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup took too long")
	}

	// second cleanup must not error or hang
	if err := cleanup(); err != nil {
		t.Errorf("second cleanup failed: %v", err)
	}

	// events channel closes after cleanup
	select {
	case _, ok := <-events:
		if ok {
			t.Error("expected closed events channel")
		}
	case <-time.After(time.Second):
		t.Error("events channel did not close")
	}
}

func TestWatchContextCancellation(t *testing.T) {
	addr := idleDaemon(t)

	client, err := Dial(addr)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	events, cleanup, err := client.Watch(ctx, SubsystemSticker)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = cleanup() }()

	// drain the scripted event, then cancel
	<-events
	cancel()
	_ = client.Close()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("events channel did not close after cancellation")
		}
	}
}

func TestWatchWhileResponsePending(t *testing.T) {
	c, serverEnd := newPipeClient(t)
	discardRequests(serverEnd)

	if err := c.sendCommand("ping"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := c.Watch(context.Background()); !errors.Is(err, ErrResponsePending) {
		t.Errorf("Watch = %v, want ErrResponsePending", err)
	}
}
