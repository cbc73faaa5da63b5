package mpdproto

import (
	"context"
	"time"

	"vawter.tech/stopper"
)

// Subsystem identifies one daemon subsystem for idle change notification
type Subsystem string

// Subsystems reported by the idle command
const (
	SubsystemDatabase       Subsystem = "database"
	SubsystemUpdate         Subsystem = "update"
	SubsystemStoredPlaylist Subsystem = "stored_playlist"
	SubsystemPlaylist       Subsystem = "playlist"
	SubsystemPlayer         Subsystem = "player"
	SubsystemMixer          Subsystem = "mixer"
	SubsystemOutput         Subsystem = "output"
	SubsystemOptions        Subsystem = "options"
	SubsystemPartition      Subsystem = "partition"
	SubsystemSticker        Subsystem = "sticker"
	SubsystemSubscription   Subsystem = "subscription"
	SubsystemMessage        Subsystem = "message"
	SubsystemNeighbor       Subsystem = "neighbor"
	SubsystemMount          Subsystem = "mount"
)

// SubsystemEvent is one change notification from watching a connection
type SubsystemEvent struct {
	Subsystem Subsystem
	Err       error
}

// WatchCleanupFunc stops a watch and waits for its goroutine to exit
type WatchCleanupFunc func() error

// Watch puts the connection into idle mode and emits an event whenever one
// of the given subsystems changes (all subsystems when none are given).
// The connection is dedicated to the watch until cleanup is called:
// no other commands may be sent on it in between, and after cleanup the
// connection should be closed rather than reused.
func (c *Client) Watch(ctx context.Context, subsystems ...Subsystem) (<-chan SubsystemEvent, WatchCleanupFunc, error) {
	if err := c.fatalErr(); err != nil {
		return nil, nil, err
	}
	if c.state != stateIdle {
		return nil, nil, ErrResponsePending
	}

	args := make([]string, len(subsystems))
	for i, s := range subsystems {
		args[i] = string(s)
	}

	ch := make(chan SubsystemEvent, 10)
	sctx := stopper.WithContext(ctx)
	sctx.Defer(func() {
		close(ch)
	})

	emit := func(event SubsystemEvent) {
		select {
		case ch <- event:
		case <-sctx.Stopping():
		}
	}

	sctx.Go(func(sctx *stopper.Context) error {
		// events can be hours apart; block without a read timeout
		c.idleWait = true
		defer func() { c.idleWait = false }()

		for !sctx.IsStopping() {
			if err := c.sendCommand("idle", args...); err != nil {
				if !sctx.IsStopping() {
					emit(SubsystemEvent{Err: err})
				}
				return nil
			}
			for {
				pair, ok, err := c.RecvPair()
				if err != nil {
					_ = c.Finish()
					if !sctx.IsStopping() {
						emit(SubsystemEvent{Err: err})
					}
					return nil
				}
				if !ok {
					break
				}
				if pair.Name == "changed" && !sctx.IsStopping() {
					emit(SubsystemEvent{Subsystem: Subsystem(pair.Value)})
				}
			}
			if err := c.Finish(); err != nil {
				if !sctx.IsStopping() {
					emit(SubsystemEvent{Err: err})
				}
				return nil
			}
		}
		return nil
	})

	cleanup := func() error {
		if !sctx.IsStopping() {
			sctx.Stop(time.Second)
			// unblock the pending idle read; harmless if the daemon
			// already replied
			_ = c.conn.SetWriteDeadline(time.Now().Add(time.Second))
			_, _ = c.conn.Write([]byte("noidle\n"))
		}
		return sctx.Wait()
	}

	return ch, cleanup, nil
}
