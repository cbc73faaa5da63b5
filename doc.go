// Package mpdproto implements the client side of MPD's line-oriented
// command/response protocol, including the sticker commands, without
// depending on any higher-level client framework.
//
// The core functionality centers around the Client type, which owns one
// connection to the daemon and exactly one in-flight response:
//
//	client, err := mpdproto.Dial("localhost:6600")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	value, err := client.RunStickerGet(context.Background(), "song", "misc/song.flac", "rating")
//
// # Raw Request/Response Cycles
//
// The Run methods are shortcuts for the raw cycle: Send writes one
// serialized command, RecvPair pulls decoded name/value pairs until the
// response terminates, and Finish drains the remainder and acknowledges
// the terminal state. Only after Finish may the next command be sent:
//
//	if err := client.SendStickerList("song", uri); err != nil { ... }
//	for {
//	    sticker, ok, err := client.RecvSticker()
//	    if err != nil || !ok {
//	        break
//	    }
//	    fmt.Println(sticker.Name, sticker.Value)
//	}
//	if err := client.Finish(); err != nil { ... }
//
// A *ServerError (an ACK from the daemon, e.g. asking for a sticker that
// does not exist) is a normal outcome: the connection stays usable and
// pairs delivered before the ACK stay valid. Local failures (ErrClosed,
// ErrTimeout, ErrProtocol) poison the connection; discard it and
// reconnect.
//
// # Command Lists
//
// Multiple commands can be pipelined: CommandListOKBegin buffers
// subsequent sends, CommandListEnd flushes them in one write. Each
// sub-response ends at a list_OK boundary; drain them in send order with
// NextResponse and acknowledge the whole batch with Finish.
//
// # Concurrency
//
// A Client is not safe for concurrent use. The Run methods serialize
// themselves through an internal mutex; callers mixing raw Send/Recv
// cycles across goroutines must provide their own ordering, or open one
// Client per logical session.
package mpdproto
