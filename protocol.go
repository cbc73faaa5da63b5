package mpdproto

import "time"

// Response framing constants
const (
	// ResponseOK terminates a successful response
	ResponseOK = "OK"

	// ResponseListOK separates sub-responses inside a command list
	ResponseListOK = "list_OK"

	// ResponseACKPrefix starts the daemon's error terminator line
	ResponseACKPrefix = "ACK "

	// GreetingPrefix starts the banner the daemon sends after connect
	GreetingPrefix = "OK MPD "

	// PairSeparator splits a response line into name and value
	PairSeparator = ": "
)

// Command list framing verbs
const (
	commandListOKBegin = "command_list_ok_begin"
	commandListEnd     = "command_list_end"
)

// Defaults applied by Dial unless overridden by options
const (
	// DefaultPort is the port MPD listens on
	DefaultPort = 6600

	// DefaultDialTimeout is the default timeout for establishing connections
	DefaultDialTimeout = 5 * time.Second

	// DefaultReadTimeout is the default per-line read timeout
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the default timeout for writing a command
	DefaultWriteTimeout = 10 * time.Second
)

// AckCode is the numeric error class carried by an ACK terminator line.
// The values are fixed by the MPD protocol.
type AckCode int

// ACK error classes
const (
	AckNotList       AckCode = 1
	AckArg           AckCode = 2
	AckPassword      AckCode = 3
	AckPermission    AckCode = 4
	AckUnknown       AckCode = 5
	AckNoExist       AckCode = 50
	AckPlaylistMax   AckCode = 51
	AckSystem        AckCode = 52
	AckPlaylistLoad  AckCode = 53
	AckUpdateAlready AckCode = 54
	AckPlayerSync    AckCode = 55
	AckExist         AckCode = 56
)

// String returns the symbolic name of the ACK code
func (c AckCode) String() string {
	switch c {
	case AckNotList:
		return "not_list"
	case AckArg:
		return "bad_argument"
	case AckPassword:
		return "password"
	case AckPermission:
		return "permission"
	case AckUnknown:
		return "unknown_command"
	case AckNoExist:
		return "no_exist"
	case AckPlaylistMax:
		return "playlist_max"
	case AckSystem:
		return "system"
	case AckPlaylistLoad:
		return "playlist_load"
	case AckUpdateAlready:
		return "update_already"
	case AckPlayerSync:
		return "player_sync"
	case AckExist:
		return "exist"
	default:
		return "unknown"
	}
}
