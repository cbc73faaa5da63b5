package mpdproto

import (
	"errors"
	"fmt"
)

// Common errors returned by protocol operations
var (
	// ErrClosed indicates the peer closed the connection or Close was called
	ErrClosed = errors.New("mpdproto: connection closed")

	// ErrTimeout indicates a configured deadline elapsed
	ErrTimeout = errors.New("mpdproto: timeout")

	// ErrProtocol indicates bytes that do not match the response grammar
	ErrProtocol = errors.New("mpdproto: protocol violation")

	// ErrInvalidArgument indicates a command argument that cannot be serialized
	ErrInvalidArgument = errors.New("mpdproto: invalid argument")

	// ErrMalformedSticker indicates a sticker value without a "=" separator
	ErrMalformedSticker = errors.New("mpdproto: malformed sticker value")

	// ErrResponsePending indicates a send while a response is still open
	ErrResponsePending = errors.New("mpdproto: response still pending")

	// ErrNoResponse indicates a receive with no response in progress
	ErrNoResponse = errors.New("mpdproto: no response in progress")

	// ErrListOpen indicates a command list is already being built
	ErrListOpen = errors.New("mpdproto: command list already open")

	// ErrNoList indicates a list operation outside a command list
	ErrNoList = errors.New("mpdproto: no command list open")
)

// ProtocolError reports a well-framed line that does not parse as a pair,
// a terminator, or a valid ACK envelope. It is terminal for the connection.
type ProtocolError struct {
	// Line is the offending response line, newline stripped
	Line string
}

// Error returns a formatted error message
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("mpdproto: cannot parse line %q", e.Line)
}

// Unwrap makes the error match ErrProtocol via errors.Is
func (e *ProtocolError) Unwrap() error {
	return ErrProtocol
}

// ServerError is a daemon-reported ACK. It terminates the current response
// but leaves the connection usable for the next command.
type ServerError struct {
	// Code is the numeric error class from the ACK envelope
	Code AckCode
	// CommandIndex is the 0-based index of the failing command in a list
	CommandIndex int
	// Command is the name of the failing command
	Command string
	// Message is the human-readable text after the envelope
	Message string
}

// Error returns the message in the daemon's own envelope format
func (e *ServerError) Error() string {
	return fmt.Sprintf("mpd: [%d@%d] {%s} %s", int(e.Code), e.CommandIndex, e.Command, e.Message)
}
