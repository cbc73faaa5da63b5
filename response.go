package mpdproto

import (
	"errors"
	"strconv"
	"strings"
)

// responseState tracks the single in-flight response on a connection.
// Transitions are driven line by line: a pair keeps the response open,
// "OK" and ACK are terminal, "list_OK" is a sub-response boundary inside
// a command list.
type responseState int

const (
	stateIdle responseState = iota
	stateReceiving
	stateBoundary
	stateSuccess
	stateServerError
	stateFailed
)

// RecvPair pulls the next pair of the open response. It returns ok=false
// when the current (sub-)response is terminated: by "OK", by "list_OK"
// (advance with NextResponse), or by an ACK, in which case the
// *ServerError is also returned. Pairs already delivered stay valid after
// an ACK.
func (c *Client) RecvPair() (Pair, bool, error) {
	switch c.state {
	case stateReceiving:
	case stateSuccess, stateServerError, stateBoundary:
		return Pair{}, false, nil
	case stateFailed:
		return Pair{}, false, c.fatalErr()
	default:
		return Pair{}, false, ErrNoResponse
	}

	line, err := c.readLine()
	if err != nil {
		return Pair{}, false, err
	}

	switch {
	case line == ResponseOK:
		c.state = stateSuccess
		c.logDebug("response finished")
		return Pair{}, false, nil

	case line == ResponseListOK:
		if !c.inList {
			return Pair{}, false, c.fail(&ProtocolError{Line: line})
		}
		c.state = stateBoundary
		return Pair{}, false, nil

	case strings.HasPrefix(line, ResponseACKPrefix):
		serverErr, err := parseAck(line)
		if err != nil {
			return Pair{}, false, c.fail(err)
		}
		c.serverErr = serverErr
		c.state = stateServerError
		c.logDebug("response failed", "code", serverErr.Code.String(), "command", serverErr.Command)
		return Pair{}, false, serverErr

	default:
		pair, err := parsePair(line)
		if err != nil {
			return Pair{}, false, c.fail(err)
		}
		return pair, true, nil
	}
}

// RecvPairNamed pulls pairs until one with the given name arrives,
// discarding mismatches. ok=false signals the end of the response.
func (c *Client) RecvPairNamed(name string) (Pair, bool, error) {
	for {
		pair, ok, err := c.RecvPair()
		if err != nil || !ok {
			return Pair{}, false, err
		}
		if pair.Name == name {
			return pair, true, nil
		}
	}
}

// Finish drains the open response to its terminal state and acknowledges
// it, returning the connection to idle. It returns the *ServerError if the
// daemon rejected the command, or the fatal local error if the connection
// failed. Only after Finish may the next command be sent.
func (c *Client) Finish() error {
	for {
		switch c.state {
		case stateIdle:
			return nil
		case stateFailed:
			return c.fatalErr()
		case stateSuccess:
			c.state = stateIdle
			c.inList = false
			return nil
		case stateServerError:
			serverErr := c.serverErr
			c.serverErr = nil
			c.state = stateIdle
			c.inList = false
			return serverErr
		case stateBoundary:
			c.state = stateReceiving
		case stateReceiving:
			if _, _, err := c.RecvPair(); err != nil {
				var serverErr *ServerError
				if !errors.As(err, &serverErr) {
					return err
				}
				// terminal ACK, surfaced on the next iteration
			}
		}
	}
}

// parseAck decodes "ACK [CODE@INDEX] {COMMAND} MESSAGE". A malformed
// envelope is a protocol violation.
func parseAck(line string) (*ServerError, error) {
	rest := strings.TrimPrefix(line, ResponseACKPrefix)

	if !strings.HasPrefix(rest, "[") {
		return nil, &ProtocolError{Line: line}
	}
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return nil, &ProtocolError{Line: line}
	}
	codeStr, indexStr, found := strings.Cut(rest[1:end], "@")
	if !found {
		return nil, &ProtocolError{Line: line}
	}
	code, err := strconv.Atoi(codeStr)
	if err != nil {
		return nil, &ProtocolError{Line: line}
	}
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		return nil, &ProtocolError{Line: line}
	}

	rest = strings.TrimLeft(rest[end+1:], " ")
	if !strings.HasPrefix(rest, "{") {
		return nil, &ProtocolError{Line: line}
	}
	end = strings.IndexByte(rest, '}')
	if end < 0 {
		return nil, &ProtocolError{Line: line}
	}
	command := rest[1:end]
	message := strings.TrimPrefix(rest[end+1:], " ")

	return &ServerError{
		Code:         AckCode(code),
		CommandIndex: index,
		Command:      command,
		Message:      message,
	}, nil
}
