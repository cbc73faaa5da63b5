package mpdproto

// Command list support: multiple commands serialized and flushed in one
// write, producing a sequence of sub-responses separated by "list_OK".
// Sub-responses must be drained in send order.

// CommandListOKBegin starts building a command list. Subsequent Send calls
// buffer their commands instead of writing them; CommandListEnd flushes
// the whole batch.
func (c *Client) CommandListOKBegin() error {
	if err := c.fatalErr(); err != nil {
		return err
	}
	if c.building {
		return ErrListOpen
	}
	if c.state != stateIdle {
		return ErrResponsePending
	}
	c.listBuf = append(c.listBuf[:0], commandListOKBegin...)
	c.listBuf = append(c.listBuf, '\n')
	c.building = true
	return nil
}

// CommandListEnd terminates the list and writes the batched commands
// back-to-back in a single flush, opening the pipelined response.
func (c *Client) CommandListEnd() error {
	if err := c.fatalErr(); err != nil {
		return err
	}
	if !c.building {
		return ErrNoList
	}
	c.building = false
	c.listBuf = append(c.listBuf, commandListEnd...)
	c.listBuf = append(c.listBuf, '\n')
	if err := c.writeLine(c.listBuf); err != nil {
		return err
	}
	c.listBuf = c.listBuf[:0]
	c.serverErr = nil
	c.inList = true
	c.state = stateReceiving
	c.logDebug("sent command list")
	return nil
}

// NextResponse drains the rest of the current sub-response and advances
// past its "list_OK" boundary. It returns false when no sub-response
// remains because the whole list terminated, successfully or with an ACK;
// Finish reports which. Local failures are returned directly.
func (c *Client) NextResponse() (bool, error) {
	if !c.inList && c.state != stateFailed {
		return false, ErrNoList
	}
	for {
		switch c.state {
		case stateBoundary:
			c.state = stateReceiving
			return true, nil
		case stateSuccess, stateServerError:
			return false, nil
		case stateFailed:
			return false, c.fatalErr()
		case stateIdle:
			return false, ErrNoResponse
		case stateReceiving:
			if _, _, err := c.RecvPair(); err != nil {
				if c.state == stateServerError {
					return false, nil
				}
				return false, err
			}
		}
	}
}
