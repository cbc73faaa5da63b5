package mpdproto

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Stickers are arbitrary name/value annotations clients attach to daemon
// objects (currently songs), addressed by object type and URI. The daemon
// assigns them no meaning; neither does this package.

// Sticker is one sticker: its own name and value, decoded from the
// "name=value" shape of a pair named "sticker".
type Sticker struct {
	Name  string
	Value string
}

// StickerFile is one search match: the URI of the object carrying the
// sticker (from the preceding "file" pair) plus the sticker itself.
type StickerFile struct {
	URI     string
	Sticker Sticker
}

// ParseSticker splits a sticker value of the form "name=value" at the
// first "=". Input without a separator, or with an empty name, fails with
// ErrMalformedSticker. This is a caller-facing parse failure and does not
// affect the connection.
func ParseSticker(input string) (Sticker, error) {
	i := strings.IndexByte(input, '=')
	if i <= 0 {
		return Sticker{}, fmt.Errorf("mpdproto: sticker %q: %w", input, ErrMalformedSticker)
	}
	return Sticker{Name: input[:i], Value: input[i+1:]}, nil
}

// RecvSticker pulls the next sticker of the open response, skipping pairs
// with other names. ok=false signals the end of the response.
func (c *Client) RecvSticker() (Sticker, bool, error) {
	pair, ok, err := c.RecvPairNamed("sticker")
	if err != nil || !ok {
		return Sticker{}, false, err
	}
	sticker, err := ParseSticker(pair.Value)
	if err != nil {
		return Sticker{}, false, err
	}
	return sticker, true, nil
}

// SendStickerSet adds or replaces a sticker value
func (c *Client) SendStickerSet(objectType, uri, name, value string) error {
	return c.sendCommand("sticker", "set", objectType, uri, name, value)
}

// SendStickerDelete deletes one sticker, or all stickers of the object
// when name is empty
func (c *Client) SendStickerDelete(objectType, uri, name string) error {
	if name == "" {
		return c.sendCommand("sticker", "delete", objectType, uri)
	}
	return c.sendCommand("sticker", "delete", objectType, uri, name)
}

// SendStickerGet queries one sticker value; receive it with RecvSticker
func (c *Client) SendStickerGet(objectType, uri, name string) error {
	return c.sendCommand("sticker", "get", objectType, uri, name)
}

// SendStickerList requests all stickers of the object; receive them with
// RecvSticker
func (c *Client) SendStickerList(objectType, uri string) error {
	return c.sendCommand("sticker", "list", objectType, uri)
}

// SendStickerFind searches for stickers with the given name below baseURI
// (the whole database when baseURI is empty). Receive matches with
// RecvPair: "file" pairs carry the URI, "sticker" pairs the value.
func (c *Client) SendStickerFind(objectType, baseURI, name string) error {
	return c.sendCommand("sticker", "find", objectType, baseURI, name)
}

// SendStickerNames requests the sorted, de-duplicated list of sticker
// names known to the daemon; receive them as pairs named "name"
func (c *Client) SendStickerNames() error {
	return c.sendCommand("stickernames")
}

// RunStickerSet is SendStickerSet followed by Finish
func (c *Client) RunStickerSet(ctx context.Context, objectType, uri, name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.clearOpDeadline()
	if err := c.beginExchange(ctx); err != nil {
		return err
	}
	if err := c.SendStickerSet(objectType, uri, name, value); err != nil {
		return err
	}
	return c.Finish()
}

// RunStickerDelete is SendStickerDelete followed by Finish
func (c *Client) RunStickerDelete(ctx context.Context, objectType, uri, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.clearOpDeadline()
	if err := c.beginExchange(ctx); err != nil {
		return err
	}
	if err := c.SendStickerDelete(objectType, uri, name); err != nil {
		return err
	}
	return c.Finish()
}

// RunStickerGet queries one sticker and returns its value
func (c *Client) RunStickerGet(ctx context.Context, objectType, uri, name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.clearOpDeadline()
	if err := c.beginExchange(ctx); err != nil {
		return "", err
	}
	if err := c.SendStickerGet(objectType, uri, name); err != nil {
		return "", err
	}

	var value string
	var found bool
	recvErr := c.drainStickers(func(s Sticker) {
		value = s.Value
		found = true
	})
	if err := c.finishAfter(recvErr); err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("mpdproto: response carried no sticker pair: %w", ErrProtocol)
	}
	return value, nil
}

// RunStickerList returns all stickers of the object
func (c *Client) RunStickerList(ctx context.Context, objectType, uri string) ([]Sticker, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.clearOpDeadline()
	if err := c.beginExchange(ctx); err != nil {
		return nil, err
	}
	if err := c.SendStickerList(objectType, uri); err != nil {
		return nil, err
	}

	var stickers []Sticker
	recvErr := c.drainStickers(func(s Sticker) {
		stickers = append(stickers, s)
	})
	if err := c.finishAfter(recvErr); err != nil {
		return nil, err
	}
	return stickers, nil
}

// RunStickerFind returns all matches for the sticker name below baseURI
func (c *Client) RunStickerFind(ctx context.Context, objectType, baseURI, name string) ([]StickerFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.clearOpDeadline()
	if err := c.beginExchange(ctx); err != nil {
		return nil, err
	}
	if err := c.SendStickerFind(objectType, baseURI, name); err != nil {
		return nil, err
	}

	var matches []StickerFile
	var uri string
	var recvErr error
	for {
		pair, ok, err := c.RecvPair()
		if err != nil {
			recvErr = err
			break
		}
		if !ok {
			break
		}
		switch pair.Name {
		case "file":
			uri = pair.Value
		case "sticker":
			sticker, err := ParseSticker(pair.Value)
			if err != nil {
				recvErr = err
			} else {
				matches = append(matches, StickerFile{URI: uri, Sticker: sticker})
			}
		}
		if recvErr != nil {
			break
		}
	}
	if err := c.finishAfter(recvErr); err != nil {
		return nil, err
	}
	return matches, nil
}

// RunStickerNames returns the daemon's sorted list of sticker names
func (c *Client) RunStickerNames(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.clearOpDeadline()
	if err := c.beginExchange(ctx); err != nil {
		return nil, err
	}
	if err := c.SendStickerNames(); err != nil {
		return nil, err
	}

	var names []string
	var recvErr error
	for {
		pair, ok, err := c.RecvPairNamed("name")
		if err != nil {
			recvErr = err
			break
		}
		if !ok {
			break
		}
		names = append(names, pair.Value)
	}
	if err := c.finishAfter(recvErr); err != nil {
		return nil, err
	}
	return names, nil
}

// drainStickers pulls stickers until the response ends, feeding each to fn
func (c *Client) drainStickers(fn func(Sticker)) error {
	for {
		sticker, ok, err := c.RecvSticker()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		fn(sticker)
	}
}

// finishAfter drains and acknowledges the response after a receive loop.
// A local receive error takes priority; a ServerError is reported once,
// through Finish.
func (c *Client) finishAfter(recvErr error) error {
	finishErr := c.Finish()
	if recvErr != nil {
		var serverErr *ServerError
		if !errors.As(recvErr, &serverErr) {
			return recvErr
		}
	}
	return finishErr
}
