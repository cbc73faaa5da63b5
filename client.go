package mpdproto

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"
)

// Client owns one connection to an MPD daemon: the transport stream, the
// read buffer, and the state of the single in-flight response. A Client is
// not safe for concurrent use; the Run convenience methods serialize
// themselves through an internal mutex, but callers of the raw
// Send/RecvPair/Finish API must provide their own ordering.
type Client struct {
	// DialTimeout is the timeout for establishing the connection
	DialTimeout time.Duration

	// ReadTimeout is the per-line timeout while awaiting response data
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for flushing a serialized command
	WriteTimeout time.Duration

	conn net.Conn
	br   *bufio.Reader

	password string
	logger   *slog.Logger
	version  ProtocolVersion

	// mu serializes the Run convenience exchanges
	mu sync.Mutex

	state     responseState
	serverErr *ServerError

	// fatalMu guards fatal: Close may set it from another goroutine
	// while an exchange is blocked reading
	fatalMu sync.Mutex
	fatal   error

	// command list bookkeeping
	building bool   // between CommandListOKBegin and CommandListEnd
	inList   bool   // reading a command-list response
	listBuf  []byte // serialized commands awaiting the batched flush

	// opDeadline is an extra deadline from the current exchange's context
	opDeadline time.Time

	// idleWait disables the read timeout while blocked in idle
	idleWait bool
}

// Option configures a Client
type Option func(*Client)

// WithDialTimeout sets the timeout for establishing the connection
func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.DialTimeout = d
	}
}

// WithReadTimeout sets the per-line read timeout
func WithReadTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.ReadTimeout = d
	}
}

// WithWriteTimeout sets the timeout for writing commands
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.WriteTimeout = d
	}
}

// WithPassword authenticates with the daemon right after the greeting
func WithPassword(password string) Option {
	return func(c *Client) {
		c.password = password
	}
}

// WithLogger enables debug traces of sent verbs and terminal states
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Dial connects to the daemon at addr and performs the greeting handshake.
// Addresses starting with "/" are treated as Unix socket paths, anything
// else as TCP host:port.
func Dial(addr string, opts ...Option) (*Client, error) {
	return DialContext(context.Background(), addr, opts...)
}

// DialContext is Dial with a caller-supplied context bounding the connect
// and handshake.
func DialContext(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	c := &Client{
		DialTimeout:  DefaultDialTimeout,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	network := "tcp"
	if strings.HasPrefix(addr, "/") {
		network = "unix"
	}

	dialer := net.Dialer{Timeout: c.DialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("mpdproto: dial %s: %w", addr, err)
	}
	c.conn = conn
	c.br = bufio.NewReader(conn)

	if deadline, ok := ctx.Deadline(); ok {
		c.opDeadline = deadline
	}
	if err := c.handshake(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	c.opDeadline = time.Time{}

	return c, nil
}

// handshake consumes the greeting banner and authenticates if a password
// was configured.
func (c *Client) handshake() error {
	line, err := c.readLine()
	if err != nil {
		return err
	}
	if !strings.HasPrefix(line, GreetingPrefix) {
		return c.fail(&ProtocolError{Line: line})
	}
	version, err := ParseProtocolVersion(strings.TrimPrefix(line, GreetingPrefix))
	if err != nil {
		return c.fail(&ProtocolError{Line: line})
	}
	c.version = version
	c.logDebug("connected", "version", version.String())

	if c.password == "" {
		return nil
	}
	if err := c.sendCommand("password", c.password); err != nil {
		return err
	}
	return c.Finish()
}

// ProtocolVersion returns the daemon version announced in the greeting
func (c *Client) ProtocolVersion() ProtocolVersion {
	return c.version
}

// Send serializes the command and writes it to the daemon, opening a new
// response. It fails with ErrResponsePending while a previous response is
// still open. Inside a command list the command is buffered instead and
// flushed by CommandListEnd.
func (c *Client) Send(cmd *Command) error {
	if err := c.fatalErr(); err != nil {
		return err
	}
	if c.building {
		c.listBuf = cmd.appendLine(c.listBuf)
		return nil
	}
	if c.state != stateIdle {
		return ErrResponsePending
	}
	if err := c.writeLine(cmd.appendLine(nil)); err != nil {
		return err
	}
	c.serverErr = nil
	c.state = stateReceiving
	c.logDebug("sent", "verb", cmd.Verb())
	return nil
}

func (c *Client) sendCommand(verb string, args ...string) error {
	cmd, err := NewCommand(verb, args...)
	if err != nil {
		return err
	}
	return c.Send(cmd)
}

// Ping runs a no-op round trip, verifying the connection is alive
func (c *Client) Ping(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.clearOpDeadline()
	if err := c.beginExchange(ctx); err != nil {
		return err
	}
	if err := c.sendCommand("ping"); err != nil {
		return err
	}
	return c.Finish()
}

// Close tears down the connection. Any buffered, undelivered pairs are
// discarded and the Client must not be reused. Close may be called from
// another goroutine to unblock a pending read.
func (c *Client) Close() error {
	c.fatalMu.Lock()
	if c.fatal == nil {
		c.fatal = ErrClosed
	}
	c.fatalMu.Unlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// beginExchange validates the context and arms the per-exchange deadline.
// Callers must pair it with clearOpDeadline.
func (c *Client) beginExchange(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		c.opDeadline = deadline
	}
	return nil
}

func (c *Client) clearOpDeadline() {
	c.opDeadline = time.Time{}
}

// readLine extracts the next complete line from the buffered stream,
// blocking until one arrives or the deadline fires. The trailing newline
// is stripped.
func (c *Client) readLine() (string, error) {
	if err := c.fatalErr(); err != nil {
		return "", err
	}
	if err := c.conn.SetReadDeadline(c.readDeadline()); err != nil {
		return "", c.fail(c.ioError("read", err))
	}
	line, err := c.br.ReadString('\n')
	if err != nil {
		return "", c.fail(c.ioError("read", err))
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// writeLine flushes one or more serialized command lines in full
func (c *Client) writeLine(buf []byte) error {
	if err := c.fatalErr(); err != nil {
		return err
	}
	var deadline time.Time
	if c.WriteTimeout > 0 {
		deadline = time.Now().Add(c.WriteTimeout)
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return c.fail(c.ioError("write", err))
	}
	if _, err := c.conn.Write(buf); err != nil {
		return c.fail(c.ioError("write", err))
	}
	return nil
}

// readDeadline combines the configured read timeout with the current
// exchange's context deadline, whichever comes first. Idle waits block
// without a timeout.
func (c *Client) readDeadline() time.Time {
	if c.idleWait {
		return time.Time{}
	}
	var d time.Time
	if c.ReadTimeout > 0 {
		d = time.Now().Add(c.ReadTimeout)
	}
	if !c.opDeadline.IsZero() && (d.IsZero() || c.opDeadline.Before(d)) {
		d = c.opDeadline
	}
	return d
}

// ioError maps transport errors onto the package sentinels
func (c *Client) ioError(op string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) {
		return ErrClosed
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ErrTimeout
	}
	return fmt.Errorf("mpdproto: %s: %w", op, err)
}

// fail records a fatal local error. The connection is unusable afterwards.
func (c *Client) fail(err error) error {
	c.fatalMu.Lock()
	if c.fatal == nil {
		c.fatal = err
	}
	c.fatalMu.Unlock()
	c.state = stateFailed
	return err
}

// fatalErr returns the recorded fatal error, if any
func (c *Client) fatalErr() error {
	c.fatalMu.Lock()
	defer c.fatalMu.Unlock()
	return c.fatal
}

func (c *Client) logDebug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
