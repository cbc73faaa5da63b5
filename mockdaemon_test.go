package mpdproto

import (
	"bufio"
	"net"
	"sync"
	"testing"
	"time"
)

// mockDaemon is a scripted stand-in for MPD: it accepts connections,
// sends the greeting banner, and answers each request line through the
// configured handler. The handler returns the raw response bytes to
// write, which may be empty for lines that produce no output on their
// own (e.g. command list framing).
type mockDaemon struct {
	ln       net.Listener
	greeting string
	handle   func(line string) string

	mu    sync.Mutex
	lines []string
}

func newMockDaemon(t *testing.T, handle func(line string) string) *mockDaemon {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	d := &mockDaemon{
		ln:       ln,
		greeting: "OK MPD 0.24.0\n",
		handle:   handle,
	}
	go d.serve()

	t.Cleanup(func() { _ = ln.Close() })
	return d
}

func (d *mockDaemon) addr() string {
	return d.ln.Addr().String()
}

// requests returns every request line seen so far, in arrival order
func (d *mockDaemon) requests() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.lines...)
}

func (d *mockDaemon) serve() {
	for {
		conn, err := d.ln.Accept()
		if err != nil {
			return
		}
		go d.serveConn(conn)
	}
}

func (d *mockDaemon) serveConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	if _, err := conn.Write([]byte(d.greeting)); err != nil {
		return
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		d.mu.Lock()
		d.lines = append(d.lines, line)
		d.mu.Unlock()

		reply := d.handle(line)
		if reply == "" {
			continue
		}
		if _, err := conn.Write([]byte(reply)); err != nil {
			return
		}
	}
}

// okHandler answers every request with a bare success terminator
func okHandler(string) string {
	return "OK\n"
}

// newPipeClient builds a Client over an in-memory pipe, bypassing Dial,
// for driving the response state machine with raw scripted bytes.
func newPipeClient(t *testing.T) (*Client, net.Conn) {
	t.Helper()

	clientEnd, serverEnd := net.Pipe()
	c := &Client{
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		conn:         clientEnd,
		br:           bufio.NewReader(clientEnd),
	}
	t.Cleanup(func() {
		_ = clientEnd.Close()
		_ = serverEnd.Close()
	})
	return c, serverEnd
}

// script writes raw response bytes from the server end without blocking
// the test goroutine
func script(t *testing.T, serverEnd net.Conn, raw string) {
	t.Helper()
	go func() {
		_, _ = serverEnd.Write([]byte(raw))
	}()
}

// discardRequests keeps reading from the server end so client writes to a
// synchronous pipe do not block
func discardRequests(serverEnd net.Conn) {
	go func() {
		buf := make([]byte, 4096)
		for {
			if _, err := serverEnd.Read(buf); err != nil {
				return
			}
		}
	}()
}
