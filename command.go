package mpdproto

import (
	"fmt"
	"strings"
)

// Command is a single request: a verb plus ordered string arguments.
// It is immutable once constructed and serializes to exactly one
// newline-terminated line.
type Command struct {
	verb string
	args []string
}

// NewCommand builds a command from a verb and its arguments. Arguments may
// be empty or contain whitespace and quotes; they are quoted and escaped
// during serialization. A verb containing whitespace or an argument
// containing a newline fails with ErrInvalidArgument.
func NewCommand(verb string, args ...string) (*Command, error) {
	if verb == "" || strings.ContainsAny(verb, " \t\r\n") {
		return nil, fmt.Errorf("mpdproto: verb %q: %w", verb, ErrInvalidArgument)
	}
	for _, arg := range args {
		if strings.ContainsRune(arg, '\n') {
			return nil, fmt.Errorf("mpdproto: argument %q contains newline: %w", arg, ErrInvalidArgument)
		}
	}
	return &Command{verb: verb, args: append([]string(nil), args...)}, nil
}

// Verb returns the command verb
func (c *Command) Verb() string {
	return c.verb
}

// Args returns a copy of the argument list
func (c *Command) Args() []string {
	return append([]string(nil), c.args...)
}

// String returns the serialized request line without the trailing newline
func (c *Command) String() string {
	line := c.appendLine(nil)
	return string(line[:len(line)-1])
}

// appendLine serializes the command onto dst: verb, then each argument
// double-quoted with `"` and `\` escaped, then a newline.
func (c *Command) appendLine(dst []byte) []byte {
	dst = append(dst, c.verb...)
	for _, arg := range c.args {
		dst = append(dst, ' ')
		dst = appendQuoted(dst, arg)
	}
	return append(dst, '\n')
}

func appendQuoted(dst []byte, arg string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(arg); i++ {
		if arg[i] == '"' || arg[i] == '\\' {
			dst = append(dst, '\\')
		}
		dst = append(dst, arg[i])
	}
	return append(dst, '"')
}
