package mpdproto

import (
	"errors"
	"strings"
	"testing"
)

func TestCommandSerialize(t *testing.T) {
	tests := []struct {
		name string
		verb string
		args []string
		want string
	}{
		{
			name: "no arguments",
			verb: "ping",
			want: "ping",
		},
		{
			name: "plain arguments",
			verb: "sticker",
			args: []string{"get", "song", "misc/song.flac", "rating"},
			want: `sticker "get" "song" "misc/song.flac" "rating"`,
		},
		{
			name: "empty argument",
			verb: "sticker",
			args: []string{"delete", "song", ""},
			want: `sticker "delete" "song" ""`,
		},
		{
			name: "whitespace in argument",
			verb: "sticker",
			args: []string{"set", "song", "a b c.flac", "played by", "me"},
			want: `sticker "set" "song" "a b c.flac" "played by" "me"`,
		},
		{
			name: "quote escaped",
			verb: "sticker",
			args: []string{"get", "song", `say "cheese".flac`, "rating"},
			want: `sticker "get" "song" "say \"cheese\".flac" "rating"`,
		},
		{
			name: "backslash escaped",
			verb: "sticker",
			args: []string{"get", "song", `back\slash.flac`, "rating"},
			want: `sticker "get" "song" "back\\slash.flac" "rating"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := NewCommand(tt.verb, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if got := cmd.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			line := cmd.appendLine(nil)
			if line[len(line)-1] != '\n' {
				t.Errorf("serialized line %q not newline-terminated", line)
			}
		})
	}
}

// TestCommandRoundTrip tokenizes serialized lines with a reference
// tokenizer and verifies the original arguments come back in order.
func TestCommandRoundTrip(t *testing.T) {
	cases := [][]string{
		{},
		{"set", "song", "misc/song.flac", "rating", "5"},
		{"", " ", "  leading and trailing  "},
		{`"`, `\`, `\"`, `a "quoted \ mess"`},
		{"tab\tinside", "colon: inside"},
	}

	for _, args := range cases {
		cmd, err := NewCommand("sticker", args...)
		if err != nil {
			t.Fatal(err)
		}
		verb, got, err := tokenizeRequest(cmd.String())
		if err != nil {
			t.Fatalf("tokenize %q: %v", cmd.String(), err)
		}
		if verb != "sticker" {
			t.Errorf("verb = %q, want sticker", verb)
		}
		if len(got) != len(args) {
			t.Fatalf("tokenize %q: got %d args, want %d", cmd.String(), len(got), len(args))
		}
		for i := range args {
			if got[i] != args[i] {
				t.Errorf("arg %d = %q, want %q", i, got[i], args[i])
			}
		}
	}
}

func TestNewCommandRejects(t *testing.T) {
	t.Run("newline in argument", func(t *testing.T) {
		_, err := NewCommand("sticker", "set", "song", "uri\nping", "name", "value")
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("err = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("empty verb", func(t *testing.T) {
		if _, err := NewCommand(""); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("err = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("whitespace in verb", func(t *testing.T) {
		if _, err := NewCommand("sticker set"); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("err = %v, want ErrInvalidArgument", err)
		}
	})
}

func TestCommandImmutable(t *testing.T) {
	args := []string{"get", "song", "uri", "name"}
	cmd, err := NewCommand("sticker", args...)
	if err != nil {
		t.Fatal(err)
	}
	args[0] = "mutated"
	if cmd.Args()[0] != "get" {
		t.Error("command shares backing array with caller arguments")
	}
	cmd.Args()[1] = "mutated"
	if cmd.Args()[1] != "song" {
		t.Error("Args() exposes internal slice")
	}
}

// tokenizeRequest is the reference tokenizer used by the round-trip test:
// a verb followed by double-quoted arguments with backslash escapes.
func tokenizeRequest(line string) (string, []string, error) {
	verb, rest, _ := strings.Cut(line, " ")
	var args []string
	for rest != "" {
		if rest[0] != '"' {
			return "", nil, errors.New("argument does not start with a quote")
		}
		var sb strings.Builder
		i := 1
		for {
			if i >= len(rest) {
				return "", nil, errors.New("unterminated quote")
			}
			ch := rest[i]
			if ch == '\\' {
				if i+1 >= len(rest) {
					return "", nil, errors.New("dangling escape")
				}
				sb.WriteByte(rest[i+1])
				i += 2
				continue
			}
			if ch == '"' {
				i++
				break
			}
			sb.WriteByte(ch)
			i++
		}
		args = append(args, sb.String())
		rest = strings.TrimPrefix(rest[i:], " ")
	}
	return verb, args, nil
}
