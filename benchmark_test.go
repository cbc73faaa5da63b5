package mpdproto

import (
	"testing"
)

// BenchmarkCommandSerialize measures serialization of a typical sticker
// command with escaping
func BenchmarkCommandSerialize(b *testing.B) {
	cmd, err := NewCommand("sticker", "set", "song", `artists/some "band"/track.flac`, "rating", "5")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	var buf []byte
	for i := 0; i < b.N; i++ {
		buf = cmd.appendLine(buf[:0])
	}
	_ = buf
}

// BenchmarkParsePair measures decoding of a response pair line
func BenchmarkParsePair(b *testing.B) {
	line := "sticker: rating=5"

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := parsePair(line); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseAck measures decoding of an ACK terminator line
func BenchmarkParseAck(b *testing.B) {
	line := "ACK [50@1] {sticker} no such sticker"

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := parseAck(line); err != nil {
			b.Fatal(err)
		}
	}
}
