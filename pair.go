package mpdproto

import "strings"

// Pair is one decoded name/value unit of a response. Names are
// case-sensitive; values may contain any byte except newline. Duplicate
// names are legal and delivered in daemon order.
type Pair struct {
	Name  string
	Value string
}

// parsePair splits a raw line (newline already stripped) at the first
// ": " separator. Lines without the separator are protocol violations.
func parsePair(line string) (Pair, error) {
	i := strings.Index(line, PairSeparator)
	if i < 0 {
		return Pair{}, &ProtocolError{Line: line}
	}
	return Pair{Name: line[:i], Value: line[i+len(PairSeparator):]}, nil
}
