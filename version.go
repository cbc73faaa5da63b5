package mpdproto

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the current version of the go-mpdproto library
const Version = "0.9.0"

// ProtocolVersion is the daemon protocol version announced in the greeting
type ProtocolVersion struct {
	Major int
	Minor int
	Patch int
}

// ParseProtocolVersion parses a dotted version string such as "0.24.0"
func ParseProtocolVersion(s string) (ProtocolVersion, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ".", 3)
	if len(parts) < 2 {
		return ProtocolVersion{}, fmt.Errorf("mpdproto: malformed version %q", s)
	}
	var v ProtocolVersion
	fields := []*int{&v.Major, &v.Minor, &v.Patch}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return ProtocolVersion{}, fmt.Errorf("mpdproto: malformed version %q", s)
		}
		*fields[i] = n
	}
	return v, nil
}

// String returns the dotted form of the version
func (v ProtocolVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AtLeast reports whether the daemon speaks at least the given version
func (v ProtocolVersion) AtLeast(major, minor, patch int) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Patch >= patch
}
