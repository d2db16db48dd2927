// Package validation provides reusable input validation for tsclient.
// All validators follow a consistent pattern: they return the cleaned value
// (where applicable) plus nil on success, and a descriptive error on failure.
// Errors are safe to show to end users.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/tailmesh/tsclient/lib/errors"
)

// MeshPrefix is the reserved address prefix of the tailnet CGNAT range.
// Every tailnet IPv4 address begins with it.
const MeshPrefix = "100."

// CleanAddress trims surrounding whitespace and newlines from raw and
// validates that the remainder is a plausible tailnet IPv4 address: non-empty
// and beginning with MeshPrefix. Nothing else is checked; any trimmed value
// with the prefix is returned exactly as is. On failure the InvalidAddress
// error carries the full trimmed value.
func CleanAddress(raw string) (string, error) {
	addr := strings.TrimSpace(raw)
	if addr == "" {
		return "", errors.InvalidAddress(addr)
	}
	if !strings.HasPrefix(addr, MeshPrefix) {
		return "", errors.InvalidAddress(addr)
	}
	return addr, nil
}

// FirstAddress returns the first entry of an address list, or the empty
// string for an empty list. Peers that have not been assigned an address
// yet report an empty list, which is not an error.
func FirstAddress(addrs []string) string {
	if len(addrs) == 0 {
		return ""
	}
	return addrs[0]
}

// ValidText reports whether raw is valid UTF-8. Output that fails this check
// cannot be any of the tailscale CLI's documented formats.
func ValidText(raw string) bool {
	return utf8.ValidString(raw)
}
