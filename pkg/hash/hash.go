package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// Prefix returns the first n characters of SHA256Hex(input).
// Used to correlate log lines without writing raw client IPs.
func Prefix(input string, n int) string {
	full := SHA256Hex(input)
	if n <= 0 || n > len(full) {
		return full
	}
	return full[:n]
}

// Key joins the parts with NUL separators and hashes them, so that
// ("a b", "c") and ("a", "b c") never collide.
func Key(parts ...string) string {
	return SHA256Hex(strings.Join(parts, "\x00"))
}
