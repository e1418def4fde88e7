// Package wallet validates and canonicalizes on-chain wallet addresses.
package wallet

import (
	"regexp"
	"strings"
)

// addressPattern is the canonical address rule applied at every boundary:
// a 0x prefix followed by exactly 64 hex digits.
var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)

// IsValid reports whether addr is a syntactically valid wallet address.
func IsValid(addr string) bool {
	return addressPattern.MatchString(addr)
}

// Normalize returns the canonical lowercase form of addr. It does not
// validate; call IsValid first.
func Normalize(addr string) string {
	return strings.ToLower(addr)
}
