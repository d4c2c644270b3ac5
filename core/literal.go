package core

import "strings"

// IsValidDecimal reports whether s is a non-negative decimal integer without
// sign or leading zeros. "0" is the only literal that may start with '0'.
func IsValidDecimal(s string) bool {
	switch {
	case s == "":
		return false
	case s == "0":
		return true
	case s[0] == '0':
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) == -1
}
