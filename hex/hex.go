// Package hex converts between byte slices and hexadecimal text with a
// configurable letter case and an optional "0x" prefix.
package hex

import (
	"errors"
	"fmt"
	"strings"
)

const (
	prefix = "0x"

	upperChars = "0123456789ABCDEF"
	lowerChars = "0123456789abcdef"
)

var (
	ErrInvalidHexCharacter = errors.New("invalid hex character")
	ErrUnsupportedCase     = errors.New("mixed case can only be used for byte slices")
)

// InvalidCharacterError identifies the first character that failed to decode.
type InvalidCharacterError struct {
	Char byte
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidHexCharacter, e.Char)
}

func (e *InvalidCharacterError) Unwrap() error {
	return ErrInvalidHexCharacter
}

// EncodeByte returns the two character encoding of b.
func EncodeByte(b byte, c Case) (string, error) {
	if c == Mixed {
		return "", ErrUnsupportedCase
	}
	chars := alphabet(c)
	return string([]byte{chars[b>>4], chars[b&0xf]}), nil
}

// Encode returns the hexadecimal encoding of data.
//
// With Mixed the case flips every four hex characters, counted from the end of
// data: the last two bytes are always lower case, the two before them upper
// case and so on.
func Encode(data []byte, p Prefix, c Case) string {
	size := len(data) * 2
	if p == WithPrefix {
		size += len(prefix)
	}
	out := make([]byte, 0, size)
	if p == WithPrefix {
		out = append(out, prefix...)
	}

	chars := alphabet(c)
	rix := len(data) - 1
	for _, b := range data {
		if c == Mixed {
			if rix&2 == 0 {
				chars = lowerChars
			} else {
				chars = upperChars
			}
			rix--
		}
		out = append(out, chars[b>>4], chars[b&0xf])
	}
	return string(out)
}

// DecodeNibble returns the value of a single hex digit. Under ReturnSentinel an
// invalid digit yields -1 and a nil error.
func DecodeNibble(c byte, on OnInvalid) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, nil
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, nil
	}
	if on == Throw {
		return 0, &InvalidCharacterError{Char: c}
	}
	return -1, nil
}

// Decode parses text, with or without a "0x" prefix. An odd number of digits
// is accepted: the first digit then forms a byte on its own.
//
// Decoding is all-or-nothing. Under ReturnSentinel any invalid digit yields an
// empty slice and a nil error, under Throw the first invalid digit is reported
// as an *InvalidCharacterError.
func Decode(text string, on OnInvalid) ([]byte, error) {
	if text == "" {
		return []byte{}, nil
	}
	s := 0
	if Has0xPrefix(text) {
		s = len(prefix)
	}
	out := make([]byte, 0, (len(text)-s+1)/2)

	// The parity check is on the whole text; "0x" has an even length so it
	// never changes the outcome.
	if len(text)%2 == 1 {
		h, err := DecodeNibble(text[s], on)
		if err != nil {
			return nil, err
		}
		if h == -1 {
			return []byte{}, nil
		}
		out = append(out, byte(h))
		s++
	}
	for i := s; i < len(text); i += 2 {
		h, err := DecodeNibble(text[i], on)
		if err != nil {
			return nil, err
		}
		l, err := DecodeNibble(text[i+1], on)
		if err != nil {
			return nil, err
		}
		if h == -1 || l == -1 {
			return []byte{}, nil
		}
		out = append(out, byte(h<<4|l))
	}
	return out, nil
}

// MustDecode is Decode with the Throw policy that panics on malformed input.
func MustDecode(text string) []byte {
	b, err := Decode(text, Throw)
	if err != nil {
		panic(err)
	}
	return b
}

// IsValidLiteral reports whether text is "0x" followed by hex digits only. A
// bare "0x" is valid.
func IsValidLiteral(text string) bool {
	if !Has0xPrefix(text) {
		return false
	}
	return strings.IndexFunc(text[len(prefix):], func(r rune) bool {
		return !isHexDigit(r)
	}) == -1
}

// Has0xPrefix reports whether text starts with a lower case "0x".
func Has0xPrefix(text string) bool {
	return strings.HasPrefix(text, prefix)
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func alphabet(c Case) string {
	if c == Upper {
		return upperChars
	}
	return lowerChars
}
