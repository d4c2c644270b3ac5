package hex

import (
	"encoding"
	"errors"
	"strings"

	"github.com/spf13/pflag"
)

var (
	ErrUnknownCase   = errors.New("unknown hex case (known: lower, upper, mixed)")
	ErrUnknownPrefix = errors.New("unknown hex prefix mode (known: add, none)")
)

// Case selects the letter case of encoded digits.
type Case int

// Prefix selects whether encoded text starts with "0x".
type Prefix int

// OnInvalid selects how decoding reacts to a character outside 0-9a-fA-F.
type OnInvalid int

// The following are necessary for Cobra and Viper, respectively, to unmarshal
// hex settings passed as CLI/config parameters.
var (
	_ pflag.Value              = (*Case)(nil)
	_ encoding.TextUnmarshaler = (*Case)(nil)
	_ pflag.Value              = (*Prefix)(nil)
	_ encoding.TextUnmarshaler = (*Prefix)(nil)
)

const (
	Lower Case = iota
	Upper
	Mixed
)

const (
	WithPrefix Prefix = iota
	NoPrefix
)

const (
	Throw OnInvalid = iota
	ReturnSentinel
)

func (c Case) String() string {
	switch c {
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	case Mixed:
		return "mixed"
	default:
		// Should not happen.
		panic(ErrUnknownCase)
	}
}

func (c *Case) Set(s string) error {
	switch strings.ToLower(s) {
	case "lower":
		*c = Lower
	case "upper":
		*c = Upper
	case "mixed":
		*c = Mixed
	default:
		return ErrUnknownCase
	}
	return nil
}

func (c *Case) Type() string {
	return "Case"
}

func (c *Case) UnmarshalText(text []byte) error {
	return c.Set(string(text))
}

func (c Case) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (p Prefix) String() string {
	switch p {
	case WithPrefix:
		return "add"
	case NoPrefix:
		return "none"
	default:
		// Should not happen.
		panic(ErrUnknownPrefix)
	}
}

func (p *Prefix) Set(s string) error {
	switch strings.ToLower(s) {
	case "add", "0x":
		*p = WithPrefix
	case "none", "":
		*p = NoPrefix
	default:
		return ErrUnknownPrefix
	}
	return nil
}

func (p *Prefix) Type() string {
	return "Prefix"
}

func (p *Prefix) UnmarshalText(text []byte) error {
	return p.Set(string(text))
}

func (p Prefix) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
