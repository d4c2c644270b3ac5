package core

import (
	"encoding"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrUnknownKind   = errors.New("unknown call kind (known: regular, constructor, lowLevel, library, builtin)")
	ErrMalformedCall = errors.New("malformed call")
)

// Kind tells how a call reaches the contract under test.
type Kind uint8

var (
	_ encoding.TextUnmarshaler = (*Kind)(nil)
	_ encoding.TextMarshaler   = Kind(0)
)

const (
	// Regular calls are prefixed with the selector of their signature.
	Regular Kind = iota
	// Constructor calls carry the constructor arguments only.
	Constructor
	// LowLevel calls send their arguments as raw call data.
	LowLevel
	// Library calls deploy a library and carry no call data.
	Library
	// Builtin calls are answered by the test harness, see package builtin.
	Builtin
)

func (k Kind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Constructor:
		return "constructor"
	case LowLevel:
		return "lowLevel"
	case Library:
		return "library"
	case Builtin:
		return "builtin"
	default:
		// Should not happen.
		panic(ErrUnknownKind)
	}
}

func (k *Kind) Set(s string) error {
	switch strings.ToLower(s) {
	case "regular", "":
		*k = Regular
	case "constructor":
		*k = Constructor
	case "lowlevel", "low-level":
		*k = LowLevel
	case "library":
		*k = Library
	case "builtin":
		*k = Builtin
	default:
		return ErrUnknownKind
	}
	return nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	return k.Set(string(text))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Kinds lists every call kind in declaration order.
func Kinds() []Kind {
	return []Kind{Regular, Constructor, LowLevel, Library, Builtin}
}

// Parameter is a single argument or expected value: the literal as written in
// the test file and its ABI encoding.
type Parameter struct {
	Raw   string
	Bytes []byte
}

// Arguments are the parameters a call is made with.
type Arguments struct {
	Parameters []Parameter
}

// RawBytes concatenates the encoding of every parameter.
func (a *Arguments) RawBytes() []byte {
	return concat(a.Parameters)
}

// Expectations describe the outcome a test expects from a call.
type Expectations struct {
	Result  []Parameter
	Failure bool
}

// RawBytes concatenates the encoding of every expected value.
func (e *Expectations) RawBytes() []byte {
	return concat(e.Result)
}

// Call is a function call parsed from a test file.
type Call struct {
	Kind         Kind
	Signature    string
	Arguments    Arguments
	Expectations Expectations
}

// Validate checks the invariants a parser must uphold before a call is
// encoded.
func (c *Call) Validate() error {
	if !slices.Contains(Kinds(), c.Kind) {
		return fmt.Errorf("%w: kind %d", ErrMalformedCall, c.Kind)
	}
	if c.Kind == Regular && c.Signature == "" {
		return fmt.Errorf("%w: regular call without signature", ErrMalformedCall)
	}
	if c.Kind == Builtin && c.Name() == "" {
		return fmt.Errorf("%w: builtin call without name", ErrMalformedCall)
	}
	return nil
}

// Name is the function name part of the signature, "f" for "f(uint256)".
func (c *Call) Name() string {
	name, _, _ := strings.Cut(c.Signature, "(")
	return name
}

func concat(params []Parameter) []byte {
	size := 0
	for _, p := range params {
		size += len(p.Bytes)
	}
	out := make([]byte, 0, size)
	for _, p := range params {
		out = append(out, p.Bytes...)
	}
	return out
}
