// Package builtin holds the synthetic functions a test harness answers
// itself instead of calling the contract under test.
package builtin

import (
	"maps"
	"slices"

	"github.com/NethermindEth/expectations/core"
	"github.com/holiman/uint256"
)

//go:generate mockgen -destination=../mocks/mock_builtin.go -package=mocks github.com/NethermindEth/expectations/builtin Handler
type Handler interface {
	// Invoke returns the result bytes of the builtin, or false when the
	// default (zero) result applies.
	Invoke(call *core.Call) ([]byte, bool)
}

type HandlerFunc func(call *core.Call) ([]byte, bool)

func (f HandlerFunc) Invoke(call *core.Call) ([]byte, bool) {
	return f(call)
}

// Registry maps builtin names to their handlers. It is never modified after
// New returns, so it can be shared between goroutines.
type Registry struct {
	handlers map[string]Handler
}

func New(handlers map[string]Handler) *Registry {
	return &Registry{handlers: maps.Clone(handlers)}
}

// Default returns the builtins known to isoltest.
func Default() *Registry {
	return New(map[string]Handler{
		"isoltest_builtin_test":      Constant(BigEndian(0x1234)),
		"isoltest_side_effects_test": EchoOrZero(),
		"balance":                    Zero(),
		"storageEmpty":               Zero(),
		"account":                    Zero(),
	})
}

// Lookup finds the handler registered under exactly name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.handlers))
}

func (r *Registry) Len() int {
	return len(r.handlers)
}

// Constant always answers b.
func Constant(b []byte) Handler {
	return HandlerFunc(func(*core.Call) ([]byte, bool) {
		return slices.Clone(b), true
	})
}

// EchoOrZero answers the raw call arguments, or the zero word when the call
// has none.
func EchoOrZero() Handler {
	return HandlerFunc(func(call *core.Call) ([]byte, bool) {
		if len(call.Arguments.Parameters) == 0 {
			return ZeroWord(), true
		}
		return call.Arguments.RawBytes(), true
	})
}

// Zero always answers the zero word, whatever the arguments.
func Zero() Handler {
	return HandlerFunc(func(*core.Call) ([]byte, bool) {
		return ZeroWord(), true
	})
}

// BigEndian returns v as a 32 byte big-endian word.
func BigEndian(v uint64) []byte {
	word := uint256.NewInt(v).Bytes32()
	return word[:]
}

// ZeroWord is the canonical zero value: 32 zero bytes.
func ZeroWord() []byte {
	return BigEndian(0)
}
