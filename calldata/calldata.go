// Package calldata turns parsed test calls into the call data a client would
// send and the expectations it would compare against.
package calldata

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/expectations/builtin"
	"github.com/NethermindEth/expectations/core"
	"github.com/NethermindEth/expectations/core/crypto"
	"github.com/NethermindEth/expectations/hex"
	"github.com/NethermindEth/expectations/utils"
)

var (
	ErrUnknownBuiltin = errors.New("unknown builtin")
	ErrNotBuiltin     = errors.New("not a builtin call")
)

// Record is the encoded form of a single call.
type Record struct {
	Signature    string `json:"signature" yaml:"signature"`
	CallData     string `json:"callData" yaml:"callData"`
	Expectations string `json:"expectations" yaml:"expectations"`
	Failure      bool   `json:"failure" yaml:"failure"`
}

type Encoder struct {
	builtins *builtin.Registry
	hexCase  hex.Case
	prefix   hex.Prefix
	log      utils.SimpleLogger
	metrics  *Metrics
}

type Option func(*Encoder)

// WithCase sets the letter case of the call data. Expectations follow it too.
func WithCase(c hex.Case) Option {
	return func(e *Encoder) { e.hexCase = c }
}

// WithPrefix controls the "0x" prefix of the call data. Expectations are
// always prefixed.
func WithPrefix(p hex.Prefix) Option {
	return func(e *Encoder) { e.prefix = p }
}

func WithLogger(log utils.SimpleLogger) Option {
	return func(e *Encoder) { e.log = log }
}

func WithMetrics(m *Metrics) Option {
	return func(e *Encoder) { e.metrics = m }
}

func New(builtins *builtin.Registry, opts ...Option) *Encoder {
	e := &Encoder{
		builtins: builtins,
		hexCase:  hex.Lower,
		prefix:   hex.WithPrefix,
		log:      utils.NewNopZapLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.builtins == nil {
		e.builtins = builtin.New(nil)
	}
	return e
}

// CallData returns the bytes sent for call. Library and builtin calls never
// reach the contract and yield false.
func (e *Encoder) CallData(call *core.Call) ([]byte, bool) {
	switch call.Kind {
	case core.Library, core.Builtin:
		return nil, false
	case core.Regular:
		args := call.Arguments.RawBytes()
		data := make([]byte, 0, crypto.SelectorLength+len(args))
		data = append(data, crypto.SelectorBytes(call.Signature)...)
		return append(data, args...), true
	case core.Constructor, core.LowLevel:
		return call.Arguments.RawBytes(), true
	default:
		// Should not happen, Call.Validate rejects unknown kinds.
		panic(fmt.Errorf("%w: kind %d", core.ErrUnknownKind, call.Kind))
	}
}

// Encode builds the record for call, or returns false when the call produces
// no call data.
func (e *Encoder) Encode(call *core.Call) (Record, bool) {
	data, ok := e.CallData(call)
	if !ok {
		if call.Kind == core.Builtin {
			if _, known := e.builtins.Lookup(call.Name()); !known {
				e.log.Warnw("Skipping unknown builtin", "signature", call.Signature)
			}
		}
		e.log.Debugw("Skipping call", "kind", call.Kind, "signature", call.Signature)
		e.metrics.skipped(call.Kind)
		return Record{}, false
	}

	e.metrics.encoded(call.Kind)
	return Record{
		Signature:    call.Signature,
		CallData:     hex.Encode(data, e.prefix, e.hexCase),
		Expectations: hex.Encode(call.Expectations.RawBytes(), hex.WithPrefix, e.hexCase),
		Failure:      call.Expectations.Failure,
	}, true
}

// Evaluate runs the builtin handler of call. A handler that defers to the
// default answers the zero word.
func (e *Encoder) Evaluate(call *core.Call) ([]byte, error) {
	if call.Kind != core.Builtin {
		return nil, fmt.Errorf("%w: %s", ErrNotBuiltin, call.Kind)
	}
	h, ok := e.builtins.Lookup(call.Name())
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuiltin, call.Name())
	}
	if result, ok := h.Invoke(call); ok {
		return result, nil
	}
	return builtin.ZeroWord(), nil
}
