// Package manifest reads already parsed test calls from YAML, JSON or CBOR
// documents.
//
// A document lists calls under "calls". Every argument or expected value is
// either a hex literal ("0x..."), taken verbatim as its encoding, or a
// decimal integer, encoded as a 32 byte big-endian word.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NethermindEth/expectations/core"
	"github.com/NethermindEth/expectations/encoder"
	"github.com/NethermindEth/expectations/hex"
	"github.com/NethermindEth/expectations/utils"
	"github.com/NethermindEth/expectations/validator"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/iter"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown manifest format (known: yaml, json, cbor)")

type Format int

const (
	YAML Format = iota
	JSON
	CBOR
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	case CBOR:
		return "cbor"
	default:
		// Should not happen.
		panic(ErrUnknownFormat)
	}
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".cbor":
		return CBOR, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

type document struct {
	Calls []entry `json:"calls" yaml:"calls" cbor:"calls"`
}

type entry struct {
	Kind         string   `json:"kind" yaml:"kind" cbor:"kind"`
	Signature    string   `json:"signature" yaml:"signature" cbor:"signature"`
	Arguments    []string `json:"arguments" yaml:"arguments" cbor:"arguments" validate:"dive,hex_literal|decimal_literal"`
	Expectations []string `json:"expectations" yaml:"expectations" cbor:"expectations" validate:"dive,hex_literal|decimal_literal"`
	Failure      bool     `json:"failure" yaml:"failure" cbor:"failure"`
}

// Load reads the manifest at path.
func Load(path string) ([]*core.Call, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open manifest %s", path)
	}
	defer f.Close()

	calls, err := Decode(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest %s", path)
	}
	return calls, nil
}

// LoadAll reads every manifest on at most workers goroutines. The result
// keeps the order of paths.
func LoadAll(paths []string, workers int) ([][]*core.Call, error) {
	mapper := iter.Mapper[string, []*core.Call]{MaxGoroutines: max(workers, 1)}
	return mapper.MapErr(paths, func(path *string) ([]*core.Call, error) {
		return Load(*path)
	})
}

// Decode reads a whole document from r.
func Decode(r io.Reader, format Format) ([]*core.Call, error) {
	var doc document
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	case CBOR:
		if err := encoder.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnknownFormat
	}

	calls := make([]*core.Call, 0, len(doc.Calls))
	for i, e := range doc.Calls {
		call, err := e.call()
		if err != nil {
			return nil, fmt.Errorf("call %d: %w", i, err)
		}
		calls = append(calls, call)
	}
	return calls, nil
}

// Encode writes calls as a document that Decode reads back.
func Encode(w io.Writer, format Format, calls []*core.Call) error {
	doc := document{Calls: make([]entry, 0, len(calls))}
	for _, c := range calls {
		doc.Calls = append(doc.Calls, entry{
			Kind:         c.Kind.String(),
			Signature:    c.Signature,
			Arguments:    literals(c.Arguments.Parameters),
			Expectations: literals(c.Expectations.Result),
			Failure:      c.Expectations.Failure,
		})
	}

	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case CBOR:
		return encoder.NewEncoder(w).Encode(doc)
	default:
		return ErrUnknownFormat
	}
}

func (e *entry) call() (*core.Call, error) {
	if err := validator.Validator().Struct(e); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedCall, err)
	}

	call := &core.Call{Signature: e.Signature}
	if err := call.Kind.Set(e.Kind); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedCall, err)
	}

	var err error
	if call.Arguments.Parameters, err = parameters(e.Arguments); err != nil {
		return nil, err
	}
	if call.Expectations.Result, err = parameters(e.Expectations); err != nil {
		return nil, err
	}
	call.Expectations.Failure = e.Failure

	if err := call.Validate(); err != nil {
		return nil, err
	}
	return call, nil
}

func parameters(raw []string) ([]core.Parameter, error) {
	params := make([]core.Parameter, 0, len(raw))
	for _, r := range raw {
		b, err := ParseParameter(r)
		if err != nil {
			return nil, err
		}
		params = append(params, core.Parameter{Raw: r, Bytes: b})
	}
	return params, nil
}

// ParseParameter encodes a single literal.
func ParseParameter(raw string) ([]byte, error) {
	if hex.Has0xPrefix(raw) {
		if !hex.IsValidLiteral(raw) {
			return nil, fmt.Errorf("%w: invalid hex literal %q", core.ErrMalformedCall, raw)
		}
		return hex.Decode(raw, hex.Throw)
	}
	if !core.IsValidDecimal(raw) {
		return nil, fmt.Errorf("%w: %q is neither hex nor a decimal", core.ErrMalformedCall, raw)
	}
	v, err := uint256.FromDecimal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q does not fit 256 bits: %w", core.ErrMalformedCall, raw, err)
	}
	word := v.Bytes32()
	return word[:], nil
}

func literals(params []core.Parameter) []string {
	return utils.Map(params, func(p core.Parameter) string {
		if b, err := ParseParameter(p.Raw); p.Raw == "" || err != nil || !bytes.Equal(b, p.Bytes) {
			return hex.Encode(p.Bytes, hex.WithPrefix, hex.Lower)
		}
		return p.Raw
	})
}
