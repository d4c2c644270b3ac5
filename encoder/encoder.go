// Package encoder holds the CBOR modes shared by manifest readers and writers.
//
// Encoding is canonical so that equal documents produce equal bytes. Decoding
// is strict: unknown fields, duplicate map keys and indefinite length items
// are rejected, matching the YAML and JSON readers.
package encoder

import (
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// MaxItems bounds the number of elements in any decoded array or map.
const MaxItems = 1 << 20

var (
	modesOnce sync.Once
	encMode   cbor.EncMode
	decMode   cbor.DecMode
)

func modes() (cbor.EncMode, cbor.DecMode) {
	modesOnce.Do(func() {
		var err error
		if encMode, err = cbor.CanonicalEncOptions().EncMode(); err != nil {
			panic(err)
		}

		decMode, err = cbor.DecOptions{
			DupMapKey:         cbor.DupMapKeyEnforcedAPF,
			IndefLength:       cbor.IndefLengthForbidden,
			MaxArrayElements:  MaxItems,
			MaxMapPairs:       MaxItems,
			ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
		}.DecMode()
		if err != nil {
			panic(err)
		}
	})
	return encMode, decMode
}

func Marshal(v any) ([]byte, error) {
	enc, _ := modes()
	return enc.Marshal(v)
}

func Unmarshal(b []byte, v any) error {
	_, dec := modes()
	return dec.Unmarshal(b, v)
}

type Encoder interface {
	Encode(v any) error
}

// NewEncoder returns an encoder writing one data item per Encode call to w.
func NewEncoder(w io.Writer) Encoder {
	enc, _ := modes()
	return enc.NewEncoder(w)
}

type Decoder interface {
	Decode(v any) error
}

func NewDecoder(r io.Reader) Decoder {
	_, dec := modes()
	return dec.NewDecoder(r)
}
