package crypto

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

// SelectorLength is the number of digest bytes that identify a function.
const SelectorLength = 4

var hasherPool = sync.Pool{
	New: func() any { return sha3.NewLegacyKeccak256() },
}

// Keccak256 implements the legacy (pre-NIST) Keccak-256 used by Ethereum.
func Keccak256(data ...[]byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	defer hasherPool.Put(h)

	h.Reset()
	for _, b := range data {
		// hash.Hash.Write never returns an error
		h.Write(b) //nolint:errcheck
	}
	return h.Sum(nil)
}

// Selector returns the first four bytes of the Keccak-256 digest of the
// textual function signature, e.g. "transfer(address,uint256)".
func Selector(signature string) [SelectorLength]byte {
	var sel [SelectorLength]byte
	copy(sel[:], Keccak256([]byte(signature)))
	return sel
}

// SelectorBytes is Selector as a freshly allocated slice.
func SelectorBytes(signature string) []byte {
	sel := Selector(signature)
	return sel[:]
}
