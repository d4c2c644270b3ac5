package crypto_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/NethermindEth/expectations/core/crypto"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeccak256(t *testing.T) {
	tests := [...]struct {
		input, want string
	}{
		{"", "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"abc", "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"},
		{"test", "9c22ff5f21f0b81b113e63f7db6da94fedef11b2119b4088b89664fb9a3cb658"},
	}
	for _, test := range tests {
		got := fmt.Sprintf("%x", crypto.Keccak256([]byte(test.input)))
		if test.want != got {
			t.Errorf("expected hash for \"%s\" = %q but got %q", test.input, test.want, got)
		}
	}

	t.Run("multiple chunks hash as their concatenation", func(t *testing.T) {
		assert.Equal(t, crypto.Keccak256([]byte("abc")), crypto.Keccak256([]byte("a"), []byte("bc")))
	})
}

func TestSelector(t *testing.T) {
	tests := [...]struct {
		signature, want string
	}{
		{"transfer(address,uint256)", "a9059cbb"},
		{"balanceOf(address)", "70a08231"},
		{"approve(address,uint256)", "095ea7b3"},
		{"f(uint256)", "b3de648b"},
	}
	for _, test := range tests {
		sel := crypto.Selector(test.signature)
		assert.Equal(t, test.want, fmt.Sprintf("%x", sel[:]), test.signature)
	}
}

func TestSelectorMatchesGethKeccak(t *testing.T) {
	for _, sig := range []string{"", "f()", "isoltest_builtin_test()", "g(uint256,bytes32[])"} {
		assert.Equal(t, gethcrypto.Keccak256([]byte(sig))[:crypto.SelectorLength], crypto.SelectorBytes(sig), sig)
	}
}

func TestSelectorDeterministic(t *testing.T) {
	const sig = "isoltest_builtin_test()"
	first := crypto.Selector(sig)

	var wg sync.WaitGroup
	results := make([][crypto.SelectorLength]byte, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = crypto.Selector(sig)
		}()
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, first, got)
	}
}
