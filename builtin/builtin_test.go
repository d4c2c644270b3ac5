package builtin_test

import (
	"bytes"
	"testing"

	"github.com/NethermindEth/expectations/builtin"
	"github.com/NethermindEth/expectations/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoke(t *testing.T, r *builtin.Registry, call *core.Call) []byte {
	t.Helper()
	h, ok := r.Lookup(call.Name())
	require.True(t, ok, call.Name())
	b, ok := h.Invoke(call)
	require.True(t, ok)
	return b
}

func TestDefault(t *testing.T) {
	r := builtin.Default()
	zero := make([]byte, 32)

	assert.Equal(t, []string{
		"account",
		"balance",
		"isoltest_builtin_test",
		"isoltest_side_effects_test",
		"storageEmpty",
	}, r.Names())

	t.Run("constant", func(t *testing.T) {
		want := append(bytes.Repeat([]byte{0}, 30), 0x12, 0x34)
		got := invoke(t, r, &core.Call{Kind: core.Builtin, Signature: "isoltest_builtin_test()"})
		assert.Equal(t, want, got)
	})

	t.Run("side effects without arguments", func(t *testing.T) {
		got := invoke(t, r, &core.Call{Kind: core.Builtin, Signature: "isoltest_side_effects_test()"})
		assert.Equal(t, zero, got)
	})

	t.Run("side effects echo arguments", func(t *testing.T) {
		call := &core.Call{
			Kind:      core.Builtin,
			Signature: "isoltest_side_effects_test(uint256,uint256)",
			Arguments: core.Arguments{Parameters: []core.Parameter{
				{Raw: "1", Bytes: builtin.BigEndian(1)},
				{Raw: "2", Bytes: builtin.BigEndian(2)},
			}},
		}
		got := invoke(t, r, call)
		assert.Equal(t, append(builtin.BigEndian(1), builtin.BigEndian(2)...), got)
	})

	for _, name := range []string{"balance", "storageEmpty", "account"} {
		t.Run(name+" is always zero", func(t *testing.T) {
			assert.Equal(t, zero, invoke(t, r, &core.Call{Kind: core.Builtin, Signature: name}))

			withArgs := &core.Call{
				Kind:      core.Builtin,
				Signature: name + "(address)",
				Arguments: core.Arguments{Parameters: []core.Parameter{{Raw: "0x01", Bytes: []byte{0x01}}}},
			}
			assert.Equal(t, zero, invoke(t, r, withArgs))
		})
	}
}

func TestLookupIsExact(t *testing.T) {
	r := builtin.Default()
	for _, name := range []string{"Balance", "balance ", "balance()", "isoltest"} {
		_, ok := r.Lookup(name)
		assert.False(t, ok, name)
	}
}

func TestRegistryIsImmutable(t *testing.T) {
	entries := map[string]builtin.Handler{"a": builtin.Zero()}
	r := builtin.New(entries)

	entries["b"] = builtin.Zero()
	delete(entries, "a")

	assert.Equal(t, []string{"a"}, r.Names())
	assert.Equal(t, 1, r.Len())
}

func TestConstantReturnsCopies(t *testing.T) {
	h := builtin.Constant([]byte{0x01, 0x02})
	first, _ := h.Invoke(&core.Call{})
	first[0] = 0xff

	second, _ := h.Invoke(&core.Call{})
	assert.Equal(t, []byte{0x01, 0x02}, second)
}

func TestEmptyRegistry(t *testing.T) {
	r := builtin.New(nil)
	_, ok := r.Lookup("balance")
	assert.False(t, ok)
	assert.Empty(t, r.Names())
}
