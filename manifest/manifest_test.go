package manifest_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NethermindEth/expectations/builtin"
	"github.com/NethermindEth/expectations/core"
	"github.com/NethermindEth/expectations/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlManifest = `calls:
  - kind: regular
    signature: f(uint256)
    arguments: ["1"]
    expectations: ["0x1234"]
  - kind: constructor
    signature: constructor()
    arguments: ["0xabcd"]
    failure: true
  - kind: builtin
    signature: balance
`

const jsonManifest = `{
  "calls": [
    {"kind": "lowLevel", "signature": "", "arguments": ["0x0102"]},
    {"kind": "library", "signature": "L"}
  ]
}`

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	calls, err := manifest.Load(writeFile(t, "calls.yaml", yamlManifest))
	require.NoError(t, err)
	require.Len(t, calls, 3)

	assert.Equal(t, &core.Call{
		Kind:      core.Regular,
		Signature: "f(uint256)",
		Arguments: core.Arguments{Parameters: []core.Parameter{
			{Raw: "1", Bytes: builtin.BigEndian(1)},
		}},
		Expectations: core.Expectations{
			Result: []core.Parameter{{Raw: "0x1234", Bytes: []byte{0x12, 0x34}}},
		},
	}, calls[0])

	assert.Equal(t, core.Constructor, calls[1].Kind)
	assert.True(t, calls[1].Expectations.Failure)
	assert.Equal(t, []byte{0xab, 0xcd}, calls[1].Arguments.RawBytes())

	assert.Equal(t, core.Builtin, calls[2].Kind)
	assert.Empty(t, calls[2].Arguments.Parameters)
}

func TestLoadJSON(t *testing.T) {
	calls, err := manifest.Load(writeFile(t, "calls.json", jsonManifest))
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, core.LowLevel, calls[0].Kind)
	assert.Equal(t, []byte{0x01, 0x02}, calls[0].Arguments.RawBytes())
	assert.Equal(t, core.Library, calls[1].Kind)
}

func TestEmptyYAML(t *testing.T) {
	calls, err := manifest.Decode(strings.NewReader(""), manifest.YAML)
	require.NoError(t, err)
	assert.Empty(t, calls)
}

func TestEncodeDecodeCBOR(t *testing.T) {
	want, err := manifest.Decode(strings.NewReader(yamlManifest), manifest.YAML)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, manifest.Encode(&buf, manifest.CBOR, want))

	path := writeFile(t, "calls.cbor", buf.String())
	got, err := manifest.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEncodeFallsBackToHex(t *testing.T) {
	calls := []*core.Call{{
		Kind:      core.LowLevel,
		Arguments: core.Arguments{Parameters: []core.Parameter{{Bytes: []byte{0xde, 0xad}}}},
	}}

	var buf bytes.Buffer
	require.NoError(t, manifest.Encode(&buf, manifest.JSON, calls))
	assert.Contains(t, buf.String(), `"0xdead"`)
	assert.Contains(t, buf.String(), `"lowLevel"`)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]struct {
		name     string
		contents string
		target   error
	}{
		"unknown extension": {"calls.txt", "", manifest.ErrUnknownFormat},
		"unknown kind": {
			"calls.yaml", "calls:\n  - kind: delegate\n    signature: f()\n", core.ErrMalformedCall,
		},
		"bad hex": {
			"calls.yaml", "calls:\n  - kind: regular\n    signature: f()\n    arguments: [\"0x12G4\"]\n", core.ErrMalformedCall,
		},
		"bad decimal": {
			"calls.yaml", "calls:\n  - kind: regular\n    signature: f()\n    arguments: [\"-1\"]\n", core.ErrMalformedCall,
		},
		"leading zeros": {
			"calls.yaml", "calls:\n  - kind: regular\n    signature: f()\n    arguments: [\"007\"]\n", core.ErrMalformedCall,
		},
		"signed decimal": {
			"calls.json", `{"calls": [{"kind": "regular", "signature": "f()", "arguments": ["+5"]}]}`, core.ErrMalformedCall,
		},
		"empty expectation": {
			"calls.json", `{"calls": [{"kind": "regular", "signature": "f()", "expectations": [""]}]}`, core.ErrMalformedCall,
		},
		"regular without signature": {
			"calls.json", `{"calls": [{"kind": "regular"}]}`, core.ErrMalformedCall,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := manifest.Load(writeFile(t, test.name, test.contents))
			require.ErrorIs(t, err, test.target)
		})
	}

	t.Run("unknown field", func(t *testing.T) {
		_, err := manifest.Load(writeFile(t, "calls.json", `{"calls": [{"kind": "regular", "sig": "f()"}]}`))
		require.Error(t, err)
	})

	t.Run("missing file names the path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.yaml")
		_, err := manifest.Load(path)
		require.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), path)
	})
}

func TestParseParameter(t *testing.T) {
	tests := map[string][]byte{
		"0x":     {},
		"0x01":   {0x01},
		"0x123":  {0x01, 0x23},
		"0":      builtin.BigEndian(0),
		"4660":   builtin.BigEndian(0x1234),
		"0xABcd": {0xab, 0xcd},
	}
	for raw, want := range tests {
		got, err := manifest.ParseParameter(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestParseParameterInvalid(t *testing.T) {
	for _, raw := range []string{"", "007", "00", "+5", "-1", "1e3", "0x12G4", "0X12", "12ab",
		"115792089237316195423570985008687907853269984665640564039457584007913129639936"} {
		t.Run(raw, func(t *testing.T) {
			got, err := manifest.ParseParameter(raw)
			require.ErrorIs(t, err, core.ErrMalformedCall)
			assert.Nil(t, got)
		})
	}
}

func TestLoadAll(t *testing.T) {
	paths := []string{
		writeFile(t, "a.yaml", yamlManifest),
		writeFile(t, "b.json", jsonManifest),
	}
	all, err := manifest.LoadAll(paths, 4)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Len(t, all[0], 3)
	assert.Len(t, all[1], 2)

	_, err = manifest.LoadAll(append(paths, "nope.toml"), 1)
	require.ErrorIs(t, err, manifest.ErrUnknownFormat)
}
