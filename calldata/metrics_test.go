package calldata_test

import (
	"context"
	"testing"

	"github.com/NethermindEth/expectations/builtin"
	"github.com/NethermindEth/expectations/calldata"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := calldata.NewMetrics(reg)
	require.NoError(t, err)

	e := calldata.New(builtin.Default(), calldata.WithMetrics(m))
	_, err = e.EncodeAll(context.Background(), mixedCalls(10), 3)
	require.NoError(t, err)

	for kind, want := range map[string]float64{"regular": 2, "constructor": 2, "lowLevel": 2} {
		assert.InDelta(t, want, testutil.ToFloat64(m.Encoded.WithLabelValues(kind)), 0, kind)
	}
	for kind, want := range map[string]float64{"builtin": 2, "library": 2} {
		assert.InDelta(t, want, testutil.ToFloat64(m.Skipped.WithLabelValues(kind)), 0, kind)
	}

	t.Run("registering twice fails", func(t *testing.T) {
		_, err := calldata.NewMetrics(reg)
		require.Error(t, err)
	})
}
