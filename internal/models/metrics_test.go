package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		ratio Ratio
		want  string
	}{
		{"finite", Ratio(2.5), "2.5"},
		{"zero", Ratio(0), "0"},
		{"positive infinity", Ratio(math.Inf(1)), `"Infinity"`},
		{"negative infinity", Ratio(math.Inf(-1)), `"-Infinity"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ratio)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestRatio_UnmarshalJSON(t *testing.T) {
	var r Ratio
	require.NoError(t, json.Unmarshal([]byte("3.25"), &r))
	assert.Equal(t, Ratio(3.25), r)

	require.NoError(t, json.Unmarshal([]byte(`"Infinity"`), &r))
	assert.True(t, r.IsInf())

	require.NoError(t, json.Unmarshal([]byte(`"-Infinity"`), &r))
	assert.True(t, math.IsInf(float64(r), -1))
}

func TestPerformanceMetrics_JSONWithInfiniteProfitFactor(t *testing.T) {
	// A report with no losing trades must survive serialization.
	metrics := PerformanceMetrics{
		TotalTrades:  2,
		Wins:         2,
		WinRate:      1,
		ProfitFactor: Ratio(math.Inf(1)),
	}

	data, err := json.Marshal(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"profit_factor":"Infinity"`)

	var decoded PerformanceMetrics
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.ProfitFactor.IsInf())
}
