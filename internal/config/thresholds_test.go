package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultThresholds(t *testing.T) {
	defaults := DefaultThresholds()

	require.NoError(t, defaults.Validate())

	// Spot checks on the relationships detectors rely on.
	assert.Greater(t, defaults.SmallRecurring.MinCount, defaults.SmallRecurring.MinPerCategory)
	assert.Less(t, defaults.StressSpending.LateNightEndHour, defaults.StressSpending.LateNightStartHour,
		"late-night band must wrap past midnight")
	assert.Less(t, defaults.StressSpending.PostWorkStartHour, defaults.StressSpending.PostWorkEndHour)
	assert.Greater(t, defaults.EndOfMonth.SpikeRatio, 1.0)
	assert.Greater(t, defaults.Confidence.SmoothingFactor, 0.0)
	assert.LessOrEqual(t, defaults.Confidence.SmoothingFactor, 1.0)
}

func TestLoadThresholds(t *testing.T) {
	t.Run("empty config yields defaults", func(t *testing.T) {
		v := viper.New()

		got, err := LoadThresholds(v)
		require.NoError(t, err)
		assert.Equal(t, DefaultThresholds(), got)
	})

	t.Run("config overrides merge over defaults", func(t *testing.T) {
		v := viper.New()
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
thresholds:
  small_recurring:
    min_count: 4
  confidence:
    smoothing_factor: 0.5
`)))

		got, err := LoadThresholds(v)
		require.NoError(t, err)

		assert.Equal(t, 4, got.SmallRecurring.MinCount)
		assert.InDelta(t, 0.5, got.Confidence.SmoothingFactor, 1e-9)
		// Untouched values keep their defaults.
		assert.Equal(t, DefaultThresholds().StressSpending, got.StressSpending)
	})

	t.Run("invalid overrides are rejected", func(t *testing.T) {
		v := viper.New()
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
thresholds:
  confidence:
    smoothing_factor: 2.0
`)))

		_, err := LoadThresholds(v)
		require.Error(t, err)
	})
}

func TestThresholdsValidate(t *testing.T) {
	tests := []struct {
		mutate func(*Thresholds)
		name   string
	}{
		{name: "zero smoothing factor", mutate: func(t *Thresholds) { t.Confidence.SmoothingFactor = 0 }},
		{name: "negative decay", mutate: func(t *Thresholds) { t.Confidence.DailyDecayRate = -0.1 }},
		{name: "non-positive small ceiling", mutate: func(t *Thresholds) { t.SmallRecurring.MaxAmount = 0 }},
		{name: "zero min count", mutate: func(t *Thresholds) { t.SmallRecurring.MinCount = 0 }},
		{name: "non-wrapping late-night band", mutate: func(t *Thresholds) { t.StressSpending.LateNightEndHour = 23 }},
		{name: "inverted post-work band", mutate: func(t *Thresholds) { t.StressSpending.PostWorkEndHour = 16 }},
		{name: "start day out of range", mutate: func(t *Thresholds) { t.EndOfMonth.StartDay = 30 }},
		{name: "spike ratio at one", mutate: func(t *Thresholds) { t.EndOfMonth.SpikeRatio = 1.0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thresholds := DefaultThresholds()
			tt.mutate(&thresholds)
			assert.Error(t, thresholds.Validate())
		})
	}
}
