package v2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNominalSampleRateFormulas(t *testing.T) {
	cases := []struct {
		name             string
		factor, multiple int16
		want             float64
	}{
		{"positive*positive", 100, 1, 100},
		{"positive/negative", 100, -2, 50},
		{"negative/positive", -100, 2, 0.02},
		{"negative*negative reciprocal", -10, -10, 0.01},
		{"zero factor", 0, 5, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := Header{SampleRateFactor: c.factor, SampleRateMultiplier: c.multiple}
			require.InDelta(t, c.want, h.NominalSampleRate(), 1e-9)
		})
	}
}

func TestUnpackHeaderTruncated(t *testing.T) {
	_, err := unpackHeader(make([]byte, 10))
	require.Error(t, err)
}
