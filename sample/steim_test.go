package sample

import (
	"testing"

	"github.com/mseedio/mseed/endian"
	"github.com/stretchr/testify/require"
)

func TestSteim2ScenarioFromSpec(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	samples := []int32{0, 1, 2, 3, 100, 100, 100, -50, -60, 1_000_000, 1_000_001}

	encoded, err := Steim2Encode(samples, engine)
	require.NoError(t, err)
	require.Len(t, encoded, FrameBytes, "scenario fits in a single frame")

	require.Equal(t, int32(0), int32(engine.Uint32(encoded[1*4:])), "frame 0 word 1 = X0")
	require.Equal(t, int32(1_000_001), int32(engine.Uint32(encoded[2*4:])), "frame 0 word 2 = Xn")

	decoded, err := Steim2Decode(encoded, len(samples), engine)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestSteim1RoundTrip(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	samples := make([]int32, 1000)
	for i := range samples {
		samples[i] = int32(i%99) - 49
	}

	encoded, err := Steim1Encode(samples, engine)
	require.NoError(t, err)

	decoded, err := Steim1Decode(encoded, len(samples), engine)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestSteim2RoundTripLargeDifferences(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	samples := []int32{0, 500_000_000, 0, -500_000_000, 0, 268_435_455, -268_435_456, 0}

	encoded, err := Steim2Encode(samples, engine)
	require.NoError(t, err)

	decoded, err := Steim2Decode(encoded, len(samples), engine)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestSteim2RangeErrorOnOverflow(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	samples := []int32{0, 1 << 30}

	_, err := Steim2Encode(samples, engine)
	require.Error(t, err)
}

func TestSteim1RangeErrorNeverOnInt32Diffs(t *testing.T) {
	// Steim-1 can pack any single int32 difference as a literal 32-bit
	// word, so a step-to-step difference that itself stays within int32
	// range never triggers a range error, even at the extremes.
	engine := endian.GetBigEndianEngine()
	samples := []int32{0, 2147483647, -1, -2147483648, -1, 0}

	encoded, err := Steim1Encode(samples, engine)
	require.NoError(t, err)

	decoded, err := Steim1Decode(encoded, len(samples), engine)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestSteimDecodeIntegrityErrorOnTamperedXn(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	samples := []int32{1, 2, 3, 4, 5}

	encoded, err := Steim2Encode(samples, engine)
	require.NoError(t, err)

	tampered := append([]byte(nil), encoded...)
	engine.PutUint32(tampered[2*4:], 999) // corrupt Xn

	_, err = Steim2Decode(tampered, len(samples), engine)
	require.Error(t, err)
}

func TestSteimEncodeEmptyIsEmpty(t *testing.T) {
	engine := endian.GetBigEndianEngine()

	encoded, err := Steim1Encode(nil, engine)
	require.NoError(t, err)
	require.Nil(t, encoded)

	encoded, err = Steim2Encode(nil, engine)
	require.NoError(t, err)
	require.Nil(t, encoded)
}

func TestSteimMultiFrame(t *testing.T) {
	engine := endian.GetBigEndianEngine()

	samples := make([]int32, 5000)
	for i := range samples {
		samples[i] = int32(i * 3)
	}

	encoded, err := Steim2Encode(samples, engine)
	require.NoError(t, err)
	require.True(t, len(encoded) > FrameBytes)
	require.Zero(t, len(encoded)%FrameBytes)

	decoded, err := Steim2Decode(encoded, len(samples), engine)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}
