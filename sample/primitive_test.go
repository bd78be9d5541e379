package sample

import (
	"testing"

	"github.com/mseedio/mseed/endian"
	"github.com/stretchr/testify/require"
)

func TestInt16RoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	samples := []int16{-32768, -1, 0, 1, 32767}

	buf := EncodeInt16(nil, samples, engine)
	decoded, err := DecodeInt16(buf, len(samples), engine)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestInt32RoundTrip(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	samples := []int32{-2147483648, -1, 0, 1, 2147483647}

	buf := EncodeInt32(nil, samples, engine)
	decoded, err := DecodeInt32(buf, len(samples), engine)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestFloat32RoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	samples := []float32{-1.5, 0, 3.14159, 1e30}

	buf := EncodeFloat32(nil, samples, engine)
	decoded, err := DecodeFloat32(buf, len(samples), engine)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestFloat64RoundTrip(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	samples := []float64{-1.5, 0, 3.14159265358979, 1e300}

	buf := EncodeFloat64(nil, samples, engine)
	decoded, err := DecodeFloat64(buf, len(samples), engine)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestTextRoundTrip(t *testing.T) {
	buf := EncodeText(nil, "hello mseed")
	require.Equal(t, "hello mseed", DecodeText(buf))
}

func TestDecodeTruncated(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	_, err := DecodeInt32([]byte{1, 2, 3}, 1, engine)
	require.Error(t, err)
}
