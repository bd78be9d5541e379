// Package sample implements the per-encoding codecs MiniSEED uses for
// record payloads: the primitive fixed-width encodings (TEXT, INT16, INT32,
// FLOAT32, FLOAT64) and the Steim-1/Steim-2 differential compressors.
//
// All decode functions return freshly allocated, contiguous slices typed to
// the encoding's natural width; callers that need a zero-copy view over a
// little-endian, native-order buffer can reinterpret the payload bytes
// directly instead of calling into this package.
package sample

import (
	"fmt"
	"math"

	"github.com/mseedio/mseed/endian"
	"github.com/mseedio/mseed/errs"
)

// DecodeInt16 decodes n little/big-endian (per engine) 16-bit signed samples.
func DecodeInt16(data []byte, n int, engine endian.EndianEngine) ([]int16, error) {
	if len(data) < n*2 {
		return nil, fmt.Errorf("%w: need %d bytes for %d int16 samples, got %d", errs.ErrTruncatedRecord, n*2, n, len(data))
	}

	out := make([]int16, n)
	for i := 0; i < n; i++ {
		out[i] = int16(engine.Uint16(data[i*2:]))
	}

	return out, nil
}

// EncodeInt16 appends n int16 samples to buf using engine's byte order.
func EncodeInt16(buf []byte, samples []int16, engine endian.EndianEngine) []byte {
	for _, s := range samples {
		buf = engine.AppendUint16(buf, uint16(s))
	}

	return buf
}

// DecodeInt32 decodes n 32-bit signed samples.
func DecodeInt32(data []byte, n int, engine endian.EndianEngine) ([]int32, error) {
	if len(data) < n*4 {
		return nil, fmt.Errorf("%w: need %d bytes for %d int32 samples, got %d", errs.ErrTruncatedRecord, n*4, n, len(data))
	}

	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = int32(engine.Uint32(data[i*4:]))
	}

	return out, nil
}

// EncodeInt32 appends n int32 samples to buf using engine's byte order.
func EncodeInt32(buf []byte, samples []int32, engine endian.EndianEngine) []byte {
	for _, s := range samples {
		buf = engine.AppendUint32(buf, uint32(s))
	}

	return buf
}

// DecodeFloat32 decodes n IEEE-754 binary32 samples.
func DecodeFloat32(data []byte, n int, engine endian.EndianEngine) ([]float32, error) {
	if len(data) < n*4 {
		return nil, fmt.Errorf("%w: need %d bytes for %d float32 samples, got %d", errs.ErrTruncatedRecord, n*4, n, len(data))
	}

	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(engine.Uint32(data[i*4:]))
	}

	return out, nil
}

// EncodeFloat32 appends n float32 samples to buf using engine's byte order.
func EncodeFloat32(buf []byte, samples []float32, engine endian.EndianEngine) []byte {
	for _, s := range samples {
		buf = engine.AppendUint32(buf, math.Float32bits(s))
	}

	return buf
}

// DecodeFloat64 decodes n IEEE-754 binary64 samples.
func DecodeFloat64(data []byte, n int, engine endian.EndianEngine) ([]float64, error) {
	if len(data) < n*8 {
		return nil, fmt.Errorf("%w: need %d bytes for %d float64 samples, got %d", errs.ErrTruncatedRecord, n*8, n, len(data))
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float64frombits(engine.Uint64(data[i*8:]))
	}

	return out, nil
}

// EncodeFloat64 appends n float64 samples to buf using engine's byte order.
func EncodeFloat64(buf []byte, samples []float64, engine endian.EndianEngine) []byte {
	for _, s := range samples {
		buf = engine.AppendUint64(buf, math.Float64bits(s))
	}

	return buf
}

// DecodeText returns the payload as a string; MiniSEED TEXT payloads are
// plain UTF-8/ASCII with no length prefix beyond the record's data length.
func DecodeText(data []byte) string {
	return string(data)
}

// EncodeText appends s's bytes to buf verbatim.
func EncodeText(buf []byte, s string) []byte {
	return append(buf, s...)
}
