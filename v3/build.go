package v3

import (
	"fmt"

	"github.com/mseedio/mseed/endian"
	"github.com/mseedio/mseed/errs"
	"github.com/mseedio/mseed/format"
	"github.com/mseedio/mseed/sample"
	"github.com/mseedio/mseed/sourceid"
	"github.com/mseedio/mseed/xheader"
)

// primitiveEngine is the byte order mandated for primitive v3 payloads:
// always little-endian, regardless of the originating platform.
func primitiveEngine() endian.EndianEngine { return endian.GetLittleEndianEngine() }

// steimEngine is the byte order Steim frames are natively packed in,
// independent of the record's own little-endian numeric fields.
func steimEngine() endian.EndianEngine { return endian.GetBigEndianEngine() }

// EncodeInt32Samples encodes samples per enc, returning the payload bytes.
// enc must be INT16, INT32, STEIM1, or STEIM2.
func EncodeInt32Samples(samples []int32, enc format.PayloadEncoding) ([]byte, error) {
	switch enc {
	case format.EncodingInt16:
		narrowed := make([]int16, len(samples))
		for i, v := range samples {
			if v < -32768 || v > 32767 {
				return nil, fmt.Errorf("%w: sample %d does not fit int16", errs.ErrFieldOutOfRange, v)
			}
			narrowed[i] = int16(v)
		}

		return sample.EncodeInt16(nil, narrowed, primitiveEngine()), nil
	case format.EncodingInt32:
		return sample.EncodeInt32(nil, samples, primitiveEngine()), nil
	case format.EncodingSteim1:
		return sample.Steim1Encode(samples, steimEngine())
	case format.EncodingSteim2:
		return sample.Steim2Encode(samples, steimEngine())
	default:
		return nil, fmt.Errorf("%w: %s is not an integer-sample encoding", errs.ErrUnknownEncoding, enc)
	}
}

// DecodeInt32Samples decodes a record's payload into int32 samples,
// selecting the correct byte order for Steim frames versus primitive
// arrays automatically.
func DecodeInt32Samples(r *Record) ([]int32, error) {
	enc := r.Header.Encoding
	engine := primitiveEngine()
	if enc.IsSteim() {
		engine = steimEngine()
	}

	return sample.DecodeInt32Samples(r.EncodedData, int(r.Header.NumSamples), enc, engine)
}

// NewRecord assembles a Record from an already-encoded payload, filling in
// the header's Encoding and NumSamples fields. Callers that already have raw
// samples should use EncodeInt32Samples (or the primitive sample codecs
// directly) first.
func NewRecord(h Header, id sourceid.SourceId, extraHeaders *xheader.Tree, enc format.PayloadEncoding, numSamples int, encodedData []byte) *Record {
	h.FormatVersion = FormatVersion
	h.Encoding = enc
	h.NumSamples = uint32(numSamples)

	return &Record{
		Header:       h,
		SourceId:     id,
		ExtraHeaders: extraHeaders,
		EncodedData:  encodedData,
	}
}
