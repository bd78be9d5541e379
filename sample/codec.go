package sample

import (
	"fmt"

	"github.com/mseedio/mseed/endian"
	"github.com/mseedio/mseed/errs"
	"github.com/mseedio/mseed/format"
)

// DecodeInt32Samples decodes numSamples samples out of a payload encoded
// with enc, normalizing primitive integer encodings and both Steim variants
// to a single []int32 result. TEXT and floating-point encodings are
// rejected; use DecodeText/DecodeFloat32/DecodeFloat64 directly for those.
func DecodeInt32Samples(data []byte, numSamples int, enc format.PayloadEncoding, engine endian.EndianEngine) ([]int32, error) {
	switch enc {
	case format.EncodingInt16:
		vals, err := DecodeInt16(data, numSamples, engine)
		if err != nil {
			return nil, err
		}

		out := make([]int32, len(vals))
		for i, v := range vals {
			out[i] = int32(v)
		}

		return out, nil
	case format.EncodingInt32:
		return DecodeInt32(data, numSamples, engine)
	case format.EncodingSteim1:
		return Steim1Decode(data, numSamples, engine)
	case format.EncodingSteim2:
		return Steim2Decode(data, numSamples, engine)
	case format.EncodingSteim3:
		return nil, fmt.Errorf("%w: STEIM-3 decoding is not supported", errs.ErrUnknownEncoding)
	default:
		return nil, fmt.Errorf("%w: encoding %s is not an integer encoding", errs.ErrUnknownEncoding, enc)
	}
}
