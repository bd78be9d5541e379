// Package convert implements the one-directional MiniSEED v2-to-v3 record
// conversion: mapping a read-only v2.Record onto an equivalent v3.Record
// while preserving sample data byte-for-byte wherever the target format
// allows it.
package convert

import (
	"fmt"

	"github.com/mseedio/mseed/endian"
	"github.com/mseedio/mseed/errs"
	"github.com/mseedio/mseed/format"
	"github.com/mseedio/mseed/sample"
	"github.com/mseedio/mseed/seedtime"
	"github.com/mseedio/mseed/v2"
	"github.com/mseedio/mseed/v3"
	"github.com/mseedio/mseed/xheader"
)

// V2ToV3 converts rec, a decoded MiniSEED v2 record, into an equivalent
// MiniSEED v3 record. Only blockettes 100, 1000, and 1001 influence the
// result; every other v2 blockette the source record carried is silently
// dropped — full provenance of a v2 record is explicitly not preserved by
// this conversion.
//
// Start time is BTIME plus the B1001 microsecond correction, if present:
// nanosecond = tenthMillisecond·1e5 + microsecond·1e3. Sample rate prefers a
// B100 override over the fixed header's factor/multiplier computation.
// Primitive payloads are byte-swapped into little-endian when the source
// record is big-endian (v3 mandates little-endian primitives); Steim
// payloads are copied unchanged, since Steim frames are natively
// big-endian regardless of the enclosing record's declared byte order.
func V2ToV3(rec *v2.Record) (*v3.Record, error) {
	enc, err := rec.Encoding()
	if err != nil {
		return nil, err
	}

	start := seedtime.FromBTime(rec.Header.StartTime)

	extra := xheader.NewTree()

	if b1001 := rec.Blockettes.B1001; b1001 != nil {
		microsecNanos := int64(b1001.MicroSecond) * 1_000 // spec: ns = tenth-ms*1e5 + microsec*1e3
		start = seedtime.AddNanoseconds(start, microsecNanos)

		if err := extra.Set("/FDSN/Time/Quality", xheader.Int(int64(b1001.TimingQuality))); err != nil {
			return nil, err
		}
	}

	if rec.Header.DataQualityIndicator != 0 {
		if err := extra.Set("/FDSN/DataQuality", xheader.String(string(rec.Header.DataQualityIndicator))); err != nil {
			return nil, err
		}
	}

	payload, err := convertPayload(rec.EncodedData, enc.Encoding, enc.BigEndian)
	if err != nil {
		return nil, err
	}

	var h v3.Header
	h.SetStartTime(start)
	h.SampleRateOrPeriod = rec.SampleRate()
	h.PublicationVersion = 1

	return v3.NewRecord(h, rec.SourceId, extra, enc.Encoding, int(rec.Header.NumSamples), payload), nil
}

// convertPayload re-homes a v2 payload onto v3's byte-order rules: Steim
// frames pass through untouched; primitive arrays are byte-swapped to
// little-endian if the source was big-endian.
func convertPayload(data []byte, enc format.PayloadEncoding, bigEndian bool) ([]byte, error) {
	if enc.IsSteim() || enc == format.EncodingText {
		return append([]byte(nil), data...), nil
	}
	if !bigEndian {
		return append([]byte(nil), data...), nil
	}

	src := endian.GetBigEndianEngine()
	dst := endian.GetLittleEndianEngine()

	switch enc {
	case format.EncodingInt16:
		n := len(data) / 2
		samples, err := sample.DecodeInt16(data, n, src)
		if err != nil {
			return nil, err
		}

		return sample.EncodeInt16(nil, samples, dst), nil
	case format.EncodingInt32:
		n := len(data) / 4
		samples, err := sample.DecodeInt32(data, n, src)
		if err != nil {
			return nil, err
		}

		return sample.EncodeInt32(nil, samples, dst), nil
	case format.EncodingFloat32:
		n := len(data) / 4
		samples, err := sample.DecodeFloat32(data, n, src)
		if err != nil {
			return nil, err
		}

		return sample.EncodeFloat32(nil, samples, dst), nil
	case format.EncodingFloat64:
		n := len(data) / 8
		samples, err := sample.DecodeFloat64(data, n, src)
		if err != nil {
			return nil, err
		}

		return sample.EncodeFloat64(nil, samples, dst), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownEncoding, enc)
	}
}
