package merge

import (
	"github.com/mseedio/mseed/format"
	"github.com/mseedio/mseed/seedtime"
	"github.com/mseedio/mseed/v3"
)

// mergeGroup combines a maximal run of mutually mergeable records into as
// few output records as possible.
func mergeGroup(group []*v3.Record, cfg *Config) ([]*v3.Record, error) {
	if len(group) == 1 {
		return group, nil
	}

	if canConcatenateRaw(group) {
		return []*v3.Record{concatenateRaw(group)}, nil
	}

	if !cfg.decomp {
		// Mixed encodings, or a shared Steim encoding, neither of which can
		// be merged by byte concatenation without decompressing first.
		return group, nil
	}

	return decompressAndReencode(group, group[0].Header.Encoding, cfg)
}

func sameEncoding(group []*v3.Record) bool {
	enc := group[0].Header.Encoding
	for _, r := range group[1:] {
		if r.Header.Encoding != enc {
			return false
		}
	}

	return true
}

// canConcatenateRaw reports whether group can be merged by literal byte
// concatenation of payloads: every record shares the same non-Steim
// encoding, so sample count and payload length both sum linearly.
func canConcatenateRaw(group []*v3.Record) bool {
	return sameEncoding(group) && !group[0].Header.Encoding.IsSteim()
}

// concatenateRaw merges a group of same-encoding, non-Steim records by
// literally concatenating their payload bytes; this is always exact since
// fixed-width primitive and text payloads have no cross-record state.
func concatenateRaw(group []*v3.Record) *v3.Record {
	first := group[0]

	var payload []byte
	var numSamples int
	for _, r := range group {
		payload = append(payload, r.EncodedData...)
		numSamples += int(r.Header.NumSamples)
	}

	return v3.NewRecord(first.Header, first.SourceId, first.ExtraHeaders, first.Header.Encoding, numSamples, payload)
}

// decompressAndReencode decodes every record in group to integer samples,
// concatenates them, and re-encodes the result in enc, splitting into as
// many output records as needed to respect cfg.maxOutputBytes per record.
func decompressAndReencode(group []*v3.Record, enc format.PayloadEncoding, cfg *Config) ([]*v3.Record, error) {
	first := group[0]

	var samples []int32
	for _, r := range group {
		decoded, err := v3.DecodeInt32Samples(r)
		if err != nil {
			return nil, err
		}
		samples = append(samples, decoded...)
	}

	chunks, err := chunkEncode(samples, enc, cfg.maxOutputBytes)
	if err != nil {
		return nil, err
	}

	out := make([]*v3.Record, 0, len(chunks))
	startTime := first.Header.StartTime()
	period := first.Header.SamplePeriodSeconds()
	sampleOffset := 0

	for _, c := range chunks {
		h := first.Header
		h.SetStartTime(seedtime.AddSamples(startTime, period, sampleOffset))

		rec := v3.NewRecord(h, first.SourceId, first.ExtraHeaders, enc, len(c.samples), c.payload)
		out = append(out, rec)
		sampleOffset += len(c.samples)
	}

	return out, nil
}
