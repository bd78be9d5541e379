package v2

import (
	"fmt"

	"github.com/mseedio/mseed/errs"
	"github.com/mseedio/mseed/sourceid"
)

// Record is the in-memory model of a single, already-read MiniSEED v2
// record. Decoding is read-only: there is no Pack counterpart, since this
// library does not write v2.
type Record struct {
	Header      Header
	SourceId    sourceid.SourceId
	Blockettes  Blockettes
	EncodedData []byte
}

// Decode parses one v2 record out of data. data is expected to hold exactly
// one record's bytes (a caller splitting a multi-record stream uses a
// B1000-bearing record's declared record length, 2^exponent, to find each
// boundary before calling Decode); any bytes beyond the payload's natural
// end for the record's NumSamples/encoding are harmless trailing padding
// and are preserved verbatim in EncodedData rather than trimmed, since this
// library does not attempt to infer payload length independent of the
// sample codec.
func Decode(data []byte) (*Record, error) {
	h, err := unpackHeader(data)
	if err != nil {
		return nil, err
	}

	blockettes, err := walkBlockettes(data, h.FirstBlocketteOffset)
	if err != nil {
		return nil, err
	}

	dataStart := int(h.BeginningOfData)
	if dataStart <= 0 || dataStart > len(data) {
		dataStart = len(data)
	}

	id := synthesizeSourceId(h)

	return &Record{
		Header:      h,
		SourceId:    id,
		Blockettes:  blockettes,
		EncodedData: append([]byte(nil), data[dataStart:]...),
	}, nil
}

// synthesizeSourceId builds a SourceId from the header's network, station,
// location, and 3-character channel fields, decomposing the channel into
// band, source, and subsource codes.
func synthesizeSourceId(h Header) sourceid.SourceId {
	id := sourceid.SourceId{Net: h.Network, Sta: h.Station, Loc: h.Location}

	ch := h.Channel
	if len(ch) > 0 {
		id.Band = ch[0]
	}
	if len(ch) > 1 {
		id.Source = ch[1]
	}
	if len(ch) > 2 {
		id.Subsource = ch[2]
	}

	return id
}

// Encoding returns the record's payload encoding and big-endian flag, taken
// from B1000 if present. Records without a B1000 blockette have an
// unspecified encoding; callers should treat this as UnknownEncoding.
func (r *Record) Encoding() (B1000, error) {
	if r.Blockettes.B1000 == nil {
		return B1000{}, fmt.Errorf("%w: record has no B1000 blockette", errs.ErrUnknownEncoding)
	}

	return *r.Blockettes.B1000, nil
}

// SampleRate returns the record's actual sample rate: B100's override if
// present, otherwise the fixed header's factor/multiplier computation.
func (r *Record) SampleRate() float64 {
	if r.Blockettes.B100 != nil {
		return float64(r.Blockettes.B100.SampleRate)
	}

	return r.Header.NominalSampleRate()
}
