// Package v2 implements read-only decoding of legacy MiniSEED v2 records:
// the 48-byte fixed header, the blockette chain, and the subset of
// blockettes (100, 1000, 1001) this library assigns semantics to.
package v2

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/mseedio/mseed/errs"
	"github.com/mseedio/mseed/seedtime"
)

// HeaderSize is the fixed size, in bytes, of a MiniSEED v2 record header.
const HeaderSize = 48

// Header is the 48-byte fixed section of a MiniSEED v2 data record, per the
// SEED manual. All multi-byte integer fields are big-endian.
type Header struct {
	SequenceNumber       string
	DataQualityIndicator byte
	Station              string
	Location             string
	Channel              string
	Network              string
	StartTime            seedtime.BTime
	NumSamples           uint16
	SampleRateFactor     int16
	SampleRateMultiplier int16
	ActivityFlags        byte
	IOFlags              byte
	DataQualityFlags     byte
	NumBlockettesFollow  uint8
	TimeCorrection       int32
	BeginningOfData      uint16
	FirstBlocketteOffset uint16
}

// unpackHeader parses the 48-byte fixed header from the front of data.
func unpackHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: need %d bytes for fixed header, got %d", errs.ErrTruncatedRecord, HeaderSize, len(data))
	}

	h := Header{
		SequenceNumber:       strings.TrimRight(string(data[0:6]), " "),
		DataQualityIndicator: data[6],
		Station:              strings.TrimRight(string(data[8:13]), " "),
		Location:             strings.TrimRight(string(data[13:15]), " "),
		Channel:              strings.TrimRight(string(data[15:18]), " "),
		Network:              strings.TrimRight(string(data[18:20]), " "),
		StartTime: seedtime.BTime{
			Year:        binary.BigEndian.Uint16(data[20:]),
			DayOfYear:   binary.BigEndian.Uint16(data[22:]),
			Hour:        data[24],
			Minute:      data[25],
			Second:      data[26],
			Unused:      data[27],
			TenthMillis: binary.BigEndian.Uint16(data[28:]),
		},
		NumSamples:           binary.BigEndian.Uint16(data[30:]),
		SampleRateFactor:     int16(binary.BigEndian.Uint16(data[32:])),
		SampleRateMultiplier: int16(binary.BigEndian.Uint16(data[34:])),
		ActivityFlags:        data[36],
		IOFlags:              data[37],
		DataQualityFlags:     data[38],
		NumBlockettesFollow:  data[39],
		TimeCorrection:       int32(binary.BigEndian.Uint32(data[40:])),
		BeginningOfData:      binary.BigEndian.Uint16(data[44:]),
		FirstBlocketteOffset: binary.BigEndian.Uint16(data[46:]),
	}

	return h, nil
}

// NominalSampleRate computes the sample rate in samples/second from the
// fixed header's factor/multiplier pair using the standard BTIME formula,
// ignoring any B100 override.
func (h Header) NominalSampleRate() float64 {
	f, m := float64(h.SampleRateFactor), float64(h.SampleRateMultiplier)

	switch {
	case f == 0 || m == 0:
		return 0
	case f > 0 && m > 0:
		return f * m
	case f > 0 && m < 0:
		return f / -m
	case f < 0 && m > 0:
		return m / -f
	default: // f < 0 && m < 0
		return 1 / (f * m)
	}
}

// StartInstant returns the header's nominal start time.
func (h Header) StartInstant() seedtime.Instant {
	return seedtime.FromBTime(h.StartTime)
}
