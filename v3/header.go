// Package v3 implements the MiniSEED v3 fixed header, full record pack/unpack
// with CRC32C integrity, and a streaming reader over a sequence of records.
package v3

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/mseedio/mseed/errs"
	"github.com/mseedio/mseed/format"
	"github.com/mseedio/mseed/seedtime"
)

// HeaderSize is the fixed size, in bytes, of a MiniSEED v3 record header.
const HeaderSize = 40

// FormatVersion is the only format version byte this package understands.
const FormatVersion = 3

var recordIndicator = [2]byte{'M', 'S'}

// Header is the 40-byte fixed header of a MiniSEED v3 record. All numeric
// fields are little-endian on the wire.
type Header struct {
	FormatVersion      uint8
	Flags              uint8
	Nanosecond         uint32
	Year               uint16
	DayOfYear          uint16
	Hour               uint8
	Minute             uint8
	Second             uint8
	Encoding           format.PayloadEncoding
	SampleRateOrPeriod float64
	NumSamples         uint32
	CRC                uint32
	PublicationVersion uint8
	IdentifierLength   uint8
	ExtraHeaderLength  uint16
	DataLength         uint32
}

// StartTime returns the header's start time as a seedtime.Instant.
func (h Header) StartTime() seedtime.Instant {
	return seedtime.FromV3Time(seedtime.V3Time{
		Year:       h.Year,
		DayOfYear:  h.DayOfYear,
		Hour:       h.Hour,
		Minute:     h.Minute,
		Second:     h.Second,
		Nanosecond: h.Nanosecond,
	})
}

// SetStartTime overwrites the header's start time fields from t.
func (h *Header) SetStartTime(t seedtime.Instant) {
	v3t := seedtime.ToV3Time(t)
	h.Year = v3t.Year
	h.DayOfYear = v3t.DayOfYear
	h.Hour = v3t.Hour
	h.Minute = v3t.Minute
	h.Second = v3t.Second
	h.Nanosecond = v3t.Nanosecond
}

// SamplePeriodSeconds returns the inter-sample period derived from
// SampleRateOrPeriod.
func (h Header) SamplePeriodSeconds() float64 {
	return seedtime.SamplePeriodSeconds(h.SampleRateOrPeriod)
}

// EndTime returns the start time of the record's final sample and true, or
// the zero Instant and false if the header has fewer than one sample.
func (h Header) EndTime() (seedtime.Instant, bool) {
	if h.NumSamples < 1 {
		return seedtime.Instant{}, false
	}

	return seedtime.EndTime(h.StartTime(), h.SamplePeriodSeconds(), int(h.NumSamples)), true
}

// packHeader serializes h into exactly HeaderSize bytes. The CRC field is
// written verbatim from h.CRC; callers computing a fresh CRC must zero it
// before calling and overwrite bytes [28:32] of the result afterward.
func packHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)

	buf[0], buf[1] = recordIndicator[0], recordIndicator[1]
	buf[2] = h.FormatVersion
	buf[3] = h.Flags
	binary.LittleEndian.PutUint32(buf[4:], h.Nanosecond)
	binary.LittleEndian.PutUint16(buf[8:], h.Year)
	binary.LittleEndian.PutUint16(buf[10:], h.DayOfYear)
	buf[12] = h.Hour
	buf[13] = h.Minute
	buf[14] = h.Second
	buf[15] = uint8(h.Encoding)
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(h.SampleRateOrPeriod))
	binary.LittleEndian.PutUint32(buf[24:], h.NumSamples)
	binary.LittleEndian.PutUint32(buf[28:], h.CRC)
	buf[32] = h.PublicationVersion
	buf[33] = h.IdentifierLength
	binary.LittleEndian.PutUint16(buf[34:], h.ExtraHeaderLength)
	binary.LittleEndian.PutUint32(buf[36:], h.DataLength)

	return buf
}

// unpackHeader parses the fixed 40-byte header from the front of data.
func unpackHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: need %d bytes for fixed header, got %d", errs.ErrTruncatedRecord, HeaderSize, len(data))
	}

	if data[0] != recordIndicator[0] || data[1] != recordIndicator[1] {
		return Header{}, fmt.Errorf("%w: missing \"MS\" record indicator", errs.ErrBadBlockette)
	}

	h := Header{
		FormatVersion:      data[2],
		Flags:              data[3],
		Nanosecond:         binary.LittleEndian.Uint32(data[4:]),
		Year:               binary.LittleEndian.Uint16(data[8:]),
		DayOfYear:          binary.LittleEndian.Uint16(data[10:]),
		Hour:               data[12],
		Minute:             data[13],
		Second:             data[14],
		Encoding:           format.PayloadEncoding(data[15]),
		SampleRateOrPeriod: math.Float64frombits(binary.LittleEndian.Uint64(data[16:])),
		NumSamples:         binary.LittleEndian.Uint32(data[24:]),
		CRC:                binary.LittleEndian.Uint32(data[28:]),
		PublicationVersion: data[32],
		IdentifierLength:   data[33],
		ExtraHeaderLength:  binary.LittleEndian.Uint16(data[34:]),
		DataLength:         binary.LittleEndian.Uint32(data[36:]),
	}

	if h.FormatVersion != FormatVersion {
		return Header{}, fmt.Errorf("%w: format version %d", errs.ErrUnsupportedVersion, h.FormatVersion)
	}

	return h, nil
}
