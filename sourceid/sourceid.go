// Package sourceid implements FDSN source identifier parsing, formatting,
// and the sample-rate-to-band-code reasoning used when synthesizing
// identifiers during v2-to-v3 conversion and for unknown-channel sentinels.
//
// A source identifier is the canonical FDSN name for a single channel:
//
//	FDSN:NET_STA_LOC_BAND_SOURCE_SUBSOURCE
//
// Net, Sta, and Loc are short network/station/location codes; Band, Source,
// and Subsource are single-character codes describing the instrument
// response band, transducer type, and physical orientation.
package sourceid

import (
	"fmt"
	"strings"

	"github.com/mseedio/mseed/errs"
)

const scheme = "FDSN:"

// SourceId is a parsed FDSN source identifier.
type SourceId struct {
	Net       string
	Sta       string
	Loc       string
	Band      byte
	Source    byte
	Subsource byte // 0 if absent
}

// Parse decodes the canonical FDSN source identifier string form.
//
//	FDSN:NET_STA_LOC_BAND_SOURCE_SUBSOURCE
//
// Loc may be empty (rendered as the empty string between its surrounding
// underscores). Subsource may be empty; Band and Source are mandatory
// single characters.
func Parse(s string) (SourceId, error) {
	rest, ok := strings.CutPrefix(s, scheme)
	if !ok {
		return SourceId{}, fmt.Errorf("%w: missing %q scheme prefix", errs.ErrMalformedIdentifier, scheme)
	}

	fields := strings.Split(rest, "_")
	if len(fields) != 6 {
		return SourceId{}, fmt.Errorf("%w: expected 6 underscore-separated fields, got %d", errs.ErrMalformedIdentifier, len(fields))
	}

	net, sta, loc, band, source, subsource := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	if len(net) > 8 || len(sta) > 8 || len(loc) > 8 {
		return SourceId{}, fmt.Errorf("%w: net/sta/loc field exceeds 8 characters", errs.ErrMalformedIdentifier)
	}
	if len(band) != 1 {
		return SourceId{}, fmt.Errorf("%w: band code must be exactly one character, got %q", errs.ErrMalformedIdentifier, band)
	}
	if len(source) != 1 {
		return SourceId{}, fmt.Errorf("%w: source code must be exactly one character, got %q", errs.ErrMalformedIdentifier, source)
	}
	if len(subsource) > 1 {
		return SourceId{}, fmt.Errorf("%w: subsource code must be at most one character, got %q", errs.ErrMalformedIdentifier, subsource)
	}

	id := SourceId{
		Net:    net,
		Sta:    sta,
		Loc:    loc,
		Band:   band[0],
		Source: source[0],
	}
	if len(subsource) == 1 {
		id.Subsource = subsource[0]
	}

	return id, nil
}

// Format renders id in its canonical string form. It is the exact inverse
// of Parse for every value Parse can produce.
func Format(id SourceId) string {
	var sub string
	if id.Subsource != 0 {
		sub = string(id.Subsource)
	}

	return fmt.Sprintf("%s%s_%s_%s_%c_%c_%s", scheme, id.Net, id.Sta, id.Loc, id.Band, id.Source, sub)
}

// String implements fmt.Stringer using Format.
func (id SourceId) String() string {
	return Format(id)
}

// CreateUnknown returns a sentinel source identifier for a channel whose
// true network/station/location/source/subsource are not known, deriving
// only the band code from the nominal sample rate.
func CreateUnknown(rateSps float64) SourceId {
	band, err := BandCodeForRate(rateSps, nil)
	if err != nil {
		band = 'I' // "Infrasound/unknown" style catch-all is itself unknown; fall back to a stable placeholder.
	}

	return SourceId{
		Net:       "XX",
		Sta:       "UNKN",
		Loc:       "",
		Band:      band,
		Source:    'H',
		Subsource: 'U',
	}
}

// bandRow is one entry of FDSN Table B.
type bandRow struct {
	code           byte
	lo, hi         float64 // [lo, hi) in samples per second; hi == 0 means unbounded above
	broadband      bool    // true if this row applies when response period >= 10s (or is period-independent)
	periodDefined  bool    // false for M/L/V/U/R/P/T/Q rows, which do not branch on response period
}

// table is FDSN Table B, ordered from highest to lowest rate so the first
// matching row wins.
var table = []bandRow{
	{code: 'F', lo: 1000, hi: 5000, broadband: true, periodDefined: true},
	{code: 'G', lo: 1000, hi: 5000, broadband: false, periodDefined: true},
	{code: 'D', lo: 250, hi: 1000, broadband: false, periodDefined: true},
	{code: 'C', lo: 250, hi: 1000, broadband: true, periodDefined: true},
	{code: 'E', lo: 80, hi: 250, broadband: false, periodDefined: true},
	{code: 'H', lo: 80, hi: 250, broadband: true, periodDefined: true},
	{code: 'B', lo: 10, hi: 80, broadband: true, periodDefined: true},
	{code: 'S', lo: 10, hi: 80, broadband: false, periodDefined: true},
	{code: 'M', lo: 1.1, hi: 10, periodDefined: false},
	{code: 'L', lo: 0.9, hi: 1.1, periodDefined: false},
	{code: 'V', lo: 0.09, hi: 0.11, periodDefined: false},
	{code: 'U', lo: 0.009, hi: 0.011, periodDefined: false},
	{code: 'R', lo: 0.0001, hi: 0.001, periodDefined: false},
	{code: 'P', lo: 0.00001, hi: 0.0001, periodDefined: false},
	{code: 'T', lo: 0.000001, hi: 0.00001, periodDefined: false},
	{code: 'Q', lo: 0, hi: 0.000001, periodDefined: false},
}

// BandCodeForRate implements FDSN Table B: the band code for a nominal
// sample rate (samples per second) and, where the table branches on it, the
// instrument's response period in seconds.
//
// If responsePeriodS is nil, the broadband branch is selected whenever the
// rate range has one. If both a broadband and a short-period row match the
// rate (i.e. responsePeriodS is nil and the range is ambiguous), the
// broadband row is returned.
func BandCodeForRate(rateSps float64, responsePeriodS *float64) (byte, error) {
	rate := rateSps
	if rate < 0 {
		rate = -1 / rate // negative rate fields encode a period; callers normalize before calling, but tolerate raw values
	}

	var broadbandMatch, shortPeriodMatch *bandRow
	for i := range table {
		row := &table[i]
		if rate < row.lo || (row.hi > 0 && rate >= row.hi) {
			continue
		}

		if !row.periodDefined {
			return row.code, nil
		}

		if row.broadband {
			broadbandMatch = row
		} else {
			shortPeriodMatch = row
		}
	}

	switch {
	case broadbandMatch == nil && shortPeriodMatch == nil:
		return 0, fmt.Errorf("%w: no band covers rate %g sps", errs.ErrUnknownBandCode, rateSps)
	case responsePeriodS == nil:
		return broadbandMatch.code, nil
	case *responsePeriodS >= 10:
		return broadbandMatch.code, nil
	default:
		return shortPeriodMatch.code, nil
	}
}

// bandDescriptions documents the instrument-response-band meaning of each
// Table B code.
var bandDescriptions = map[byte]string{
	'F': "≥1000 to <5000 Hz, long response period (≥10s)",
	'G': "≥1000 to <5000 Hz, short response period (<10s)",
	'D': "≥250 to <1000 Hz, short response period (<10s)",
	'C': "≥250 to <1000 Hz, long response period (≥10s)",
	'E': "≥80 to <250 Hz, short response period (<10s)",
	'H': "≥80 to <250 Hz, long response period (≥10s)",
	'B': "≥10 to <80 Hz, long response period (≥10s)",
	'S': "≥10 to <80 Hz, short response period (<10s)",
	'M': "mid period, >1 to <10 Hz",
	'L': "long period, ~1 Hz",
	'V': "very long period, ~0.1 Hz",
	'U': "ultra long period, ~0.01 Hz",
	'R': "extremely long period, ≥0.0001 to <0.001 Hz",
	'P': "parabolic/extended long period, ≥0.00001 to <0.0001 Hz",
	'T': "tide, ≥0.000001 to <0.00001 Hz",
	'Q': "below 0.000001 Hz",
}

// sourceDescriptions documents common SEED instrument source codes.
var sourceDescriptions = map[byte]string{
	'H': "High Gain Seismometer",
	'L': "Low Gain Seismometer",
	'G': "Gravimeter",
	'M': "Mass Position Seismometer",
	'N': "Accelerometer",
	'P': "Geophone, short period",
	'D': "Pressure",
	'A': "Tiltmeter",
	'T': "Temperature",
	'O': "Water Current",
	'W': "Wind",
}

// DescribeBand returns the human-readable meaning of a Table B band code.
func DescribeBand(c byte) (string, error) {
	desc, ok := bandDescriptions[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownBandCode, c)
	}

	return desc, nil
}

// DescribeSource returns the human-readable meaning of a SEED source code.
func DescribeSource(c byte) (string, error) {
	desc, ok := sourceDescriptions[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownSourceCode, c)
	}

	return desc, nil
}
