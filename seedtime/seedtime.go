// Package seedtime converts between the packed time representations used by
// MiniSEED v2 (BTIME) and v3 (nanosecond-precision calendar time), and
// derives per-sample timestamps from a record's nominal sample rate.
//
// Leap seconds are preserved verbatim: the Second field of an Instant may
// read 60, and arithmetic never inserts or removes a leap second on its own
// initiative. Forward arithmetic (adding a sample period to a start time)
// uses a uniform 60-seconds-per-minute carry; it does not renormalize
// against UTC.
package seedtime

import (
	"fmt"
	"math"

	"github.com/mseedio/mseed/errs"
)

// epochYear anchors the internal absolute-nanosecond arithmetic. It has no
// significance beyond being a convenient, arbitrary fixed point; callers
// never observe it directly.
const epochYear = 1900

// Instant is a nanosecond-precision calendar timestamp in the representation
// shared by MiniSEED v2 and v3: a year, a day-of-year (1-based), a
// wall-clock hour/minute/second, and a nanosecond fraction.
//
// Second may equal 60 to represent a leap second, per the BTIME/v3 time
// convention; Nanosecond is always in [0, 1e9).
type Instant struct {
	Year       int
	DayOfYear  int
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// BTime is the 10-byte packed time structure used by MiniSEED v2 fixed
// headers: year, day-of-year, hour, minute, second, an unused byte, and a
// fractional-second field in units of 1/10 millisecond (100 microseconds).
type BTime struct {
	Year        uint16
	DayOfYear   uint16
	Hour        uint8
	Minute      uint8
	Second      uint8
	Unused      uint8
	TenthMillis uint16
}

// V3Time is the packed time representation embedded in a MiniSEED v3 fixed
// header: year, day-of-year, hour, minute, second, and a full nanosecond
// fraction.
type V3Time struct {
	Year       uint16
	DayOfYear  uint16
	Hour       uint8
	Minute     uint8
	Second     uint8
	Nanosecond uint32
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInYear(year int) int {
	if isLeapYear(year) {
		return 366
	}

	return 365
}

// Validate checks that an Instant's fields are within their legal domains.
func (t Instant) Validate() error {
	if t.DayOfYear < 1 || t.DayOfYear > 366 {
		return fmt.Errorf("%w: day-of-year %d", errs.ErrFieldOutOfRange, t.DayOfYear)
	}
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("%w: hour %d", errs.ErrFieldOutOfRange, t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: minute %d", errs.ErrFieldOutOfRange, t.Minute)
	}
	if t.Second < 0 || t.Second > 60 {
		return fmt.Errorf("%w: second %d", errs.ErrFieldOutOfRange, t.Second)
	}
	if t.Nanosecond < 0 || t.Nanosecond >= 1_000_000_000 {
		return fmt.Errorf("%w: nanosecond %d", errs.ErrFieldOutOfRange, t.Nanosecond)
	}

	return nil
}

// toAbsoluteNanos converts an Instant to a signed nanosecond count relative
// to an arbitrary internal epoch. It never normalizes a 60-valued Second;
// the leap second simply contributes one extra second of offset.
func toAbsoluteNanos(t Instant) int64 {
	var days int64
	if t.Year >= epochYear {
		for y := epochYear; y < t.Year; y++ {
			days += int64(daysInYear(y))
		}
	} else {
		for y := t.Year; y < epochYear; y++ {
			days -= int64(daysInYear(y))
		}
	}
	days += int64(t.DayOfYear - 1)

	secs := days*86400 + int64(t.Hour)*3600 + int64(t.Minute)*60 + int64(t.Second)

	return secs*1_000_000_000 + int64(t.Nanosecond)
}

// fromAbsoluteNanos is the inverse of toAbsoluteNanos. It always normalizes
// to Second in [0, 59]; a leap second present in the input to
// toAbsoluteNanos is consumed as one extra second of forward offset and does
// not reappear as Second == 60 here, consistent with the "no UTC
// normalization, uniform 60s/minute" arithmetic model.
func fromAbsoluteNanos(ns int64) Instant {
	secs := ns / 1_000_000_000
	nanos := ns % 1_000_000_000
	if nanos < 0 {
		nanos += 1_000_000_000
		secs--
	}

	days := secs / 86400
	rem := secs % 86400
	if rem < 0 {
		rem += 86400
		days--
	}

	year := epochYear
	for {
		n := int64(daysInYear(year))
		if days >= n {
			days -= n
			year++

			continue
		}
		if days < 0 {
			year--
			days += int64(daysInYear(year))

			continue
		}

		break
	}

	return Instant{
		Year:       year,
		DayOfYear:  int(days) + 1,
		Hour:       int(rem / 3600),
		Minute:     int((rem % 3600) / 60),
		Second:     int(rem % 60),
		Nanosecond: int(nanos),
	}
}

// FromBTime converts a v2 BTIME field to an Instant. The tenth-millisecond
// field is multiplied by 1e5 to produce nanoseconds.
func FromBTime(b BTime) Instant {
	return Instant{
		Year:       int(b.Year),
		DayOfYear:  int(b.DayOfYear),
		Hour:       int(b.Hour),
		Minute:     int(b.Minute),
		Second:     int(b.Second),
		Nanosecond: int(b.TenthMillis) * 100_000,
	}
}

// ToBTime converts an Instant to a v2 BTIME field, truncating nanosecond
// precision down to a whole 1/10 millisecond (no rounding).
func ToBTime(t Instant) BTime {
	return BTime{
		Year:        uint16(t.Year),
		DayOfYear:   uint16(t.DayOfYear),
		Hour:        uint8(t.Hour),
		Minute:      uint8(t.Minute),
		Second:      uint8(t.Second),
		TenthMillis: uint16(t.Nanosecond / 100_000),
	}
}

// FromV3Time converts a v3 packed time field to an Instant.
func FromV3Time(v V3Time) Instant {
	return Instant{
		Year:       int(v.Year),
		DayOfYear:  int(v.DayOfYear),
		Hour:       int(v.Hour),
		Minute:     int(v.Minute),
		Second:     int(v.Second),
		Nanosecond: int(v.Nanosecond),
	}
}

// ToV3Time converts an Instant to a v3 packed time field.
func ToV3Time(t Instant) V3Time {
	return V3Time{
		Year:       uint16(t.Year),
		DayOfYear:  uint16(t.DayOfYear),
		Hour:       uint8(t.Hour),
		Minute:     uint8(t.Minute),
		Second:     uint8(t.Second),
		Nanosecond: uint32(t.Nanosecond),
	}
}

// SamplePeriodSeconds derives the inter-sample period, in seconds, from a
// record's sample-rate-or-period field: a positive value is samples per
// second (period = 1/rate); a negative value is the period itself, in
// seconds, stored negated.
func SamplePeriodSeconds(rateOrPeriod float64) float64 {
	if rateOrPeriod > 0 {
		return 1 / rateOrPeriod
	}

	return -rateOrPeriod
}

// AddSamples returns the start time of the sample at the given index after
// start, given the record's sample period in seconds. The offset is
// index*period computed in float64 and rounded to the nearest nanosecond;
// it is not exact rational arithmetic, so very large indices can be off by
// the float64 rounding error of that product.
func AddSamples(start Instant, periodSeconds float64, index int) Instant {
	offsetNanos := int64(math.Round(float64(index) * periodSeconds * 1e9))

	return fromAbsoluteNanos(toAbsoluteNanos(start) + offsetNanos)
}

// AddNanoseconds returns t offset by ns nanoseconds (which may be negative),
// used by v2-to-v3 conversion to fold a blockette 1001 microsecond
// correction into a BTIME-derived start time.
func AddNanoseconds(t Instant, ns int64) Instant {
	return fromAbsoluteNanos(toAbsoluteNanos(t) + ns)
}

// EndTime returns the start time of the final sample of a record with
// numSamples samples and the given sample period, i.e.
// start + (numSamples-1)*period. Callers must not call this with
// numSamples < 1.
func EndTime(start Instant, periodSeconds float64, numSamples int) Instant {
	return AddSamples(start, periodSeconds, numSamples-1)
}

// Compare returns -1, 0, or 1 as a is before, equal to, or after b.
func Compare(a, b Instant) int {
	an, bn := toAbsoluteNanos(a), toAbsoluteNanos(b)
	switch {
	case an < bn:
		return -1
	case an > bn:
		return 1
	default:
		return 0
	}
}

// DiffSeconds returns a-b, in seconds, as a float64.
func DiffSeconds(a, b Instant) float64 {
	return float64(toAbsoluteNanos(a)-toAbsoluteNanos(b)) / 1e9
}
