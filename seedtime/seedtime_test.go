package seedtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBTimeRoundTrip(t *testing.T) {
	b := BTime{Year: 2024, DayOfYear: 1, Hour: 15, Minute: 13, Second: 55, TenthMillis: 1234}
	inst := FromBTime(b)
	require.Equal(t, 123_400_000, inst.Nanosecond)

	back := ToBTime(inst)
	require.Equal(t, b, back)
}

func TestV3TimeRoundTrip(t *testing.T) {
	v := V3Time{Year: 2024, DayOfYear: 1, Hour: 15, Minute: 13, Second: 55, Nanosecond: 123_456_789}
	inst := FromV3Time(v)
	back := ToV3Time(inst)
	require.Equal(t, v, back)
}

func TestSamplePeriodSeconds(t *testing.T) {
	require.InDelta(t, 0.01, SamplePeriodSeconds(100), 1e-12)
	require.InDelta(t, 20, SamplePeriodSeconds(-20), 1e-12)
}

func TestAddSamplesAdvancesWallClock(t *testing.T) {
	start := Instant{Year: 2024, DayOfYear: 1, Hour: 0, Minute: 0, Second: 0, Nanosecond: 0}

	next := AddSamples(start, 1.0, 61)
	require.Equal(t, 0, next.Hour)
	require.Equal(t, 1, next.Minute)
	require.Equal(t, 1, next.Second)
}

func TestAddSamplesCrossesYearBoundary(t *testing.T) {
	start := Instant{Year: 2023, DayOfYear: 365, Hour: 23, Minute: 59, Second: 59, Nanosecond: 0}

	next := AddSamples(start, 1.0, 1)
	require.Equal(t, 2024, next.Year)
	require.Equal(t, 1, next.DayOfYear)
	require.Equal(t, 0, next.Hour)
	require.Equal(t, 0, next.Minute)
	require.Equal(t, 0, next.Second)
}

func TestLeapSecondPreservedButNotReinserted(t *testing.T) {
	start := Instant{Year: 2024, DayOfYear: 182, Hour: 23, Minute: 59, Second: 60, Nanosecond: 0}
	require.NoError(t, start.Validate())

	next := AddSamples(start, 1.0, 1)
	require.Equal(t, 1, next.Second, "arithmetic never reproduces a literal 60")
	require.Equal(t, 183, next.DayOfYear)
}

func TestCompareAndDiff(t *testing.T) {
	a := Instant{Year: 2024, DayOfYear: 1, Second: 10}
	b := Instant{Year: 2024, DayOfYear: 1, Second: 5}

	require.Equal(t, 1, Compare(a, b))
	require.Equal(t, -1, Compare(b, a))
	require.Equal(t, 0, Compare(a, a))
	require.InDelta(t, 5.0, DiffSeconds(a, b), 1e-9)
}

func TestEndTime(t *testing.T) {
	start := Instant{Year: 2024, DayOfYear: 1}
	end := EndTime(start, 0.01, 1000)
	require.InDelta(t, 9.99, DiffSeconds(end, start), 1e-9)
}
