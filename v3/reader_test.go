package v3

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderStreamsMultipleRecords(t *testing.T) {
	rec1 := buildTestRecord(t)
	rec2 := buildTestRecord(t)
	rec2.Header.NumSamples = rec1.Header.NumSamples

	p1, err := rec1.Pack()
	require.NoError(t, err)
	p2, err := rec2.Pack()
	require.NoError(t, err)

	r := NewReader(bytes.NewReader(append(append([]byte(nil), p1...), p2...)))

	got1, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, rec1.SourceId, got1.SourceId)

	got2, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, rec2.SourceId, got2.SourceId)

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderTruncatedRecordBody(t *testing.T) {
	rec := buildTestRecord(t)
	packed, err := rec.Pack()
	require.NoError(t, err)

	r := NewReader(bytes.NewReader(packed[:len(packed)-5]))

	_, err = r.Next()
	require.Error(t, err)
	require.NotErrorIs(t, err, io.EOF)
}

func TestReaderTruncatedHeaderIsCleanEOFOnlyAtBoundary(t *testing.T) {
	rec := buildTestRecord(t)
	packed, err := rec.Pack()
	require.NoError(t, err)

	r := NewReader(bytes.NewReader(packed[:HeaderSize-1]))
	_, err = r.Next()
	require.Error(t, err)
	require.NotErrorIs(t, err, io.EOF)
}

func TestReaderAllIterator(t *testing.T) {
	rec1 := buildTestRecord(t)
	rec2 := buildTestRecord(t)

	p1, err := rec1.Pack()
	require.NoError(t, err)
	p2, err := rec2.Pack()
	require.NoError(t, err)

	r := NewReader(bytes.NewReader(append(append([]byte(nil), p1...), p2...)))

	var count int
	for record, err := range r.All() {
		require.NoError(t, err)
		require.NotNil(t, record)
		count++
	}
	require.Equal(t, 2, count)
}

func TestReaderAllStopsEarly(t *testing.T) {
	rec1 := buildTestRecord(t)
	rec2 := buildTestRecord(t)

	p1, err := rec1.Pack()
	require.NoError(t, err)
	p2, err := rec2.Pack()
	require.NoError(t, err)

	r := NewReader(bytes.NewReader(append(append([]byte(nil), p1...), p2...)))

	var count int
	for range r.All() {
		count++
		break
	}
	require.Equal(t, 1, count)
}
