package archive

import (
	"testing"

	"github.com/mseedio/mseed/format"
	"github.com/mseedio/mseed/sourceid"
	"github.com/mseedio/mseed/v3"
	"github.com/stretchr/testify/require"
)

func buildRecord(t *testing.T, stationSamples []int32) *v3.Record {
	t.Helper()

	id, err := sourceid.Parse("FDSN:XX_TEST__B_H_Z")
	require.NoError(t, err)

	payload, err := v3.EncodeInt32Samples(stationSamples, format.EncodingInt32)
	require.NoError(t, err)

	var h v3.Header
	h.FormatVersion = v3.FormatVersion
	h.SampleRateOrPeriod = 100.0

	return v3.NewRecord(h, id, nil, format.EncodingInt32, len(stationSamples), payload)
}

func TestWriteReadRoundTripEachCompression(t *testing.T) {
	records := []*v3.Record{
		buildRecord(t, []int32{1, 2, 3, 4, 5}),
		buildRecord(t, []int32{6, 7, 8, 9, 10, 11, 12}),
	}

	for _, compression := range []format.ArchiveCompression{
		format.ArchiveNone, format.ArchiveZstd, format.ArchiveS2, format.ArchiveLZ4,
	} {
		t.Run(compression.String(), func(t *testing.T) {
			blob, err := Write(records, compression)
			require.NoError(t, err)

			got, err := Read(blob)
			require.NoError(t, err)
			require.Len(t, got, 2)

			for i, rec := range got {
				samples, err := v3.DecodeInt32Samples(rec)
				require.NoError(t, err)

				want, err := v3.DecodeInt32Samples(records[i])
				require.NoError(t, err)
				require.Equal(t, want, samples)
			}
		})
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	blob, err := Write([]*v3.Record{buildRecord(t, []int32{1, 2, 3})}, format.ArchiveNone)
	require.NoError(t, err)

	blob[0] = 'X'
	_, err = Read(blob)
	require.Error(t, err)
}

func TestReadRejectsCorruptedPayload(t *testing.T) {
	blob, err := Write([]*v3.Record{buildRecord(t, []int32{1, 2, 3, 4, 5, 6, 7, 8})}, format.ArchiveNone)
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0xFF
	_, err = Read(blob)
	require.Error(t, err)
}

func TestReadRejectsTruncatedBlob(t *testing.T) {
	_, err := Read([]byte{'M', 'S', 'B', 'A'})
	require.Error(t, err)
}

func TestWriteRejectsUnknownCompression(t *testing.T) {
	_, err := Write(nil, format.ArchiveCompression(99))
	require.Error(t, err)
}
