package v2

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/mseedio/mseed/format"
	"github.com/stretchr/testify/require"
)

// buildRecord assembles a minimal synthetic v2 record: 48-byte fixed
// header, followed by the given blockettes (each pre-linked via its next
// offset), followed by payload bytes.
func buildRecord(t *testing.T, numBlockettes int, blockettes []byte, payload []byte, firstBlocketteOffset uint16) []byte {
	t.Helper()

	buf := make([]byte, HeaderSize)
	copy(buf[0:6], "000001")
	buf[6] = 'D'
	copy(buf[8:13], "STA  ")
	copy(buf[13:15], "00")
	copy(buf[15:18], "BHZ")
	copy(buf[18:20], "XX")
	binary.BigEndian.PutUint16(buf[20:], 2024) // year
	binary.BigEndian.PutUint16(buf[22:], 45)   // day of year
	buf[24] = 12
	buf[25] = 30
	buf[26] = 15
	binary.BigEndian.PutUint16(buf[28:], 1234) // tenth-ms
	binary.BigEndian.PutUint16(buf[30:], 100)  // num samples
	binary.BigEndian.PutUint16(buf[32:], 100)  // rate factor
	binary.BigEndian.PutUint16(buf[34:], 1)    // rate multiplier
	buf[39] = uint8(numBlockettes)
	binary.BigEndian.PutUint16(buf[46:], firstBlocketteOffset)

	full := append(buf, blockettes...)
	dataStart := uint16(len(full))
	binary.BigEndian.PutUint16(full[44:], dataStart)
	full = append(full, payload...)

	return full
}

func buildB1000(nextOffset uint16, encoding format.PayloadEncoding, bigEndian bool, lengthExp uint8) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint16(b[0:], 1000)
	binary.BigEndian.PutUint16(b[2:], nextOffset)
	b[4] = uint8(encoding)
	if bigEndian {
		b[5] = 1
	}
	b[6] = lengthExp

	return b
}

func buildB1001(nextOffset uint16, quality byte, microsec uint8, frameCount uint8) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint16(b[0:], 1001)
	binary.BigEndian.PutUint16(b[2:], nextOffset)
	b[4] = quality
	b[5] = microsec
	b[7] = frameCount

	return b
}

func buildB100(nextOffset uint16, rate float32) []byte {
	b := make([]byte, 12)
	binary.BigEndian.PutUint16(b[0:], 100)
	binary.BigEndian.PutUint16(b[2:], nextOffset)
	binary.BigEndian.PutUint32(b[4:], math.Float32bits(rate))

	return b
}

func TestDecodeRecordWithB1000AndB1001(t *testing.T) {
	b1000Offset := uint16(HeaderSize)
	b1001Offset := b1000Offset + 8

	blockettes := append(buildB1000(b1001Offset, format.EncodingSteim2, true, 9), buildB1001(0, 80, 5, 7)...)
	payload := make([]byte, 64)

	data := buildRecord(t, 2, blockettes, payload, b1000Offset)

	rec, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, "XX", rec.SourceId.Net)
	require.Equal(t, "STA", rec.SourceId.Sta)
	require.Equal(t, byte('B'), rec.SourceId.Band)
	require.Equal(t, byte('H'), rec.SourceId.Source)
	require.Equal(t, byte('Z'), rec.SourceId.Subsource)

	enc, err := rec.Encoding()
	require.NoError(t, err)
	require.Equal(t, format.EncodingSteim2, enc.Encoding)
	require.True(t, enc.BigEndian)
	require.Equal(t, 512, enc.RecordLength())

	require.NotNil(t, rec.Blockettes.B1001)
	require.Equal(t, byte(80), rec.Blockettes.B1001.TimingQuality)
	require.Equal(t, uint8(5), rec.Blockettes.B1001.MicroSecond)

	require.Len(t, rec.EncodedData, 64)
}

func TestDecodeRecordWithB100Override(t *testing.T) {
	b100Offset := uint16(HeaderSize)
	blockettes := buildB100(0, 42.5)

	data := buildRecord(t, 1, blockettes, nil, b100Offset)

	rec, err := Decode(data)
	require.NoError(t, err)
	require.InDelta(t, 42.5, rec.SampleRate(), 1e-6)
}

func TestDecodeRecordWithoutB100UsesFactorMultiplier(t *testing.T) {
	data := buildRecord(t, 0, nil, nil, 0)

	rec, err := Decode(data)
	require.NoError(t, err)
	require.InDelta(t, 100.0, rec.SampleRate(), 1e-9)
}

func TestDecodeRecordSkipsUnknownBlockette(t *testing.T) {
	unknownOffset := uint16(HeaderSize)
	b1000Offset := unknownOffset + 8

	unknown := make([]byte, 8)
	binary.BigEndian.PutUint16(unknown[0:], 399) // not semantically interpreted
	binary.BigEndian.PutUint16(unknown[2:], b1000Offset)

	blockettes := append(unknown, buildB1000(0, format.EncodingInt32, false, 9)...)
	data := buildRecord(t, 2, blockettes, nil, unknownOffset)

	rec, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, rec.Blockettes.Unknown, 1)
	require.Equal(t, uint16(399), rec.Blockettes.Unknown[0].Type)
	require.NotNil(t, rec.Blockettes.B1000)
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	_, err := Decode(make([]byte, HeaderSize-1))
	require.Error(t, err)
}

func TestDecodeRejectsBlocketteLoop(t *testing.T) {
	loopOffset := uint16(HeaderSize)
	blockettes := buildB100(loopOffset, 1.0) // points to itself

	data := buildRecord(t, 1, blockettes, nil, loopOffset)
	_, err := Decode(data)
	require.Error(t, err)
}

func TestEncodingErrorsWithoutB1000(t *testing.T) {
	data := buildRecord(t, 0, nil, nil, 0)
	rec, err := Decode(data)
	require.NoError(t, err)

	_, err = rec.Encoding()
	require.Error(t, err)
}
