package v3

import (
	"fmt"
	"hash/crc32"

	"github.com/mseedio/mseed/errs"
	"github.com/mseedio/mseed/sourceid"
	"github.com/mseedio/mseed/xheader"
)

// castagnoliTable computes CRC32C (Castagnoli) checksums, the integrity
// check mandated for every MiniSEED v3 record.
//
// The standard library's hash/crc32 is hardware-accelerated for the
// Castagnoli polynomial on amd64/arm64 (it detects CRC32 instruction
// support at init time), and no third-party CRC32C implementation appears
// anywhere in the reference corpus; xxhash and the other hashing libraries
// available are general-purpose, non-standard checksums unsuitable for a
// format that mandates CRC32C specifically.
var castagnoliTable = crc32.MakeTable(crc32.Castagnoli)

// Record is the in-memory model of a single MiniSEED v3 record.
type Record struct {
	Header       Header
	SourceId     sourceid.SourceId
	ExtraHeaders *xheader.Tree // nil is treated as empty
	EncodedData  []byte
}

// crcFieldOffset is the byte offset of the CRC field within the fixed header.
const crcFieldOffset = 28

// Pack serializes the record to its wire representation: fixed header,
// source identifier bytes, extra header JSON, then the data payload, with
// CRC32C computed over the whole buffer (CRC field zeroed during the
// computation) and written back into the result.
func (r *Record) Pack() ([]byte, error) {
	idBytes := []byte(sourceid.Format(r.SourceId))
	if len(idBytes) > 255 {
		return nil, fmt.Errorf("%w: source identifier %d bytes exceeds 255", errs.ErrFieldOutOfRange, len(idBytes))
	}

	ehBytes, err := r.extraHeaderBytes()
	if err != nil {
		return nil, err
	}

	h := r.Header
	h.FormatVersion = FormatVersion
	h.IdentifierLength = uint8(len(idBytes))
	h.ExtraHeaderLength = uint16(len(ehBytes))
	h.DataLength = uint32(len(r.EncodedData))
	h.CRC = 0

	buf := make([]byte, 0, HeaderSize+len(idBytes)+len(ehBytes)+len(r.EncodedData))
	buf = append(buf, packHeader(h)...)
	buf = append(buf, idBytes...)
	buf = append(buf, ehBytes...)
	buf = append(buf, r.EncodedData...)

	crc := crc32.Checksum(buf, castagnoliTable)
	buf[crcFieldOffset] = byte(crc)
	buf[crcFieldOffset+1] = byte(crc >> 8)
	buf[crcFieldOffset+2] = byte(crc >> 16)
	buf[crcFieldOffset+3] = byte(crc >> 24)

	return buf, nil
}

func (r *Record) extraHeaderBytes() ([]byte, error) {
	if r.ExtraHeaders == nil || r.ExtraHeaders.IsEmpty() {
		return nil, nil
	}

	return r.ExtraHeaders.MarshalJSON()
}

// UnpackConfig controls CRC verification policy for Unpack.
type UnpackConfig struct {
	lenientCRC bool
}

// UnpackOption configures Unpack.
type UnpackOption = func(*UnpackConfig)

// WithLenientCRC disables CRC mismatch errors: the record is still returned,
// but its CRC is not validated. Used by fail-fast-averse streaming readers.
func WithLenientCRC() UnpackOption {
	return func(c *UnpackConfig) { c.lenientCRC = true }
}

// Unpack parses one record from the front of data and returns it along with
// the remaining bytes following the record. It fails with ErrTruncatedRecord
// if data is shorter than the length declared by the fixed header, and with
// ErrCrcMismatch if the computed CRC32C disagrees with the stored one,
// unless WithLenientCRC is given.
func Unpack(data []byte, opts ...UnpackOption) (*Record, []byte, error) {
	cfg := UnpackConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	h, err := unpackHeader(data)
	if err != nil {
		return nil, nil, err
	}

	total := HeaderSize + int(h.IdentifierLength) + int(h.ExtraHeaderLength) + int(h.DataLength)
	if len(data) < total {
		return nil, nil, fmt.Errorf("%w: declared record length %d, have %d bytes", errs.ErrTruncatedRecord, total, len(data))
	}

	record := data[:total]

	if !cfg.lenientCRC {
		if err := verifyCRC(record, h.CRC); err != nil {
			return nil, nil, err
		}
	}

	off := HeaderSize
	idBytes := record[off : off+int(h.IdentifierLength)]
	off += int(h.IdentifierLength)
	ehBytes := record[off : off+int(h.ExtraHeaderLength)]
	off += int(h.ExtraHeaderLength)
	payload := record[off : off+int(h.DataLength)]

	id, err := sourceid.Parse(string(idBytes))
	if err != nil {
		return nil, nil, err
	}

	tree, err := xheader.FromJSON(ehBytes)
	if err != nil {
		return nil, nil, err
	}

	out := &Record{
		Header:       h,
		SourceId:     id,
		ExtraHeaders: tree,
		EncodedData:  append([]byte(nil), payload...),
	}

	return out, data[total:], nil
}

func verifyCRC(record []byte, want uint32) error {
	scratch := append([]byte(nil), record...)
	scratch[crcFieldOffset] = 0
	scratch[crcFieldOffset+1] = 0
	scratch[crcFieldOffset+2] = 0
	scratch[crcFieldOffset+3] = 0

	got := crc32.Checksum(scratch, castagnoliTable)
	if got != want {
		return fmt.Errorf("%w: computed 0x%08x, header says 0x%08x", errs.ErrCrcMismatch, got, want)
	}

	return nil
}

// ContentHash returns a non-cryptographic fingerprint of the record's
// packed bytes, for deduplication and test-fixture comparison. Two records
// that pack identically (including CRC) hash identically.
func (r *Record) ContentHash() (uint64, error) {
	packed, err := r.Pack()
	if err != nil {
		return 0, err
	}

	return contentHash(packed), nil
}
