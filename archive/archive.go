// Package archive batches packed MiniSEED v3 records into a single blob for
// cold storage or transport, applying an outer compress.Codec across the
// whole batch rather than per record. A batch is a thin container: a fixed
// header naming the compression algorithm and record count, an xxhash64
// checksum of the uncompressed payload, and the (possibly compressed)
// concatenation of each record's packed bytes prefixed by its length.
package archive

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/mseedio/mseed/archive/compress"
	"github.com/mseedio/mseed/errs"
	"github.com/mseedio/mseed/format"
	"github.com/mseedio/mseed/internal/pool"
	"github.com/mseedio/mseed/v3"
)

var batchMagic = [4]byte{'M', 'S', 'B', 'A'}

const batchFormatVersion = 1

// batchHeaderSize covers magic(4) + version(1) + compression(1) + count(4) +
// checksum(8) + uncompressed length(8).
const batchHeaderSize = 4 + 1 + 1 + 4 + 8 + 8

// Write packs records, concatenates each as a length-prefixed block, and
// compresses the result with the codec for compression. The returned blob
// is self-describing: Read needs only compression to be a member of the
// same registry, not the caller to remember which algorithm was used.
func Write(records []*v3.Record, compression format.ArchiveCompression) ([]byte, error) {
	codec, err := compress.CreateCodec(compression, "archive write")
	if err != nil {
		return nil, err
	}

	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	for _, rec := range records {
		packed, err := rec.Pack()
		if err != nil {
			return nil, fmt.Errorf("archive: packing record: %w", err)
		}

		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(packed)))
		scratch.MustWrite(lenBuf[:])
		scratch.MustWrite(packed)
	}

	raw := scratch.Bytes()
	checksum := xxhash.Sum64(raw)

	compressed, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("archive: compressing batch: %w", err)
	}

	out := make([]byte, 0, batchHeaderSize+len(compressed))
	out = append(out, batchMagic[:]...)
	out = append(out, batchFormatVersion, byte(compression))

	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(records)))
	out = append(out, countBuf[:]...)

	var checksumBuf [8]byte
	binary.LittleEndian.PutUint64(checksumBuf[:], checksum)
	out = append(out, checksumBuf[:]...)

	var rawLenBuf [8]byte
	binary.LittleEndian.PutUint64(rawLenBuf[:], uint64(len(raw)))
	out = append(out, rawLenBuf[:]...)

	out = append(out, compressed...)

	return out, nil
}

// Read reverses Write: it decompresses the batch using the algorithm named
// in the header, verifies the checksum, and unpacks every record. opts are
// forwarded to v3.Unpack for each record, e.g. v3.WithLenientCRC.
func Read(blob []byte, opts ...v3.UnpackOption) ([]*v3.Record, error) {
	if len(blob) < batchHeaderSize {
		return nil, fmt.Errorf("%w: batch shorter than header", errs.ErrTruncatedRecord)
	}
	if [4]byte(blob[0:4]) != batchMagic {
		return nil, fmt.Errorf("%w: bad batch magic", errs.ErrBadBlockette)
	}
	if blob[4] != batchFormatVersion {
		return nil, fmt.Errorf("%w: batch format version %d", errs.ErrUnsupportedVersion, blob[4])
	}

	compression := format.ArchiveCompression(blob[5])
	count := binary.LittleEndian.Uint32(blob[6:10])
	wantChecksum := binary.LittleEndian.Uint64(blob[10:18])
	rawLen := binary.LittleEndian.Uint64(blob[18:26])

	codec, err := compress.CreateCodec(compression, "archive read")
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(blob[batchHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("archive: decompressing batch: %w", err)
	}
	if uint64(len(raw)) != rawLen {
		return nil, fmt.Errorf("%w: uncompressed length %d, header declared %d", errs.ErrArchiveCorrupt, len(raw), rawLen)
	}
	if xxhash.Sum64(raw) != wantChecksum {
		return nil, errs.ErrArchiveCorrupt
	}

	records := make([]*v3.Record, 0, count)
	for off := 0; off < len(raw); {
		if off+4 > len(raw) {
			return nil, fmt.Errorf("%w: truncated record length prefix", errs.ErrTruncatedRecord)
		}
		recLen := int(binary.LittleEndian.Uint32(raw[off : off+4]))
		off += 4
		if off+recLen > len(raw) {
			return nil, fmt.Errorf("%w: truncated record block", errs.ErrTruncatedRecord)
		}

		rec, remainder, err := v3.Unpack(raw[off:off+recLen], opts...)
		if err != nil {
			return nil, err
		}
		if len(remainder) != 0 {
			return nil, fmt.Errorf("%w: unpack left %d unexpected trailing bytes in batch entry", errs.ErrBadBlockette, len(remainder))
		}

		records = append(records, rec)
		off += recLen
	}

	if uint32(len(records)) != count {
		return nil, fmt.Errorf("%w: header declared %d records, found %d", errs.ErrArchiveCorrupt, count, len(records))
	}

	return records, nil
}
