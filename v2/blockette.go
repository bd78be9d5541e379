package v2

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/mseedio/mseed/errs"
	"github.com/mseedio/mseed/format"
)

// Blockette type codes this library assigns semantics to.
const (
	blocketteTypeB100  = 100
	blocketteTypeB1000 = 1000
	blocketteTypeB1001 = 1001
)

// UnknownBlockette records the type and byte offset of a blockette this
// library does not interpret, so callers can see what was skipped.
type UnknownBlockette struct {
	Type   uint16
	Offset int
}

// B100 is blockette type 100: an authoritative sample rate override.
type B100 struct {
	SampleRate float32
}

// B1000 is blockette type 1000: data-only SEED blockette carrying the
// payload encoding, byte order, and record length.
type B1000 struct {
	Encoding             format.PayloadEncoding
	BigEndian            bool
	RecordLengthExponent uint8
}

// RecordLength returns 2^RecordLengthExponent, the declared record size in
// bytes.
func (b B1000) RecordLength() int { return 1 << b.RecordLengthExponent }

// B1001 is blockette type 1001: data extension carrying timing quality and
// a sub-tenth-millisecond time correction. MicroSecond is an additional
// offset, in microseconds, added to the BTIME-derived start time; it is
// unsigned here since this library has only ever observed and tested
// non-negative corrections.
type B1001 struct {
	TimingQuality byte
	MicroSecond   uint8
	FrameCount    uint8
}

// Blockettes is the result of walking a record's blockette chain: the
// semantically processed blockettes (last-wins if a type repeats, per this
// library's documented behavior for ambiguous multiple B1000 occurrences)
// plus a list of the ones it chose not to interpret.
type Blockettes struct {
	B100    *B100
	B1000   *B1000
	B1001   *B1001
	Unknown []UnknownBlockette
}

// walkBlockettes follows the blockette chain starting at firstOffset within
// record (the full record buffer, header included), stopping at a zero next
// offset. It never fails on an unrecognized blockette type; it fails only if
// the chain itself is structurally broken (an offset that runs past the end
// of the record, a declared blockette shorter than its minimum size, or a
// chain that loops back to an offset it already visited).
func walkBlockettes(record []byte, firstOffset uint16) (Blockettes, error) {
	var out Blockettes

	offset := int(firstOffset)
	seen := make(map[int]bool)

	for offset != 0 {
		if seen[offset] {
			return out, fmt.Errorf("%w: blockette chain loops back to offset %d", errs.ErrBadBlockette, offset)
		}
		seen[offset] = true

		if offset < 0 || offset+4 > len(record) {
			return out, fmt.Errorf("%w: blockette offset %d out of range", errs.ErrBadBlockette, offset)
		}

		typ := binary.BigEndian.Uint16(record[offset:])
		next := binary.BigEndian.Uint16(record[offset+2:])

		switch typ {
		case blocketteTypeB100:
			b, err := parseB100(record, offset)
			if err != nil {
				return out, err
			}
			out.B100 = &b
		case blocketteTypeB1000:
			b, err := parseB1000(record, offset)
			if err != nil {
				return out, err
			}
			out.B1000 = &b // last occurrence wins
		case blocketteTypeB1001:
			b, err := parseB1001(record, offset)
			if err != nil {
				return out, err
			}
			out.B1001 = &b
		default:
			out.Unknown = append(out.Unknown, UnknownBlockette{Type: typ, Offset: offset})
		}

		if int(next) == offset {
			return out, fmt.Errorf("%w: blockette at offset %d points to itself", errs.ErrBadBlockette, offset)
		}
		offset = int(next)
	}

	return out, nil
}

func parseB100(record []byte, offset int) (B100, error) {
	const size = 12
	if offset+size > len(record) {
		return B100{}, fmt.Errorf("%w: B100 truncated at offset %d", errs.ErrBadBlockette, offset)
	}

	bits := binary.BigEndian.Uint32(record[offset+4:])

	return B100{SampleRate: math.Float32frombits(bits)}, nil
}

func parseB1000(record []byte, offset int) (B1000, error) {
	const size = 8
	if offset+size > len(record) {
		return B1000{}, fmt.Errorf("%w: B1000 truncated at offset %d", errs.ErrBadBlockette, offset)
	}

	return B1000{
		Encoding:             format.PayloadEncoding(record[offset+4]),
		BigEndian:            record[offset+5] == 1,
		RecordLengthExponent: record[offset+6],
	}, nil
}

func parseB1001(record []byte, offset int) (B1001, error) {
	const size = 8
	if offset+size > len(record) {
		return B1001{}, fmt.Errorf("%w: B1001 truncated at offset %d", errs.ErrBadBlockette, offset)
	}

	return B1001{
		TimingQuality: record[offset+4],
		MicroSecond:   record[offset+5],
		FrameCount:    record[offset+7],
	}, nil
}
