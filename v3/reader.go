package v3

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/mseedio/mseed/errs"
)

// Reader is a pull-based, non-buffering iterator over a sequence of
// concatenated MiniSEED v3 records read from an io.Reader. It holds at most
// one record's worth of bytes in memory at a time. It is not safe for
// restart: exhausting or abandoning a Reader requires the caller to re-open
// the underlying stream.
type Reader struct {
	r    io.Reader
	opts []UnpackOption
}

// NewReader wraps r as a record stream. opts are forwarded to Unpack for
// every record, e.g. WithLenientCRC.
func NewReader(r io.Reader, opts ...UnpackOption) *Reader {
	return &Reader{r: r, opts: opts}
}

// Next reads and unpacks the next record from the stream. It returns
// io.EOF, unwrapped, when the stream ends cleanly between records. A short
// read in the middle of a record surfaces as ErrTruncatedRecord, not io.EOF.
func (rd *Reader) Next() (*Record, error) {
	head := make([]byte, HeaderSize)
	if _, err := io.ReadFull(rd.r, head); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: short header read", errs.ErrTruncatedRecord)
		}

		return nil, err
	}

	h, err := unpackHeader(head)
	if err != nil {
		return nil, err
	}

	restLen := int(h.IdentifierLength) + int(h.ExtraHeaderLength) + int(h.DataLength)
	rest := make([]byte, restLen)
	if _, err := io.ReadFull(rd.r, rest); err != nil {
		return nil, fmt.Errorf("%w: short record body read: %v", errs.ErrTruncatedRecord, err)
	}

	full := append(head, rest...)

	record, remainder, err := Unpack(full, rd.opts...)
	if err != nil {
		return nil, err
	}
	if len(remainder) != 0 {
		return nil, fmt.Errorf("%w: unpack left %d unexpected trailing bytes", errs.ErrBadBlockette, len(remainder))
	}

	return record, nil
}

// All returns an iter.Seq2 over (record, error) pairs, stopping after the
// first error (including a clean io.EOF, which the sequence simply omits).
// Lenient skip-on-error iteration should call Next directly instead.
func (rd *Reader) All() iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for {
			record, err := rd.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)

				return
			}
			if !yield(record, nil) {
				return
			}
		}
	}
}
