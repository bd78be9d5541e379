// Package errs defines the sentinel errors returned across the mseed
// packages. Callers should match on these with errors.Is; wrapping with
// fmt.Errorf("%w: ...", errs.ErrXxx) is the convention used throughout this
// module to attach record-specific context.
//
// Errors are grouped into four families, mirroring how the record and
// sample codecs surface failures:
//
//   - Format errors: structural corruption discovered while decoding bytes.
//   - Integrity errors: a decoded value fails a cryptographic or algebraic check.
//   - Semantic errors: a value is syntactically fine but violates a domain rule.
//   - Range errors: a numeric field falls outside its legal domain.
package errs

import "errors"

// Format errors: structural corruption.
var (
	ErrTruncatedRecord  = errors.New("truncated record")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrBadBlockette     = errors.New("malformed blockette")
	ErrUnknownEncoding  = errors.New("unknown payload encoding")
)

// Integrity errors: a decoded value fails verification.
var (
	ErrCrcMismatch         = errors.New("CRC32C mismatch")
	ErrSteimIntegrityError = errors.New("steim final-sample mismatch")
	ErrSteimRangeError     = errors.New("steim difference exceeds packable width")
	ErrArchiveCorrupt      = errors.New("corrupt archive batch")
)

// Semantic errors: value is well-formed but violates a domain rule.
var (
	ErrMalformedIdentifier = errors.New("malformed source identifier")
	ErrUnknownBandCode     = errors.New("unknown band code")
	ErrUnknownSourceCode   = errors.New("unknown source code")
	ErrPathConflict        = errors.New("path conflict: intermediate node is not an object")
	ErrNotFound            = errors.New("path not found")
)

// Range errors: a field value falls outside its legal domain.
var (
	ErrFieldOutOfRange = errors.New("field value out of range")
)
