// Package format defines the wire-level enumerations shared by the v2, v3,
// and archive packages: payload encodings (Table A of the MiniSEED v3
// specification) and the archive batch-compression codecs.
package format

type (
	// PayloadEncoding identifies how a record's data payload is encoded,
	// per the authoritative FDSN MiniSEED v3 encoding table.
	PayloadEncoding uint8

	// ArchiveCompression identifies the outer compression applied to a
	// batch of packed records by the archive package. It is independent
	// of PayloadEncoding: a record's samples may already be Steim-compressed
	// while the archive codec additionally compresses the packed bytes of
	// many such records together.
	ArchiveCompression uint8
)

const (
	EncodingText    PayloadEncoding = 0  // ASCII/UTF-8 bytes.
	EncodingInt16   PayloadEncoding = 1  // Little- or big-endian 16-bit signed integers.
	EncodingInt32   PayloadEncoding = 3  // Little- or big-endian 32-bit signed integers.
	EncodingFloat32 PayloadEncoding = 4  // IEEE-754 binary32.
	EncodingFloat64 PayloadEncoding = 5  // IEEE-754 binary64.
	EncodingSteim1  PayloadEncoding = 10 // Steim-1 differential frames.
	EncodingSteim2  PayloadEncoding = 11 // Steim-2 differential frames.
	EncodingSteim3  PayloadEncoding = 19 // Steim-3; recognized but unsupported, decode-refuse.

	ArchiveNone ArchiveCompression = 0 // No outer compression; records stored back to back.
	ArchiveZstd ArchiveCompression = 1 // Zstandard.
	ArchiveS2   ArchiveCompression = 2 // Snappy-compatible S2.
	ArchiveLZ4  ArchiveCompression = 3 // LZ4 block format.
)

func (e PayloadEncoding) String() string {
	switch e {
	case EncodingText:
		return "TEXT"
	case EncodingInt16:
		return "INT16"
	case EncodingInt32:
		return "INT32"
	case EncodingFloat32:
		return "FLOAT32"
	case EncodingFloat64:
		return "FLOAT64"
	case EncodingSteim1:
		return "STEIM1"
	case EncodingSteim2:
		return "STEIM2"
	case EncodingSteim3:
		return "STEIM3"
	default:
		return "Unknown"
	}
}

// IsSteim reports whether the encoding is a differential Steim codec,
// as opposed to a primitive fixed-width or text encoding.
func (e PayloadEncoding) IsSteim() bool {
	return e == EncodingSteim1 || e == EncodingSteim2 || e == EncodingSteim3
}

// IsSupported reports whether this library can decode the encoding.
// Steim-3 is recognized (for diagnostics) but never decoded.
func (e PayloadEncoding) IsSupported() bool {
	switch e {
	case EncodingText, EncodingInt16, EncodingInt32, EncodingFloat32, EncodingFloat64, EncodingSteim1, EncodingSteim2:
		return true
	default:
		return false
	}
}

func (c ArchiveCompression) String() string {
	switch c {
	case ArchiveNone:
		return "None"
	case ArchiveZstd:
		return "Zstd"
	case ArchiveS2:
		return "S2"
	case ArchiveLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
