package compress

import (
	"fmt"

	"github.com/mseedio/mseed/format"
)

// Compressor compresses a batch of already-packed MiniSEED v3 record bytes
// for cold storage or transport. It operates below the record layer: it has
// no knowledge of record boundaries and simply compresses whatever byte
// buffer it is given.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor mirrors Compressor for the reverse direction. Separate
// interfaces allow asymmetric implementations where compression and
// decompression have different resource requirements.
type Decompressor interface {
	// Decompress decompresses data, previously produced by the matching
	// Compressor, and returns the original bytes.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats reports the outcome of one archive compression pass, for
// monitoring storage savings across a batch write.
type CompressionStats struct {
	Algorithm      format.ArchiveCompression
	OriginalSize   int64
	CompressedSize int64
}

// Ratio returns compressed size / original size; values below 1.0 indicate
// space savings.
func (s CompressionStats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage (0-100).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

// CreateCodec constructs a fresh Codec for the given archive compression
// type. target names the caller's usage for error messages.
func CreateCodec(compressionType format.ArchiveCompression, target string) (Codec, error) {
	switch compressionType {
	case format.ArchiveNone:
		return NewNoOpCompressor(), nil
	case format.ArchiveZstd:
		return NewZstdCompressor(), nil
	case format.ArchiveS2:
		return NewS2Compressor(), nil
	case format.ArchiveLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.ArchiveCompression]Codec{
	format.ArchiveNone: NewNoOpCompressor(),
	format.ArchiveZstd: NewZstdCompressor(),
	format.ArchiveS2:   NewS2Compressor(),
	format.ArchiveLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a shared, stateless Codec for the given compression
// type, avoiding an allocation per call for the common case.
func GetCodec(compressionType format.ArchiveCompression) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
