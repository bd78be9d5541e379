package compress

// ZstdCompressor provides Zstandard compression for batches of packed
// MiniSEED v3 records.
//
// This compressor favors compression ratio over speed, making it suited to:
//   - Cold storage and long-term archival of record batches
//   - Network transmission where bandwidth is limited
//   - Scenarios where decompression happens infrequently
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
