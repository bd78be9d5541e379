// Package compress provides the outer, batch-level compression codecs used
// by the archive package to shrink sequences of packed MiniSEED v3 records
// for cold storage or network transport.
//
// This is independent of a record's own payload encoding: a batch of
// Steim-2-compressed records can still benefit from an outer pass here,
// since Steim's bit-packing does not exploit redundancy across records the
// way a general-purpose compressor can (repeated headers, source
// identifiers, and extra-header JSON).
//
// # Supported algorithms
//
//   - None (format.ArchiveNone): no compression, for data already dense or
//     when archive write latency matters more than size.
//   - Zstd (format.ArchiveZstd): best compression ratio; preferred for
//     long-term cold storage.
//   - S2 (format.ArchiveS2): Snappy-compatible, balances ratio and speed.
//   - LZ4 (format.ArchiveLZ4): fastest decompression, for read-heavy
//     archives.
//
// CreateCodec and GetCodec construct or look up a Codec for one of these
// types; GetCodec returns a shared, stateless instance where the algorithm
// permits it.
package compress
