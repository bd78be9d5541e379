package v3

import "github.com/cespare/xxhash/v2"

// contentHash wraps xxhash64, used by Record.ContentHash for
// deduplication and test-fixture comparison where a fast, well-distributed,
// non-cryptographic hash is sufficient.
func contentHash(data []byte) uint64 {
	return xxhash.Sum64(data)
}
