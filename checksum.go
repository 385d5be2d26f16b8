// Checksum algorithms for consolidated document content.
//
// The manifest stores a 16 hex character digest of the full document (rows
// joined by newlines), recomputed on each consolidation and compared on a
// clean startup. Three algorithms are supported, selectable via
// Config.ChecksumAlgorithm.
package scroll

import (
	"fmt"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Checksum algorithm constants.
const (
	AlgXXHash3 = 1 // Default, fastest
	AlgFNV1a   = 2 // No external dependencies
	AlgBlake2b = 3 // Best distribution
)

// checksum digests rows in order, each terminated by a newline — the exact
// byte stream consolidation writes to the root file. Returns 16 hex chars,
// or "" for an unknown algorithm.
func checksum(rows []string, alg int) string {
	switch alg {
	case AlgXXHash3:
		h := xxh3.New()
		for _, row := range rows {
			h.WriteString(row)
			h.Write([]byte{'\n'})
		}
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgFNV1a:
		h := fnv.New64a()
		for _, row := range rows {
			h.Write([]byte(row))
			h.Write([]byte{'\n'})
		}
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		for _, row := range rows {
			h.Write([]byte(row))
			h.Write([]byte{'\n'})
		}
		return fmt.Sprintf("%016x", h.Sum(nil))
	default:
		return ""
	}
}
