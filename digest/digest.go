// Package digest provides the strong, collision-resistant hash used to
// fingerprint chunks. It is a thin factory over hash.Hash so the core
// can be parameterized over algorithm choice at construction time
// without depending on any one backend directly.
package digest

import (
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/zeebo/blake3"
)

// Algorithm names a supported strong-digest backend.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	SHA1   Algorithm = "sha1"
	BLAKE3 Algorithm = "blake3"
)

// DefaultAlgorithm is used when a Config leaves HashAlgorithm empty.
const DefaultAlgorithm = SHA256

// Size returns the fixed output size, in bytes, of the given algorithm.
func Size(algo Algorithm) (int, error) {
	switch algo {
	case SHA256, "":
		return sha256.Size, nil
	case SHA1:
		return sha1.Size, nil
	case BLAKE3:
		return 32, nil
	default:
		return 0, fmt.Errorf("digest: unsupported algorithm %q", algo)
	}
}

// New returns a fresh hash.Hash for the chosen algorithm. The returned
// hash supports incremental Write calls, so a chunk's digest can be
// accumulated byte-by-byte during slicing without a second pass over
// its data.
func New(algo Algorithm) (hash.Hash, error) {
	switch algo {
	case SHA256, "":
		return sha256.New(), nil
	case SHA1:
		return sha1.New(), nil
	case BLAKE3:
		return blake3.New(), nil
	default:
		return nil, fmt.Errorf("digest: unsupported algorithm %q", algo)
	}
}
