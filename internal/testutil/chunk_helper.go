// Package testutil provides small fixtures shared by this module's
// tests, mirroring the teacher's own internal/testutil helpers.
package testutil

import (
	"crypto/sha256"

	"github.com/trezbouchez/differ/chunktable"
)

// TestChunk builds a chunktable.Chunk fingerprinting data, starting at
// the given offset, for use in tests (such as delta's) that don't need
// a real Slicer run.
func TestChunk(offset int64, data []byte) chunktable.Chunk {
	h := sha256.Sum256(data)
	return chunktable.Chunk{
		Offset: offset,
		Length: len(data),
		Digest: h[:],
	}
}
