// Package chunktable holds the Chunk data model and the append-only,
// sealable table of chunks produced for one stream.
package chunktable

import (
	"bytes"
	"fmt"
)

// Chunk is a contiguous byte range of one input stream: an absolute
// start offset, a length in bytes, and a strong digest of its content.
type Chunk struct {
	Offset int64
	Length int
	Digest []byte
}

// End returns the offset one past the last byte of the chunk.
func (c Chunk) End() int64 {
	return c.Offset + int64(c.Length)
}

// Equal reports whether two chunks carry the same digest.
func (c Chunk) Equal(other Chunk) bool {
	return bytes.Equal(c.Digest, other.Digest)
}

// Table is the ordered, append-only sequence of Chunks for one stream.
// It is sealed at finalization, after which no further Append is
// permitted. Chunk i is expected to end exactly where chunk i+1 starts;
// Seal does not itself verify this (the Slicer guarantees it by
// construction), but callers relying on the table for random access may
// assume it.
type Table struct {
	chunks []Chunk
	sealed bool
	length int64
}

// New returns an empty, unsealed Table.
func New() *Table {
	return &Table{}
}

// Append adds a chunk to the end of the table. It panics if the table
// has already been sealed; that is a caller bug, not a reportable
// runtime condition, since Append is only ever called by the Slicer
// under the Driver's exclusive ownership.
func (t *Table) Append(c Chunk) {
	if t.sealed {
		panic("chunktable: append after seal")
	}
	t.chunks = append(t.chunks, c)
	t.length += int64(c.Length)
}

// Seal marks the table as immutable. Idempotent.
func (t *Table) Seal() {
	t.sealed = true
}

// Sealed reports whether Seal has been called.
func (t *Table) Sealed() bool {
	return t.sealed
}

// Len returns the number of chunks in the table.
func (t *Table) Len() int {
	return len(t.chunks)
}

// At returns the chunk at index i.
func (t *Table) At(i int) Chunk {
	return t.chunks[i]
}

// TotalLength returns the sum of all chunk lengths, i.e. the length of
// the stream the table describes.
func (t *Table) TotalLength() int64 {
	return t.length
}

// Digests projects the table to its ordered sequence of strong digests,
// the input the LCS engine operates on.
func (t *Table) Digests() [][]byte {
	out := make([][]byte, len(t.chunks))
	for i, c := range t.chunks {
		out[i] = c.Digest
	}
	return out
}

// String renders a compact, human-readable summary, mirroring the
// teacher's Chunk.String formatting.
func (c Chunk) String() string {
	return fmt.Sprintf("Chunk{offset=%d, length=%d, digest=%x}", c.Offset, c.Length, c.Digest)
}
