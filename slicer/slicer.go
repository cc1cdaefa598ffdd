// Package slicer implements content-defined chunking (CDC): it turns a
// byte stream into variable-size, content-anchored Chunks honoring
// strict min/max size bounds, using a rolling hash to find candidate
// boundaries and a strong digest to fingerprint each chunk.
package slicer

import (
	"fmt"
	"hash"

	"github.com/trezbouchez/differ/chunktable"
	"github.com/trezbouchez/differ/digest"
	"github.com/trezbouchez/differ/rolling"
)

// Config holds the parameters that govern chunk boundaries. All fields
// are mandatory semantically; NewConfig fills in a default
// HashAlgorithm when none is given and derives BoundaryMask from the
// target average chunk size it is passed, the way fastcdc.NewParams
// derives Mask from the requested average size.
type Config struct {
	WindowSize    int
	MinChunkSize  int
	MaxChunkSize  int
	BoundaryMask  uint32
	HashAlgorithm digest.Algorithm
}

// NewConfig builds a Config, always deriving BoundaryMask from avg
// (bits chosen so that 2^bits is the nearest power of two at or above
// avg, mirroring fastcdc.NewParams's bit scan). A caller that wants a
// specific mask builds the Config literal directly.
func NewConfig(window, min, avg, max int, algo digest.Algorithm) Config {
	var bits uint
	for (1 << bits) < avg {
		bits++
	}
	mask := uint32((1 << bits) - 1)
	if algo == "" {
		algo = digest.DefaultAlgorithm
	}
	return Config{
		WindowSize:    window,
		MinChunkSize:  min,
		MaxChunkSize:  max,
		BoundaryMask:  mask,
		HashAlgorithm: algo,
	}
}

// Validate checks the §6 configuration constraints.
func (c Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("slicer: window_size must be > 0, got %d", c.WindowSize)
	}
	if c.WindowSize > c.MinChunkSize {
		return fmt.Errorf("slicer: window_size (%d) must be <= min_chunk_size (%d)", c.WindowSize, c.MinChunkSize)
	}
	if c.MinChunkSize >= c.MaxChunkSize {
		return fmt.Errorf("slicer: min_chunk_size (%d) must be < max_chunk_size (%d)", c.MinChunkSize, c.MaxChunkSize)
	}
	if c.BoundaryMask == 0 || (c.BoundaryMask&(c.BoundaryMask+1)) != 0 {
		return fmt.Errorf("slicer: boundary_mask must be of the form 2^b-1, got %#x", c.BoundaryMask)
	}
	return nil
}

// Slicer is an incremental, streaming state machine over a single byte
// stream. Calling Push repeatedly with arbitrarily sized slices of the
// same logical stream, in order, is equivalent to calling it once with
// the concatenation: boundaries depend solely on the stream prefix seen
// so far, never on how it was split across pushes.
type Slicer struct {
	cfg Config

	digestAlgo digest.Algorithm
	h          hash.Hash
	roll       *rolling.Hash

	chunkStart int64 // absolute offset of the first byte of the open chunk
	curLen     int   // bytes accumulated into the open chunk so far
}

// New constructs a Slicer from a validated Config.
func New(cfg Config) (*Slicer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h, err := digest.New(cfg.HashAlgorithm)
	if err != nil {
		return nil, err
	}
	return &Slicer{
		cfg:        cfg,
		digestAlgo: cfg.HashAlgorithm,
		h:          h,
		roll:       rolling.New(cfg.WindowSize),
	}, nil
}

// Push feeds the next slice of stream bytes through the slicer and
// returns every Chunk whose boundary fell within this call (possibly
// none, possibly several, for a single Push).
func (s *Slicer) Push(data []byte) ([]chunktable.Chunk, error) {
	var out []chunktable.Chunk

	for _, b := range data {
		if s.curLen < s.cfg.MinChunkSize {
			s.h.Write([]byte{b})
			s.curLen++
			if s.curLen == s.cfg.MinChunkSize {
				s.roll.Reset()
			}
			continue
		}

		s.h.Write([]byte{b})
		s.roll.Push(b)
		s.curLen++

		boundary := s.roll.Filled() && (s.roll.Value()&s.cfg.BoundaryMask) == s.cfg.BoundaryMask
		if !boundary && s.curLen >= s.cfg.MaxChunkSize {
			boundary = true
		}

		if boundary {
			out = append(out, s.emit())
		}
	}

	return out, nil
}

// Flush emits whatever bytes remain in the currently open chunk as the
// final chunk, even if its length is below MinChunkSize. It returns
// (zero, false) if the stream was empty or ended exactly on a
// boundary.
func (s *Slicer) Flush() (chunktable.Chunk, bool) {
	if s.curLen == 0 {
		return chunktable.Chunk{}, false
	}
	return s.emit(), true
}

// emit closes the open chunk, returning it, and resets state for the
// next one.
func (s *Slicer) emit() chunktable.Chunk {
	c := chunktable.Chunk{
		Offset: s.chunkStart,
		Length: s.curLen,
		Digest: s.h.Sum(nil),
	}

	s.chunkStart += int64(s.curLen)
	s.curLen = 0
	s.h.Reset()
	s.roll.Reset()

	return c
}
