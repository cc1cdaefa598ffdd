// Package rolling implements a polynomial (Rabin-Karp style) rolling
// hash over a fixed-size sliding window of bytes.
package rolling

// base is the odd prime multiplier used by the polynomial hash. Chosen
// for its wide use as a multiplicative hash constant (Knuth); arithmetic
// below relies only on it being odd so B^(W-1) is invertible-adjacent,
// not on any deeper number-theoretic property.
const base uint32 = 2654435761

// Hash maintains a polynomial hash over the last Window bytes pushed to
// it. Until Window bytes have been pushed it accumulates without
// eviction (state "underfilled"); from the Window-th push onward every
// further push evicts the oldest byte (state "filled").
type Hash struct {
	window  int
	basePow uint32 // base^(window-1) mod 2^32, precomputed once

	ring []byte // circular buffer of the last `window` bytes pushed
	pos  int     // next write position in ring

	value  uint32
	pushed int // bytes pushed since the last Reset
}

// New creates a rolling hash over a window of the given size. window
// must be positive.
func New(window int) *Hash {
	h := &Hash{
		window: window,
		ring:   make([]byte, window),
	}
	h.basePow = powMod(base, window-1)
	return h
}

// powMod computes base^exp mod 2^32 using natural uint32 wrap-around.
func powMod(b uint32, exp int) uint32 {
	result := uint32(1)
	for i := 0; i < exp; i++ {
		result *= b
	}
	return result
}

// Reset returns the hash to its initial, empty-window state. The
// circular buffer contents are discarded; the next Window pushes will
// re-fill it from scratch.
func (h *Hash) Reset() {
	h.value = 0
	h.pushed = 0
	h.pos = 0
}

// Filled reports whether Window bytes have been pushed since the last
// Reset, i.e. whether Value reflects a full window.
func (h *Hash) Filled() bool {
	return h.pushed >= h.window
}

// Push folds one more byte into the window, evicting the oldest byte
// once the window is full.
func (h *Hash) Push(b byte) {
	if h.pushed < h.window {
		// Underfilled: pure accumulation, H = H*base + b.
		h.value = h.value*base + uint32(b)
		h.ring[h.pos] = b
		h.pos = (h.pos + 1) % h.window
		h.pushed++
		return
	}

	out := h.ring[h.pos]
	h.value = (h.value-uint32(out)*h.basePow)*base + uint32(b)
	h.ring[h.pos] = b
	h.pos = (h.pos + 1) % h.window
	h.pushed++
}

// Value returns the current hash of the last min(pushed, Window) bytes.
func (h *Hash) Value() uint32 {
	return h.value
}
