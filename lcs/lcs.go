// Package lcs computes a longest common subsequence of two digest
// sequences using Nakatsu's diagonal algorithm: a table L[k][i] holds
// the minimal column in B reachable by a length-k common subsequence
// using a prefix of A ending at i, filled row by row (row k built from
// row k-1), stopping at the first row with no assignable cell.
package lcs

import "sort"

// Pair is one witness of the LCS: digest a[I] equals digest b[J].
type Pair struct {
	I, J int
}

// Trace is an LCS witness: a sequence of Pairs with both index
// sequences strictly increasing.
type Trace []Pair

// Compute returns a maximal-length LCS trace between two digest
// sequences. Equality between digests is bitwise (via string
// conversion of the raw bytes). The returned trace is deterministic:
// whenever several columns would tie for minimality, the smallest is
// always chosen.
func Compute(a, b [][]byte) Trace {
	if len(a) == 0 || len(b) == 0 {
		return Trace{}
	}

	// The algorithm's table is sized n x p with n = len(shorter); swap
	// so A is never longer than B, and swap the output back at the end.
	swapped := false
	if len(a) > len(b) {
		a, b = b, a
		swapped = true
	}

	n := len(a)
	positions := indexPositions(b)

	// L[k][i]: minimal 1-indexed column in b achievable by a length-k
	// common subsequence using a prefix of a of length i. -1 means no
	// such subsequence exists yet. Row 0 is the trivial base case: any
	// column boundary (0) is achievable with 0 matches.
	row0 := make([]int, n+1)
	rows := [][]int{row0}
	// origin[k][i]: the prefix length i' <= i at which L[k][i] was
	// actually established by a match, vs. merely carried forward from
	// L[k][i-1]. Needed to recover the (a-index, b-index) pair during
	// traceback.
	origin0 := make([]int, n+1)
	origins := [][]int{origin0}

	k := 0
	for {
		k++
		prevL := rows[k-1]
		curL := make([]int, n+1)
		curOrigin := make([]int, n+1)
		curL[0] = -1

		anyAssigned := false
		for i := 1; i <= n; i++ {
			carry := curL[i-1]

			candidate := -1
			threshold := prevL[i-1]
			if threshold >= 0 {
				if j, ok := firstAfter(positions[string(a[i-1])], threshold); ok {
					candidate = j
				}
			}

			best := carry
			isMatch := false
			if candidate != -1 && (best == -1 || candidate < best) {
				best = candidate
				isMatch = true
			}

			curL[i] = best
			if best == -1 {
				curOrigin[i] = i
			} else if isMatch {
				curOrigin[i] = i
				anyAssigned = true
			} else {
				curOrigin[i] = curOrigin[i-1]
				anyAssigned = true
			}
		}

		if !anyAssigned {
			k--
			break
		}
		rows = append(rows, curL)
		origins = append(origins, curOrigin)
	}

	p := k
	if p == 0 {
		return Trace{}
	}

	trace := make(Trace, p)
	i := n
	for row := p; row >= 1; row-- {
		oi := origins[row][i]
		j := rows[row][oi]
		trace[row-1] = Pair{I: oi - 1, J: j - 1}
		i = oi - 1
	}

	if swapped {
		for idx := range trace {
			trace[idx].I, trace[idx].J = trace[idx].J, trace[idx].I
		}
	}

	return trace
}

// indexPositions groups the 1-indexed column positions of each
// distinct digest in seq, in ascending order.
func indexPositions(seq [][]byte) map[string][]int {
	out := make(map[string][]int, len(seq))
	for idx, d := range seq {
		key := string(d)
		out[key] = append(out[key], idx+1)
	}
	return out
}

// firstAfter returns the smallest element of the sorted slice positions
// that is strictly greater than threshold.
func firstAfter(positions []int, threshold int) (int, bool) {
	n := len(positions)
	idx := sort.Search(n, func(i int) bool { return positions[i] > threshold })
	if idx == n {
		return 0, false
	}
	return positions[idx], true
}
