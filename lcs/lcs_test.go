package lcs

import (
	"bytes"
	"math/rand"
	"testing"
)

// referenceLength computes the LCS length of two digest sequences with
// the textbook O(n*m) DP, used only to check Compute's maximality.
func referenceLength(a, b [][]byte) int {
	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if bytes.Equal(a[i-1], b[j-1]) {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}
	return dp[n][m]
}

func digests(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func TestCompute_EmptyInputs(t *testing.T) {
	if tr := Compute(nil, digests("a", "b")); len(tr) != 0 {
		t.Errorf("expected empty trace for empty A, got %v", tr)
	}
	if tr := Compute(digests("a", "b"), nil); len(tr) != 0 {
		t.Errorf("expected empty trace for empty B, got %v", tr)
	}
	if tr := Compute(nil, nil); len(tr) != 0 {
		t.Errorf("expected empty trace for two empty inputs, got %v", tr)
	}
}

func TestCompute_IdenticalSequences(t *testing.T) {
	a := digests("a", "b", "c", "d", "e")
	tr := Compute(a, a)

	if len(tr) != len(a) {
		t.Fatalf("trace length = %d, want %d", len(tr), len(a))
	}
	for i, pair := range tr {
		if pair.I != i || pair.J != i {
			t.Errorf("pair %d = %+v, want {%d %d}", i, pair, i, i)
		}
	}
}

func TestCompute_DisjointAlphabets(t *testing.T) {
	a := digests("a", "b", "c")
	b := digests("x", "y", "z")
	if tr := Compute(a, b); len(tr) != 0 {
		t.Errorf("expected empty trace for disjoint alphabets, got %v", tr)
	}
}

func TestCompute_MonotonicIndices(t *testing.T) {
	a := digests("a", "b", "c", "b", "d", "a", "b")
	b := digests("b", "a", "b", "d", "a", "b", "c")

	tr := Compute(a, b)
	for k := 1; k < len(tr); k++ {
		if tr[k].I <= tr[k-1].I {
			t.Fatalf("I index not strictly increasing at %d: %+v", k, tr)
		}
		if tr[k].J <= tr[k-1].J {
			t.Fatalf("J index not strictly increasing at %d: %+v", k, tr)
		}
	}
}

func TestCompute_MatchesEqualDigests(t *testing.T) {
	a := digests("a", "b", "c", "b", "d", "a", "b")
	b := digests("b", "a", "b", "d", "a", "b", "c")

	tr := Compute(a, b)
	for _, pair := range tr {
		if !bytes.Equal(a[pair.I], b[pair.J]) {
			t.Errorf("pair %+v: a[%d]=%q != b[%d]=%q", pair, pair.I, a[pair.I], pair.J, b[pair.J])
		}
	}
}

func TestCompute_MaximalAgainstReference(t *testing.T) {
	cases := [][2]string{
		{"abcbdab", "bdcaba"},
		{"xmjyauz", "mzjawxu"},
		{"aaaa", "aa"},
		{"abc", "abc"},
		{"", "abc"},
	}
	for _, c := range cases {
		a := digits(c[0])
		b := digits(c[1])

		tr := Compute(a, b)
		want := referenceLength(a, b)
		if len(tr) != want {
			t.Errorf("Compute(%q,%q) trace length = %d, want %d", c[0], c[1], len(tr), want)
		}
	}
}

func TestCompute_MaximalRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []byte("ABCD")

	for trial := 0; trial < 40; trial++ {
		n := rng.Intn(12)
		m := rng.Intn(12)
		a := randDigits(rng, alphabet, n)
		b := randDigits(rng, alphabet, m)

		tr := Compute(a, b)
		want := referenceLength(a, b)
		if len(tr) != want {
			t.Fatalf("trial %d: Compute(%v,%v) length = %d, want %d", trial, strs(a), strs(b), len(tr), want)
		}
	}
}

func TestCompute_LargerOnEitherSide(t *testing.T) {
	// Swapping which argument is longer must not change the LCS length,
	// nor invalidate the I/J convention (I always indexes the first
	// argument).
	a := digits("abcbdab")
	b := digits("bdcabaxxxx")

	tr1 := Compute(a, b)
	tr2 := Compute(b, a)

	if len(tr1) != len(tr2) {
		t.Fatalf("lengths differ depending on argument order: %d vs %d", len(tr1), len(tr2))
	}
	for _, p := range tr1 {
		if !bytes.Equal(a[p.I], b[p.J]) {
			t.Errorf("tr1 pair %+v doesn't match a/b", p)
		}
	}
	for _, p := range tr2 {
		if !bytes.Equal(b[p.I], a[p.J]) {
			t.Errorf("tr2 pair %+v doesn't match b/a", p)
		}
	}
}

func digits(s string) [][]byte {
	out := make([][]byte, len(s))
	for i := range s {
		out[i] = []byte{s[i]}
	}
	return out
}

func randDigits(rng *rand.Rand, alphabet []byte, n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = []byte{alphabet[rng.Intn(len(alphabet))]}
	}
	return out
}

func strs(seq [][]byte) string {
	b := make([]byte, len(seq))
	for i, d := range seq {
		b[i] = d[0]
	}
	return string(b)
}
