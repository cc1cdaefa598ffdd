package digest

import (
	"bytes"
	"crypto/sha256"
	"testing"
)

func TestNew_SHA256MatchesStdlib(t *testing.T) {
	h, err := New(SHA256)
	if err != nil {
		t.Fatalf("New(SHA256): %v", err)
	}
	data := []byte("hello, digest")
	h.Write(data)
	got := h.Sum(nil)

	want := sha256.Sum256(data)
	if !bytes.Equal(got, want[:]) {
		t.Errorf("digest = %x, want %x", got, want)
	}
}

func TestNew_DefaultIsSHA256(t *testing.T) {
	h, err := New("")
	if err != nil {
		t.Fatalf("New(\"\"): %v", err)
	}
	if h.Size() != sha256.Size {
		t.Errorf("default digest size = %d, want %d", h.Size(), sha256.Size)
	}
}

func TestNew_UnsupportedAlgorithm(t *testing.T) {
	if _, err := New("md5"); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
}

func TestNew_IncrementalMatchesOneShot(t *testing.T) {
	for _, algo := range []Algorithm{SHA256, SHA1, BLAKE3} {
		t.Run(string(algo), func(t *testing.T) {
			data := []byte("incremental digest content, split across writes")

			oneShot, err := New(algo)
			if err != nil {
				t.Fatalf("New(%s): %v", algo, err)
			}
			oneShot.Write(data)
			want := oneShot.Sum(nil)

			incremental, err := New(algo)
			if err != nil {
				t.Fatalf("New(%s): %v", algo, err)
			}
			for _, b := range data {
				incremental.Write([]byte{b})
			}
			got := incremental.Sum(nil)

			if !bytes.Equal(got, want) {
				t.Errorf("incremental digest = %x, want %x", got, want)
			}
		})
	}
}

func TestSize(t *testing.T) {
	cases := map[Algorithm]int{SHA256: 32, SHA1: 20, BLAKE3: 32}
	for algo, want := range cases {
		got, err := Size(algo)
		if err != nil {
			t.Fatalf("Size(%s): %v", algo, err)
		}
		if got != want {
			t.Errorf("Size(%s) = %d, want %d", algo, got, want)
		}
	}
}
