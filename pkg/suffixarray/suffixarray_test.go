package suffixarray

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"
)

// suffixLess reports whether the suffix starting at a is lexicographically
// less than the suffix starting at b, treating the position len(old) as an
// empty suffix that sorts before everything else.
func suffixLess(old []byte, a, b int64) bool {
	return bytes.Compare(old[a:], old[b:]) < 0
}

func checkSorted(t *testing.T, old []byte, I []int64) {
	t.Helper()
	for r := int64(1); r < int64(len(I)); r++ {
		prev, cur := I[r-1], I[r]
		if suffixLess(old, cur, prev) {
			t.Fatalf("I not sorted at rank %d: suffix %d (%q) > suffix %d (%q)",
				r, prev, old[prev:], cur, old[cur:])
		}
	}
}

func TestBuildProducesSortedSuffixArray(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("a"),
		[]byte("banana"),
		[]byte("mississippi"),
		[]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		[]byte("the quick brown fox jumps over the lazy dog"),
	}
	for _, old := range cases {
		idx := Build(old)
		if len(idx.I) != len(old)+1 {
			t.Fatalf("len(I) = %d, want %d", len(idx.I), len(old)+1)
		}
		checkSorted(t, old, idx.I)

		seen := make(map[int64]bool, len(idx.I))
		for _, p := range idx.I {
			if p < 0 || p > int64(len(old)) {
				t.Fatalf("out-of-range suffix position %d", p)
			}
			if seen[p] {
				t.Fatalf("duplicate suffix position %d", p)
			}
			seen[p] = true
		}
	}
}

func TestBuildOnRandomData(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	old := make([]byte, 2000)
	rng.Read(old)

	idx := Build(old)
	checkSorted(t, old, idx.I)

	// Cross-check against a reference sort.
	want := make([]int64, len(old)+1)
	for i := range want {
		want[i] = int64(i)
	}
	sort.Slice(want, func(i, j int) bool {
		return suffixLess(old, want[i], want[j])
	})
	for r := range want {
		if suffixLess(old, idx.I[r], want[r]) || suffixLess(old, want[r], idx.I[r]) {
			// Ties (equal suffixes can't occur here since all bytes are
			// distinct-length, but guard with a direct equality check).
			if !bytes.Equal(old[idx.I[r]:], old[want[r]:]) {
				t.Fatalf("rank %d mismatch: got suffix %d, want suffix %d", r, idx.I[r], want[r])
			}
		}
	}
}

func TestSearchFindsExactMatch(t *testing.T) {
	old := []byte("the quick brown fox jumps over the lazy dog")
	idx := Build(old)

	ln, pos := idx.Search([]byte("brown fox"))
	if ln != int64(len("brown fox")) {
		t.Fatalf("matchLen = %d, want %d", ln, len("brown fox"))
	}
	if !bytes.Equal(old[pos:pos+ln], []byte("brown fox")) {
		t.Fatalf("match at %d is %q, not the expected substring", pos, old[pos:pos+ln])
	}
}

func TestSearchFindsLongestPrefix(t *testing.T) {
	old := []byte("abcdefg_abcdXYZ")
	idx := Build(old)

	ln, pos := idx.Search([]byte("abcdef"))
	if ln != 6 {
		t.Fatalf("matchLen = %d, want 6", ln)
	}
	if !bytes.Equal(old[pos:pos+ln], []byte("abcdef")) {
		t.Fatalf("match at %d is %q, want \"abcdef\"", pos, old[pos:pos+ln])
	}
}

func TestSearchNoMatch(t *testing.T) {
	old := []byte("aaaaaaaaaa")
	idx := Build(old)

	ln, _ := idx.Search([]byte("zzz"))
	if ln != 0 {
		t.Fatalf("matchLen = %d, want 0", ln)
	}
}

func TestSearchOnEmptyOld(t *testing.T) {
	idx := Build(nil)
	ln, pos := idx.Search([]byte("anything"))
	if ln != 0 || pos != 0 {
		t.Fatalf("Search on empty old = (%d, %d), want (0, 0)", ln, pos)
	}
}
