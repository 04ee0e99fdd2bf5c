package suffixarray

import "bytes"

// Search returns the length of the longest common prefix between query
// and any suffix of the indexed buffer, and the old-buffer offset of a
// suffix achieving that length.
func (idx *Index) Search(query []byte) (matchLen int64, offset int64) {
	return search(idx.I, idx.old, query, 0, int64(len(idx.I))-1)
}

func search(I []int64, old, query []byte, st, en int64) (int64, int64) {
	if en-st < 2 {
		x := matchLen(old[I[st]:], query)
		y := matchLen(old[I[en]:], query)
		if x > y {
			return x, I[st]
		}
		return y, I[en]
	}

	mid := st + (en-st)/2
	cmpLen := int64(len(old)) - I[mid]
	if cmpLen > int64(len(query)) {
		cmpLen = int64(len(query))
	}
	if bytes.Compare(old[I[mid]:I[mid]+cmpLen], query[:cmpLen]) <= 0 {
		return search(I, old, query, mid, en)
	}
	return search(I, old, query, st, mid)
}

// matchLen returns the length of the common prefix of a and b.
func matchLen(a, b []byte) int64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var i int
	for i < n && a[i] == b[i] {
		i++
	}
	return int64(i)
}
