// Package bsdiff computes a BSDIFF40 patch between an old and a new
// byte sequence: a suffix-array index of old drives a greedy
// approximate-match walk over new, producing control triples plus
// diff/extra byte streams that are bzip2-compressed into the on-disk
// patch format.
package bsdiff

import (
	"github.com/nmoro/go-bsdiff/pkg/bsdifferr"
	"github.com/nmoro/go-bsdiff/pkg/suffixarray"
)

// MaxInputSize is the largest old/new buffer this implementation will
// diff: the format's length fields are logically 31-bit (declared
// sizes must stay non-negative in the sign-magnitude encoding and fit
// the "old_len, new_len < 2^31" data-model constraint).
const MaxInputSize = (1 << 31) - 1

// Bytes computes the BSDIFF40 patch that reconstructs newb from old.
func Bytes(old, newb []byte) ([]byte, error) {
	if int64(len(old)) > MaxInputSize {
		return nil, bsdifferr.NewInputTooLarge(int64(len(old)), MaxInputSize)
	}
	if int64(len(newb)) > MaxInputSize {
		return nil, bsdifferr.NewInputTooLarge(int64(len(newb)), MaxInputSize)
	}
	return writePatch(old, newb)
}

func buildIndex(old []byte) *suffixarray.Index {
	return suffixarray.Build(old)
}
