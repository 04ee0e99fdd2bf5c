package bsdiff

import "github.com/nmoro/go-bsdiff/pkg/suffixarray"

// stallLimit bounds the livelock guard's stall counter.
const stallLimit = 100

// fuzz is the window the livelock guard tolerates before counting a step
// as stalled.
const fuzz = 8

// triple is a single control triple (x, y, z): copy x diff-added bytes,
// then y literal extra bytes, then advance the old cursor by z.
type triple struct {
	x, y, z int64
}

// emitFunc receives each control triple and its diff/extra payload as
// the differ produces them, so the caller can stream them into the
// patch writer without buffering every triple up front.
type emitFunc func(t triple, db, eb []byte)

// run walks new against the suffix-indexed old buffer, emitting
// approximate-match control triples via emit.
func run(idx *suffixarray.Index, old, newb []byte, emit emitFunc) {
	oldLen := int64(len(old))
	newLen := int64(len(newb))

	var scan, ln, lastscan, lastpos, lastoffset, pos, prevLen, prevPos int64

	for scan < newLen {
		oldscore := int64(0)
		scan += ln
		scsc := scan

		prevOldscore := int64(0)
		stall := 0

		for ; scan < newLen; scan++ {
			prevLen, prevOldscore, prevPos = ln, oldscore, pos

			ln, pos = idx.Search(newb[scan:])

			for scsc < scan+ln {
				if scsc+lastoffset < oldLen && scsc+lastoffset >= 0 && old[scsc+lastoffset] == newb[scsc] {
					oldscore++
				}
				scsc++
			}

			if ln == oldscore && ln != 0 {
				break
			}
			if ln > oldscore+fuzz {
				break
			}

			if scan+lastoffset < oldLen && scan+lastoffset >= 0 && old[scan+lastoffset] == newb[scan] {
				oldscore--
			}

			within := func(prev, cur int64) bool { return prev-fuzz <= cur && cur <= prev }
			if within(prevLen, ln) && within(prevOldscore, oldscore) &&
				prevPos <= pos && pos <= prevPos+fuzz &&
				oldscore <= ln && ln <= oldscore+fuzz {
				stall++
			} else {
				stall = 0
			}
			if stall > stallLimit {
				break
			}
		}

		if ln != oldscore || scan == newLen {
			lenf := forwardExtend(old, newb, lastscan, lastpos, scan, oldLen)
			lenb := int64(0)
			if scan < newLen {
				lenb = backwardExtend(old, newb, lastscan, scan, pos)
			}

			if lastscan+lenf > scan-lenb {
				overlap := (lastscan + lenf) - (scan - lenb)
				lenf, lenb = resolveOverlap(old, newb, lastscan, lastpos, scan, pos, lenf, lenb, overlap)
			}

			db := make([]byte, lenf)
			for i := int64(0); i < lenf; i++ {
				db[i] = newb[lastscan+i] - old[lastpos+i]
			}
			gap := (scan - lenb) - (lastscan + lenf)
			eb := make([]byte, gap)
			for i := int64(0); i < gap; i++ {
				eb[i] = newb[lastscan+lenf+i]
			}

			emit(triple{
				x: lenf,
				y: gap,
				z: (pos - lenb) - (lastpos + lenf),
			}, db, eb)

			lastscan = scan - lenb
			lastpos = pos - lenb
			lastoffset = pos - scan
		}
	}
}

// forwardExtend chooses lenf maximizing 2*(matches in the first lenf
// bytes) - lenf, scanning forward from lastscan/lastpos.
func forwardExtend(old, newb []byte, lastscan, lastpos, scan, oldLen int64) int64 {
	var s, Sf, lenf int64
	for i := int64(0); lastscan+i < scan && lastpos+i < oldLen; i++ {
		if old[lastpos+i] == newb[lastscan+i] {
			s++
		}
		if s*2-(i+1) > Sf*2-lenf {
			Sf = s
			lenf = i + 1
		}
	}
	return lenf
}

// backwardExtend chooses lenb maximizing 2*s-i, scanning backward from
// scan/pos down to lastscan.
func backwardExtend(old, newb []byte, lastscan, scan, pos int64) int64 {
	var s, Sb, lenb int64
	for i := int64(1); scan >= lastscan+i && pos >= i; i++ {
		if old[pos-i] == newb[scan-i] {
			s++
		}
		if s*2-i > Sb*2-lenb {
			Sb = s
			lenb = i
		}
	}
	return lenb
}

// resolveOverlap finds the split point within the overlap of the
// forward and backward match regions that maximizes net gain.
func resolveOverlap(old, newb []byte, lastscan, lastpos, scan, pos, lenf, lenb, overlap int64) (int64, int64) {
	var s, Ss, lens int64
	for i := int64(0); i < overlap; i++ {
		if newb[lastscan+lenf-overlap+i] == old[lastpos+lenf-overlap+i] {
			s++
		}
		if newb[scan-lenb+i] == old[pos-lenb+i] {
			s--
		}
		if s > Ss {
			Ss = s
			lens = i + 1
		}
	}
	return lenf + lens - overlap, lenb - lens
}
