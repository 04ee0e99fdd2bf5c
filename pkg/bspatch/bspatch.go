// Package bspatch applies a BSDIFF40 patch to an old byte sequence to
// reconstruct the new one: it validates the header, decompresses the
// three streams in full, then replays control triples against the old
// buffer.
package bspatch

import (
	"github.com/nmoro/go-bsdiff/internal/bzcodec"
	"github.com/nmoro/go-bsdiff/internal/patchfmt"
	"github.com/nmoro/go-bsdiff/pkg/bsdifferr"
)

// MaxNewSize bounds the declared new-file size this implementation will
// allocate for, guarding against a corrupt or hostile header claiming an
// enormous reconstructed size.
const MaxNewSize = (1 << 31) - 1

// streams holds the three fully decompressed patch payloads.
type streams struct {
	ctrl   []byte
	diff   []byte
	extra  []byte
	ctrlP  int // read cursor into ctrl
	diffP  int // read cursor into diff
	extraP int // read cursor into extra
}

// readTriple reads the next three encoded i64s from the ctrl stream.
func (s *streams) readTriple() (x, y, z int64, err error) {
	if len(s.ctrl)-s.ctrlP < 24 {
		return 0, 0, 0, bsdifferr.NewCorrupt(bsdifferr.CtrlUnderflow)
	}
	x, err = patchfmt.DecodeInt64(s.ctrl[s.ctrlP : s.ctrlP+8])
	if err != nil {
		return 0, 0, 0, err
	}
	y, err = patchfmt.DecodeInt64(s.ctrl[s.ctrlP+8 : s.ctrlP+16])
	if err != nil {
		return 0, 0, 0, err
	}
	z, err = patchfmt.DecodeInt64(s.ctrl[s.ctrlP+16 : s.ctrlP+24])
	if err != nil {
		return 0, 0, 0, err
	}
	s.ctrlP += 24
	return x, y, z, nil
}

// Bytes validates patch, decompresses its three streams, and replays
// its control triples against old to reconstruct the new buffer.
func Bytes(old, patch []byte) ([]byte, error) {
	hdr, stx, err := decodeAndDecompress(patch)
	if err != nil {
		return nil, err
	}
	if hdr.NewSize > MaxNewSize {
		return nil, bsdifferr.NewInputTooLarge(hdr.NewSize, MaxNewSize)
	}

	newBuf := make([]byte, hdr.NewSize)
	oldLen := int64(len(old))
	newSize := hdr.NewSize

	var oldpos, newpos int64
	for newpos < newSize {
		x, y, z, err := stx.readTriple()
		if err != nil {
			return nil, err
		}
		if x < 0 || y < 0 {
			return nil, bsdifferr.NewCorrupt(bsdifferr.NegativeControlField)
		}

		newposPlusX, err := bsdifferr.AddInt64(newpos, x)
		if err != nil {
			return nil, err
		}
		if newposPlusX > newSize {
			return nil, bsdifferr.NewCorrupt(bsdifferr.NewSizeExceeded)
		}
		newposPlusXY, err := bsdifferr.AddInt64(newposPlusX, y)
		if err != nil {
			return nil, err
		}
		if newposPlusXY > newSize {
			return nil, bsdifferr.NewCorrupt(bsdifferr.NewSizeExceeded)
		}
		if int64(len(stx.diff))-int64(stx.diffP) < x {
			return nil, bsdifferr.NewCorrupt(bsdifferr.DiffUnderflow)
		}
		if int64(len(stx.extra))-int64(stx.extraP) < y {
			return nil, bsdifferr.NewCorrupt(bsdifferr.ExtraUnderflow)
		}
		oldposAfterX, err := bsdifferr.AddInt64(oldpos, x)
		if err != nil {
			return nil, err
		}
		if _, err := bsdifferr.AddInt64(oldposAfterX, z); err != nil {
			return nil, err
		}

		for i := int64(0); i < x; i++ {
			v := stx.diff[stx.diffP]
			stx.diffP++
			op := oldpos + i
			if op >= 0 && op < oldLen {
				v += old[op]
			}
			newBuf[newpos+i] = v
		}
		newpos += x
		oldpos += x

		copy(newBuf[newpos:newpos+y], stx.extra[stx.extraP:stx.extraP+int(y)])
		stx.extraP += int(y)
		newpos += y

		oldpos += z
	}

	return newBuf, nil
}

// Sizes reports the decompressed size of each of the three patch
// streams without materializing the reconstructed new buffer — the
// `tool patch` single-argument CLI inspect mode.
type Sizes struct {
	CtrlSize  int64
	DiffSize  int64
	ExtraSize int64
}

// Inspect decompresses the three streams of patch and reports their
// decompressed sizes.
func Inspect(patch []byte) (Sizes, error) {
	_, stx, err := decodeAndDecompress(patch)
	if err != nil {
		return Sizes{}, err
	}
	return Sizes{
		CtrlSize:  int64(len(stx.ctrl)),
		DiffSize:  int64(len(stx.diff)),
		ExtraSize: int64(len(stx.extra)),
	}, nil
}

// decodeAndDecompress validates the header and fully decompresses the
// three blocks.
func decodeAndDecompress(patch []byte) (patchfmt.Header, *streams, error) {
	total := int64(len(patch))
	hdr, err := patchfmt.DecodeHeader(patch, total)
	if err != nil {
		return patchfmt.Header{}, nil, err
	}
	if hdr.CtrlLen <= 0 {
		return patchfmt.Header{}, nil, bsdifferr.NewCorrupt(bsdifferr.BadHeaderLengths)
	}
	if hdr.DiffLen <= 0 {
		return patchfmt.Header{}, nil, bsdifferr.NewCorrupt(bsdifferr.BadHeaderLengths)
	}

	ctrlStart := int64(patchfmt.HeaderSize)
	diffStart := ctrlStart + hdr.CtrlLen
	extraStart := diffStart + hdr.DiffLen
	extraLen := patchfmt.ExtraLen(hdr, total)
	if extraLen < 0 {
		return patchfmt.Header{}, nil, bsdifferr.NewCorrupt(bsdifferr.BadHeaderLengths)
	}

	ctrl, err := bzcodec.DecompressToVec(patch[ctrlStart:diffStart])
	if err != nil {
		return patchfmt.Header{}, nil, err
	}
	diff, err := bzcodec.DecompressToVec(patch[diffStart:extraStart])
	if err != nil {
		return patchfmt.Header{}, nil, err
	}
	extra, err := bzcodec.DecompressToVec(patch[extraStart : extraStart+extraLen])
	if err != nil {
		return patchfmt.Header{}, nil, err
	}

	return hdr, &streams{ctrl: ctrl, diff: diff, extra: extra}, nil
}
