package bsdiff

import (
	"github.com/nmoro/go-bsdiff/internal/bzcodec"
	"github.com/nmoro/go-bsdiff/internal/patchfmt"
	"github.com/nmoro/go-bsdiff/pkg/util"
)

// writePatch sequences the three compression passes: a placeholder
// header, the ctrl stream written incrementally as the differ emits
// triples, then the buffered diff and extra streams, finishing with a
// rewrite of the true block lengths.
func writePatch(old, newb []byte) ([]byte, error) {
	var pf util.BufWriter

	header := patchfmt.EncodeHeader(patchfmt.Header{NewSize: int64(len(newb))})
	if _, err := pf.Write(header); err != nil {
		return nil, err
	}

	ctrlZW, err := bzcodec.NewWriter(&pf)
	if err != nil {
		return nil, err
	}

	var db, eb []byte
	var writeErr error
	emit := func(t triple, dbChunk, ebChunk []byte) {
		if writeErr != nil {
			return
		}
		db = append(db, dbChunk...)
		eb = append(eb, ebChunk...)
		for _, v := range [3]int64{t.x, t.y, t.z} {
			enc := patchfmt.EncodeInt64(v)
			if _, err := ctrlZW.Write(enc[:]); err != nil {
				writeErr = err
				return
			}
		}
	}

	idx := buildIndex(old)
	run(idx, old, newb, emit)
	if writeErr != nil {
		return nil, writeErr
	}
	if err := ctrlZW.Close(); err != nil {
		return nil, err
	}

	ctrlLen := int64(pf.Len()) - patchfmt.HeaderSize

	diffZW, err := bzcodec.NewWriter(&pf)
	if err != nil {
		return nil, err
	}
	if _, err := diffZW.Write(db); err != nil {
		return nil, err
	}
	if err := diffZW.Close(); err != nil {
		return nil, err
	}
	diffLen := int64(pf.Len()) - patchfmt.HeaderSize - ctrlLen

	extraZW, err := bzcodec.NewWriter(&pf)
	if err != nil {
		return nil, err
	}
	if _, err := extraZW.Write(eb); err != nil {
		return nil, err
	}
	if err := extraZW.Close(); err != nil {
		return nil, err
	}

	header = patchfmt.EncodeHeader(patchfmt.Header{
		CtrlLen: ctrlLen,
		DiffLen: diffLen,
		NewSize: int64(len(newb)),
	})
	if _, err := pf.WriteAt(header, 0); err != nil {
		return nil, err
	}

	return pf.Bytes(), nil
}
