package patchfmt

import (
	"bytes"

	"github.com/nmoro/go-bsdiff/pkg/bsdifferr"
)

// Magic identifies a BSDIFF40 patch.
const Magic = "BSDIFF40"

// HeaderSize is the fixed size of the patch header, in bytes.
const HeaderSize = 32

// Header is the decoded 32-byte BSDIFF40 header.
type Header struct {
	CtrlLen int64 // length of the compressed ctrl block
	DiffLen int64 // length of the compressed diff block
	NewSize int64 // declared size of the reconstructed new file
}

// EncodeHeader renders h as the 32-byte on-disk header.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:8], Magic)
	ctrl := EncodeInt64(h.CtrlLen)
	diff := EncodeInt64(h.DiffLen)
	size := EncodeInt64(h.NewSize)
	copy(buf[8:16], ctrl[:])
	copy(buf[16:24], diff[:])
	copy(buf[24:32], size[:])
	return buf
}

// DecodeHeader parses the header of a patch buffer. totalPatchLen is the
// full size of the patch the header was read from, used to reject a
// header whose declared lengths cannot possibly fit.
func DecodeHeader(patch []byte, totalPatchLen int64) (Header, error) {
	if totalPatchLen < HeaderSize {
		return Header{}, bsdifferr.NewCorrupt(bsdifferr.TooShort)
	}
	if !bytes.Equal(patch[0:8], []byte(Magic)) {
		return Header{}, bsdifferr.NewCorrupt(bsdifferr.BadMagic)
	}
	ctrlLen, err := DecodeInt64(patch[8:16])
	if err != nil {
		return Header{}, bsdifferr.NewCorrupt(bsdifferr.BadHeaderLengths)
	}
	diffLen, err := DecodeInt64(patch[16:24])
	if err != nil {
		return Header{}, bsdifferr.NewCorrupt(bsdifferr.BadHeaderLengths)
	}
	newSize, err := DecodeInt64(patch[24:32])
	if err != nil {
		return Header{}, bsdifferr.NewCorrupt(bsdifferr.BadHeaderLengths)
	}
	if ctrlLen < 0 || diffLen < 0 || newSize < 0 {
		return Header{}, bsdifferr.NewCorrupt(bsdifferr.BadHeaderLengths)
	}
	sum, err := bsdifferr.AddInt64(HeaderSize, ctrlLen)
	if err != nil {
		return Header{}, err
	}
	sum, err = bsdifferr.AddInt64(sum, diffLen)
	if err != nil {
		return Header{}, err
	}
	if sum >= totalPatchLen {
		return Header{}, bsdifferr.NewCorrupt(bsdifferr.BadHeaderLengths)
	}
	return Header{CtrlLen: ctrlLen, DiffLen: diffLen, NewSize: newSize}, nil
}

// ExtraLen returns the implicit length of the extra block: the
// remainder of the patch after the header and the ctrl/diff blocks.
func ExtraLen(h Header, totalPatchLen int64) int64 {
	return totalPatchLen - HeaderSize - h.CtrlLen - h.DiffLen
}
