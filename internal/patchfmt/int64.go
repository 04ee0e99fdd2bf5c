// Package patchfmt implements the on-disk BSDIFF40 layout: the
// sign-magnitude 8-byte integer encoding and the 32-byte header.
package patchfmt

import "github.com/nmoro/go-bsdiff/pkg/bsdifferr"

// maxMagnitude is the largest magnitude representable in the low 63
// bits of the 8-byte encoding (byte 7's top bit is the sign).
const maxMagnitude = 1<<63 - 1

// EncodeInt64 writes x in the BSDIFF40 sign-magnitude little-endian
// encoding: the magnitude of x across 8 bytes, little-endian, with the
// high bit of byte 7 set when x is negative. The encoder never emits
// negative zero.
func EncodeInt64(x int64) [8]byte {
	var buf [8]byte
	neg := x < 0
	y := x
	if neg {
		y = -y
	}
	for i := 0; i < 8; i++ {
		buf[i] = byte(y & 0xff)
		y >>= 8
	}
	if neg {
		buf[7] |= 0x80
	}
	return buf
}

// DecodeInt64 reads the BSDIFF40 sign-magnitude little-endian encoding.
// The bits of byte 7 other than the sign bit are magnitude bits, so the
// largest magnitude is 2^63-1, which always fits in an int64: every
// 8-byte input decodes, and the range check below never fires for it.
func DecodeInt64(buf []byte) (int64, error) {
	_ = buf[7] // bounds check hint; callers always pass an 8-byte slice
	y := int64(buf[7] & 0x7f)
	y = y<<8 | int64(buf[6])
	y = y<<8 | int64(buf[5])
	y = y<<8 | int64(buf[4])
	y = y<<8 | int64(buf[3])
	y = y<<8 | int64(buf[2])
	y = y<<8 | int64(buf[1])
	y = y<<8 | int64(buf[0])
	if y < 0 || y > maxMagnitude {
		return 0, bsdifferr.NewCorrupt(bsdifferr.ArithmeticOverflow)
	}
	if buf[7]&0x80 != 0 {
		return -y, nil
	}
	return y, nil
}
