package bzcodec

import (
	"bytes"
	"testing"
)

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func TestRoundTripNoHint(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200)
	compressed := compress(t, data)

	got, err := DecompressToVec(compressed)
	if err != nil {
		t.Fatalf("DecompressToVec: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(data))
	}
}

func TestRoundTripWithHint(t *testing.T) {
	data := []byte("small payload")
	compressed := compress(t, data)

	got, err := DecompressToVec(compressed, WithHint(int64(len(data))))
	if err != nil {
		t.Fatalf("DecompressToVec: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, data)
	}
}

func TestRoundTripEmpty(t *testing.T) {
	compressed := compress(t, nil)
	got, err := DecompressToVec(compressed)
	if err != nil {
		t.Fatalf("DecompressToVec: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(got))
	}
}

func TestDecompressGrowsPastSmallStartingGuess(t *testing.T) {
	// A starting guess far too small for the real decompressed size must
	// still succeed via repeated doubling.
	data := bytes.Repeat([]byte{0xAB}, 1<<20)
	compressed := compress(t, data)

	got, err := DecompressToVec(compressed, WithHint(0))
	if err != nil {
		t.Fatalf("DecompressToVec: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch after growth: got %d bytes, want %d", len(got), len(data))
	}
}

func TestDecompressRejectsGarbage(t *testing.T) {
	if _, err := DecompressToVec([]byte("not a bzip2 stream")); err == nil {
		t.Fatal("expected an error decompressing garbage input")
	}
}

func TestDecompressHonorsMaxSize(t *testing.T) {
	data := bytes.Repeat([]byte{0x11}, 1<<20)
	compressed := compress(t, data)

	// WithMaxSize clamps to the 128 MiB floor, so set a cap below the
	// 1 MiB payload directly to exercise the cap check.
	smallCap := func(o *decompressOptions) { o.maxCap = 1 << 10 }
	_, err := DecompressToVec(compressed, WithHint(0), smallCap)
	if err == nil {
		t.Fatal("expected an out-of-memory error when the cap is too small")
	}
}
