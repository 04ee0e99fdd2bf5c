package bspatch

import (
	"fmt"
	"os"

	"github.com/nmoro/go-bsdiff/pkg/bsdifferr"
)

// File reads oldfile and patchfile, applies the patch, and writes the
// reconstructed bytes to newfile.
func File(oldfile, newfile, patchfile string) error {
	oldb, err := os.ReadFile(oldfile)
	if err != nil {
		return bsdifferr.NewIO("read", oldfile, err)
	}
	patch, err := os.ReadFile(patchfile)
	if err != nil {
		return bsdifferr.NewIO("read", patchfile, err)
	}
	newb, err := Bytes(oldb, patch)
	if err != nil {
		return fmt.Errorf("bspatch: %w", err)
	}
	if err := os.WriteFile(newfile, newb, 0644); err != nil {
		return bsdifferr.NewIO("write", newfile, err)
	}
	return nil
}

// InspectFile reports the decompressed stream sizes of the patch at
// patchfile, for the `tool patch` single-argument CLI mode.
func InspectFile(patchfile string) (Sizes, error) {
	patch, err := os.ReadFile(patchfile)
	if err != nil {
		return Sizes{}, bsdifferr.NewIO("read", patchfile, err)
	}
	sizes, err := Inspect(patch)
	if err != nil {
		return Sizes{}, fmt.Errorf("bspatch: %w", err)
	}
	return sizes, nil
}
