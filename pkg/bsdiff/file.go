package bsdiff

import (
	"fmt"
	"os"

	"github.com/nmoro/go-bsdiff/pkg/bsdifferr"
)

// File reads oldfile and newfile, computes the patch, and writes it to
// patchfile. This is the thin I/O glue around Bytes needed for the CLI
// surface.
func File(oldfile, newfile, patchfile string) error {
	oldb, err := os.ReadFile(oldfile)
	if err != nil {
		return bsdifferr.NewIO("read", oldfile, err)
	}
	newb, err := os.ReadFile(newfile)
	if err != nil {
		return bsdifferr.NewIO("read", newfile, err)
	}
	patch, err := Bytes(oldb, newb)
	if err != nil {
		return fmt.Errorf("bsdiff: %w", err)
	}
	if err := os.WriteFile(patchfile, patch, 0644); err != nil {
		return bsdifferr.NewIO("write", patchfile, err)
	}
	return nil
}
