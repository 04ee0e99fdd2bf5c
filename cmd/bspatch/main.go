// Command bspatch applies a BSDIFF40 patch, or reports the decompressed
// size of each of its streams when invoked with a single argument.
package main

import (
	"fmt"
	"os"

	"github.com/nmoro/go-bsdiff/pkg/bspatch"
)

func main() {
	switch len(os.Args) {
	case 2:
		sizes, err := bspatch.InspectFile(os.Args[1])
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		fmt.Printf("Decompressed ctrl/diff/extra sizes are: %d/%d/%d.\n",
			sizes.CtrlSize, sizes.DiffSize, sizes.ExtraSize)
	case 4:
		if err := bspatch.File(os.Args[1], os.Args[2], os.Args[3]); err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
	default:
		fmt.Printf("usage:\n")
		fmt.Printf("  for patching: %s oldfile newfile patchfile\n", os.Args[0])
		fmt.Printf("  for info: %s patchfile\n", os.Args[0])
		os.Exit(1)
	}
}
