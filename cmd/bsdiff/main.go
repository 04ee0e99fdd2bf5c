// Command bsdiff computes a BSDIFF40 patch from an old file to a new
// file.
package main

import (
	"fmt"
	"os"

	"github.com/nmoro/go-bsdiff/pkg/bsdiff"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Printf("usage:\n  %s oldfile newfile patchfile\n", os.Args[0])
		os.Exit(1)
	}
	if err := bsdiff.File(os.Args[1], os.Args[2], os.Args[3]); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
