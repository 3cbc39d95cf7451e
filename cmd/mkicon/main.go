// mkicon writes the app icon as PNG, e.g. for build/appicon.png.
// Usage: go run ./cmd/mkicon [-size N] <output.png>
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Mavwarf/mailshell/internal/icon"
	"github.com/Mavwarf/mailshell/internal/paths"
)

func main() {
	size := 256
	args := os.Args[1:]
	if len(args) == 3 && args[0] == "-size" {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 16 || n > 1024 {
			fmt.Fprintf(os.Stderr, "mkicon: bad size %q\n", args[1])
			os.Exit(2)
		}
		size = n
		args = args[2:]
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: mkicon [-size N] <output.png>")
		os.Exit(2)
	}

	data, err := icon.PNG(size)
	if err == nil {
		err = paths.AtomicWrite(args[0], data)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "mkicon: %v\n", err)
		os.Exit(1)
	}
}
