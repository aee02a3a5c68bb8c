//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of symbol-code requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/symbolcode-gui` or use ./cmd/symbolcode for the terminal runner.")
	os.Exit(2)
}
