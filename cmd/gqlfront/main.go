package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := Execute(); err != nil {
		printError(os.Stderr, err, newStyles(!color.NoColor))
		os.Exit(1)
	}
}
