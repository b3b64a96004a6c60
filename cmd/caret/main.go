package main

import (
	"fmt"
	"os"

	"kriskowal.com/go/caret/cmd/caret/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
