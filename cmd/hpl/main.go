package main

import (
	"fmt"
	"os"

	"github.com/hpl-lang/hpl/cmd/hpl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
