// Package main is the entry point for the ffind harness.
package main

import (
	"os"

	"github.com/dshills/fuzzyfind/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
