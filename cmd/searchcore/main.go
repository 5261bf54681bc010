// Package main is the entry point for the searchcore CLI.
package main

import (
	"os"

	"github.com/capitolstream/searchcore/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
