// Package main provides the echelon CLI.
package main

import (
	"os"

	"github.com/echelon-labs/echelon/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
