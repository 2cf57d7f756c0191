// Package main is the entry point for the glommer CLI.
package main

import (
	"os"

	"github.com/notapresent/glommer/cmd/glommer/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
