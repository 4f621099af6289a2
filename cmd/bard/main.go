// Package main is the entry point for the bard CLI.
package main

import (
	"os"

	"github.com/yettinmoor/bard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
