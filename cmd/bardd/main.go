// Package main is the entry point for the bardd daemon.
package main

import (
	"os"

	"github.com/yettinmoor/bard/internal/daemon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
