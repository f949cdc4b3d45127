// Package main is the entry point for the ark-resolver CLI.
package main

import (
	"fmt"
	"os"
)

// Version information, injected at build time.
var (
	Version = "dev"
	Commit  = "none"
)

func main() {
	rootCmd := newRootCmd()
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
