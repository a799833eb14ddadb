// Package main is the entry point for the lpcvowel CLI.
//
// Usage:
//
//	lpcvowel [flags] <command> [args]
//
// Commands:
//
//	train     - Build per-vowel templates from a manifest
//	test      - Classify a labeled manifest and report accuracy
//	classify  - Classify individual recordings
//	analyze   - Dump autocorrelation, LPC and cepstral coefficients
//	distance  - Tokhura distance between two template tables
//	config    - Print the effective configuration
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ieee0824/lpcvowel/cmd/lpcvowel/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
