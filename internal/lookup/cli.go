// Package lookup implements the terminal lookup tool: it runs a profile or
// comparison query and renders the result as a table or JSON.
package lookup

import (
	"io"
	"os"

	"github.com/okian/cubestand/pkg/logger"
)

// SetupLogging routes logs to stderr so stdout carries only the result.
func SetupLogging(verbose bool) error {
	return setupLogging(os.Stderr, verbose)
}

func setupLogging(w io.Writer, verbose bool) error {
	if err := logger.Init(logger.WithWriter(w), logger.WithCaller(false)); err != nil {
		return err
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the lookup tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `cubestand lookup
================

Shows a competitor's personal records with world, continental and national
standings, or compares two competitors head-to-head.

Usage:
  go run ./cmd/lookup -id ID [options]

Options:
  -id string
        Competitor id, e.g. 2009ZEMD01 (required)
  -vs string
        Second competitor id; prints a comparison
  -url string
        Base URL of the competitor and leaderboard API
  -avatar-url string
        Base URL of the avatar API
  -timeout duration
        Per-request timeout (default 10s)
  -concurrency int
        Leaderboard lookups in flight (default CPU cores * 4)
  -format string
        Output format: table or json (default "table")
  -verbose
        Enable debug logging on stderr
  -help
        Show this help message

Examples:
  go run ./cmd/lookup -id 2009ZEMD01
  go run ./cmd/lookup -id 2009ZEMD01 -vs 2012PARK03
  go run ./cmd/lookup -id 2009ZEMD01 -format json
`)
}
