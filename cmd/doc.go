// Package cmd implements the command-line interface for sheetcheck.
//
// This package provides the following commands:
//   - check: Run the Google Sheets connection diagnostic
//   - version: Display version information
//
// Running sheetcheck without a subcommand runs the check; the root command
// accepts the same flags.
package cmd
